package requests

import (
	"strings"
	"testing"

	"github.com/procurehub/procurehub-backend/pkg/enums"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
)

func TestAdminTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		current enums.RequestStatus
		action  enums.AdminAction
		want    enums.RequestStatus
		wantErr bool
	}{
		{"start processing from approved", enums.RequestStatusManagerApproved, enums.AdminActionStartProcessing, enums.RequestStatusAdminProcessing, false},
		{"cancel from approved", enums.RequestStatusManagerApproved, enums.AdminActionCancel, enums.RequestStatusCancelled, false},
		{"purchase from processing", enums.RequestStatusAdminProcessing, enums.AdminActionMarkPurchased, enums.RequestStatusPurchased, false},
		{"cancel from processing", enums.RequestStatusAdminProcessing, enums.AdminActionCancel, enums.RequestStatusCancelled, false},
		{"receive from purchased", enums.RequestStatusPurchased, enums.AdminActionMarkReceived, enums.RequestStatusReceived, false},
		{"cancel from purchased", enums.RequestStatusPurchased, enums.AdminActionCancel, enums.RequestStatusCancelled, false},
		{"purchase skipping processing", enums.RequestStatusManagerApproved, enums.AdminActionMarkPurchased, "", true},
		{"receive before purchase", enums.RequestStatusAdminProcessing, enums.AdminActionMarkReceived, "", true},
		{"no action from pending", enums.RequestStatusPending, enums.AdminActionStartProcessing, "", true},
		{"no action from rejected", enums.RequestStatusManagerRejected, enums.AdminActionCancel, "", true},
		{"received is terminal", enums.RequestStatusReceived, enums.AdminActionCancel, "", true},
		{"cancelled is terminal", enums.RequestStatusCancelled, enums.AdminActionStartProcessing, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nextAdminStatus(tc.current, tc.action)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got status %s", got)
				}
				if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidState) {
					t.Fatalf("expected invalid state error, got %v", err)
				}
				if !strings.Contains(err.Error(), string(tc.action)) || !strings.Contains(err.Error(), string(tc.current)) {
					t.Fatalf("error should name action and status: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestManagerDecisionTargets(t *testing.T) {
	got, err := nextManagerStatus(enums.ManagerActionApprove)
	if err != nil || got != enums.RequestStatusManagerApproved {
		t.Fatalf("approve: got %s, %v", got, err)
	}

	got, err = nextManagerStatus(enums.ManagerActionReject)
	if err != nil || got != enums.RequestStatusManagerRejected {
		t.Fatalf("reject: got %s, %v", got, err)
	}

	if _, err = nextManagerStatus(enums.ManagerAction("escalate")); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown action, got %v", err)
	}
}
