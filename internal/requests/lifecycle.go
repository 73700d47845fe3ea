package requests

import (
	"github.com/procurehub/procurehub-backend/pkg/enums"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
)

// adminTransitions is the full admin-side state machine. Missing entries are
// disallowed transitions; manager_rejected, received, and cancelled have no
// outgoing edges.
var adminTransitions = map[enums.RequestStatus]map[enums.AdminAction]enums.RequestStatus{
	enums.RequestStatusManagerApproved: {
		enums.AdminActionStartProcessing: enums.RequestStatusAdminProcessing,
		enums.AdminActionCancel:          enums.RequestStatusCancelled,
	},
	enums.RequestStatusAdminProcessing: {
		enums.AdminActionMarkPurchased: enums.RequestStatusPurchased,
		enums.AdminActionCancel:        enums.RequestStatusCancelled,
	},
	enums.RequestStatusPurchased: {
		enums.AdminActionMarkReceived: enums.RequestStatusReceived,
		enums.AdminActionCancel:       enums.RequestStatusCancelled,
	},
}

// nextAdminStatus resolves the target status for (current, action). The error
// message names both the action and the current status.
func nextAdminStatus(current enums.RequestStatus, action enums.AdminAction) (enums.RequestStatus, error) {
	if targets, ok := adminTransitions[current]; ok {
		if target, ok := targets[action]; ok {
			return target, nil
		}
	}
	return "", pkgerrors.Newf(pkgerrors.CodeInvalidState, "cannot %s a request in status %s", action, current)
}

// nextManagerStatus resolves the manager decision target. Manager decisions
// are valid from pending only; the caller enforces that precondition.
func nextManagerStatus(action enums.ManagerAction) (enums.RequestStatus, error) {
	switch action {
	case enums.ManagerActionApprove:
		return enums.RequestStatusManagerApproved, nil
	case enums.ManagerActionReject:
		return enums.RequestStatusManagerRejected, nil
	default:
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "invalid manager action %q", action)
	}
}
