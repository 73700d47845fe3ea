package enums

import "fmt"

// AdminAction is a processing step the super-admin applies to a request after
// manager approval.
type AdminAction string

const (
	AdminActionStartProcessing AdminAction = "start_processing"
	AdminActionMarkPurchased   AdminAction = "mark_purchased"
	AdminActionMarkReceived    AdminAction = "mark_received"
	AdminActionCancel          AdminAction = "cancel"
)

var validAdminActions = []AdminAction{
	AdminActionStartProcessing,
	AdminActionMarkPurchased,
	AdminActionMarkReceived,
	AdminActionCancel,
}

// String implements fmt.Stringer.
func (a AdminAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AdminAction.
func (a AdminAction) IsValid() bool {
	for _, candidate := range validAdminActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdminAction converts raw input into an AdminAction.
func ParseAdminAction(value string) (AdminAction, error) {
	for _, candidate := range validAdminActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin action %q", value)
}
