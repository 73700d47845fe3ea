package enums

import "fmt"

// ManagerAction is the single-use decision a manager takes on a pending request.
type ManagerAction string

const (
	ManagerActionApprove ManagerAction = "approve"
	ManagerActionReject  ManagerAction = "reject"
)

var validManagerActions = []ManagerAction{
	ManagerActionApprove,
	ManagerActionReject,
}

// String implements fmt.Stringer.
func (m ManagerAction) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ManagerAction.
func (m ManagerAction) IsValid() bool {
	for _, candidate := range validManagerActions {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseManagerAction converts raw input into a ManagerAction.
func ParseManagerAction(value string) (ManagerAction, error) {
	for _, candidate := range validManagerActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid manager action %q", value)
}
