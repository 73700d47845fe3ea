package enums

import "fmt"

// RequestStatus tracks the lifecycle of a procurement request.
type RequestStatus string

const (
	RequestStatusPending         RequestStatus = "pending"
	RequestStatusManagerApproved RequestStatus = "manager_approved"
	RequestStatusManagerRejected RequestStatus = "manager_rejected"
	RequestStatusAdminProcessing RequestStatus = "admin_processing"
	RequestStatusPurchased       RequestStatus = "purchased"
	RequestStatusReceived        RequestStatus = "received"
	RequestStatusCancelled       RequestStatus = "cancelled"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusManagerApproved,
	RequestStatusManagerRejected,
	RequestStatusAdminProcessing,
	RequestStatusPurchased,
	RequestStatusReceived,
	RequestStatusCancelled,
}

// String implements fmt.Stringer.
func (r RequestStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RequestStatus.
func (r RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (r RequestStatus) IsTerminal() bool {
	switch r {
	case RequestStatusManagerRejected, RequestStatusReceived, RequestStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}
