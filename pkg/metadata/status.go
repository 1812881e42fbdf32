package metadata

import "fmt"

// Status of a submission or material request. Nothing in the schema forbids
// re-deciding an already decided record; the UI hides the buttons, a race can
// still flip approved to rejected. Left as-is on purpose.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision reports whether the status is a reviewer verdict.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}
