package order

import "fmt"

type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// ParseStatus rejects anything outside the closed set so an illegal
// status can never reach the database.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusProcessing, StatusCompleted, StatusCanceled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// CanTransitionTo reports whether moving from s to next is allowed.
// The business rule is deliberately permissive: every transition is
// accepted except canceling an order that is already being processed
// or has completed.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusCanceled && (s == StatusProcessing || s == StatusCompleted) {
		return false
	}
	return true
}
