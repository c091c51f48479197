package bid

import "fmt"

// Status is the closed set of bid lifecycle states.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusRejected   Status = "Rejected"
	StatusCompleted  Status = "Completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusRejected, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown bid status %q", s)
}

// Role of the caller requesting a transition. The buyer owns the job the
// bid was placed on, the bidder authored the bid.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleBidder Role = "bidder"
)

// CanTransition reports whether role may move a bid from one status to
// another. Completed and Rejected are terminal. Requesting the status the
// bid already holds is an idempotent no-op and always allowed.
func CanTransition(from, to Status, role Role) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return role == RoleBuyer && (to == StatusInProgress || to == StatusRejected)
	case StatusInProgress:
		switch to {
		case StatusRejected:
			return role == RoleBuyer
		case StatusCompleted:
			return true
		}
	}
	return false
}
