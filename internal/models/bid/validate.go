package bid

import (
	"time"

	"talentbridge/internal/models/job"
)

// RuleError is a rejected bid submission rule.
type RuleError string

func (e RuleError) Error() string { return string(e) }

const (
	ErrSelfBid         = RuleError("bidding on your own job is not permitted")
	ErrDeadlineCrossed = RuleError("deadline crossed, bidding forbidden")
	ErrPriceOutOfRange = RuleError("bid price is outside the offered range")
	ErrLateDelivery    = RuleError("offered delivery date is past the job deadline")
)

// ValidateAgainstJob enforces the submission rules against the referenced
// job. Price comparisons are numeric.
func (r BidRequest) ValidateAgainstJob(j job.Job, now time.Time) error {
	if r.Email == j.Buyer.Email {
		return ErrSelfBid
	}
	if now.After(j.Deadline) {
		return ErrDeadlineCrossed
	}
	if r.Price < j.MinPrice || r.Price > j.MaxPrice {
		return ErrPriceOutOfRange
	}
	if r.Deadline.After(j.Deadline) {
		return ErrLateDelivery
	}
	return nil
}
