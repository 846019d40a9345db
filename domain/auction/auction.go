package auction

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain/bid"
)

// Outcome describes how a close attempt ended
type Outcome string

const (
	// OutcomeClosed means this worker closed the item
	OutcomeClosed Outcome = "closed"
	// OutcomeAlreadyClosed means another worker closed the item first
	OutcomeAlreadyClosed Outcome = "alreadyClosed"
)

// CloseResult is what CloseItem reports back to its caller
type CloseResult struct {
	ItemId     string   `json:"itemId"`
	Outcome    Outcome  `json:"outcome"`
	WinningBid *bid.Bid `json:"winningBid,omitempty"`
}

// SweepResult aggregates one sweep pass over due items
type SweepResult struct {
	Scanned int      `json:"scanned"`
	Closed  int      `json:"closed"`
	Failed  []string `json:"failed,omitempty"`
}

type Usecase interface {
	// CloseItem determines the winner, notifies the involved parties and
	// marks the item closed. It is idempotent, a second call on a closed
	// item reports OutcomeAlreadyClosed and does nothing else.
	CloseItem(c ctx.Ctx, itemId string) (*CloseResult, error)
	// RunSweep closes every open item whose deadline has passed,
	// isolating per item failures so one bad item cannot stall the rest.
	RunSweep(c ctx.Ctx, lookahead time.Duration) (*SweepResult, error)
	// ScheduleClosing registers a one shot close for the item at its
	// deadline. Rescheduling the same item replaces the earlier timer.
	ScheduleClosing(c ctx.Ctx, itemId string, closesAt time.Time) error
	// CancelClosing drops a pending one shot close, eg when the item is
	// deleted before its deadline
	CancelClosing(c ctx.Ctx, itemId string) error
}
