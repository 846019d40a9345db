package backoff

import (
	"context"
	"math"
	"time"
)

// Backoff sleeps for exponentially growing durations, capped at limit.
type Backoff struct {
	start time.Duration
	limit time.Duration
	count int
	next  time.Duration
}

func NewExponential(start time.Duration, limit time.Duration) *Backoff {
	b := &Backoff{start: start, limit: limit}
	b.Reset()
	return b
}

func (b *Backoff) Reset() {
	b.count = 0
	b.next = b.nextDuration()
}

// Backoff sleeps for the next duration. Returns early with the context
// error if ctx is cancelled during the sleep.
func (b *Backoff) Backoff(ctx context.Context) error {
	sleepCtx, cancelSleep := context.WithTimeout(ctx, b.next)
	<-sleepCtx.Done()
	cancelSleep()
	if sleepCtx.Err() == context.DeadlineExceeded {
		b.count++
		b.next = b.nextDuration()
		return nil
	}
	return sleepCtx.Err()
}

func (b *Backoff) nextDuration() time.Duration {
	d := time.Duration(int64(math.Pow(2, float64(b.count)))) * b.start
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}
