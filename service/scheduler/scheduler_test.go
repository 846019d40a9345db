package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/goapi/base/ctx"
)

func TestOneShotFires(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	s := New()
	s.Start(c)
	defer s.Stop()

	fired := make(chan string, 1)
	s.ScheduleOneShot(c, "job", time.Now().Add(20*time.Millisecond), func(taskCtx ctx.Ctx) {
		fired <- "job"
	})

	select {
	case id := <-fired:
		req.Equal("job", id)
	case <-time.After(time.Second):
		req.Fail("one shot job did not fire")
	}
}

func TestOneShotPastDeadlineFiresImmediately(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	s := New()
	s.Start(c)
	defer s.Stop()

	fired := make(chan struct{}, 1)
	s.ScheduleOneShot(c, "job", time.Now().Add(-time.Minute), func(taskCtx ctx.Ctx) {
		fired <- struct{}{}
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		req.Fail("overdue job did not fire")
	}
}

func TestOneShotLastRegistrationWins(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	s := New()
	s.Start(c)
	defer s.Stop()

	fired := make(chan int, 2)
	s.ScheduleOneShot(c, "job", time.Now().Add(50*time.Millisecond), func(taskCtx ctx.Ctx) {
		fired <- 1
	})
	s.ScheduleOneShot(c, "job", time.Now().Add(20*time.Millisecond), func(taskCtx ctx.Ctx) {
		fired <- 2
	})

	select {
	case got := <-fired:
		req.Equal(2, got)
	case <-time.After(time.Second):
		req.Fail("replacement job did not fire")
	}

	// the replaced timer must stay silent
	select {
	case got := <-fired:
		req.Failf("replaced job fired", "got %d", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancel(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	s := New()
	s.Start(c)
	defer s.Stop()

	fired := make(chan struct{}, 1)
	s.ScheduleOneShot(c, "job", time.Now().Add(30*time.Millisecond), func(taskCtx ctx.Ctx) {
		fired <- struct{}{}
	})
	s.Cancel(c, "job")

	select {
	case <-fired:
		req.Fail("cancelled job fired")
	case <-time.After(100 * time.Millisecond):
	}

	// cancelling an unknown id is a no-op
	s.Cancel(c, "unknown")
}

func TestStopDropsPendingJobs(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	s := New()
	s.Start(c)

	fired := make(chan struct{}, 1)
	s.ScheduleOneShot(c, "job", time.Now().Add(30*time.Millisecond), func(taskCtx ctx.Ctx) {
		fired <- struct{}{}
	})
	s.Stop()

	select {
	case <-fired:
		req.Fail("job fired after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestScheduleBeforeStartIsDropped(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	s := New()
	fired := make(chan struct{}, 1)
	s.ScheduleOneShot(c, "job", time.Now(), func(taskCtx ctx.Ctx) {
		fired <- struct{}{}
	})

	select {
	case <-fired:
		req.Fail("job fired before Start")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPeriodic(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	s := New()
	s.Start(c)

	var runs int32
	s.SchedulePeriodic(c, "tick", 20*time.Millisecond, func(taskCtx ctx.Ctx) {
		atomic.AddInt32(&runs, 1)
	})

	time.Sleep(150 * time.Millisecond)
	got := atomic.LoadInt32(&runs)
	req.GreaterOrEqual(got, int32(3))

	s.Stop()
	after := atomic.LoadInt32(&runs)
	time.Sleep(60 * time.Millisecond)
	req.Equal(after, atomic.LoadInt32(&runs))
}

func TestPeriodicSurvivesPanic(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	s := New()
	s.Start(c)
	defer s.Stop()

	var runs int32
	s.SchedulePeriodic(c, "tick", 20*time.Millisecond, func(taskCtx ctx.Ctx) {
		if atomic.AddInt32(&runs, 1) == 1 {
			panic("boom")
		}
	})

	time.Sleep(150 * time.Millisecond)
	req.GreaterOrEqual(atomic.LoadInt32(&runs), int32(2))
}
