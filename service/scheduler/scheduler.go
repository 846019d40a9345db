package scheduler

import (
	"sync"
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/goroutine"
	"github.com/bidhaus/goapi/base/log"
)

// Task is the unit of scheduled work
type Task func(c ctx.Ctx)

// Service runs one shot jobs at a deadline and periodic jobs on an
// interval. One shot jobs are keyed, registering the same key again
// replaces the pending timer.
type Service interface {
	Start(c ctx.Ctx)
	Stop()
	// ScheduleOneShot registers task to run once at `at`. Registering an
	// existing id drops the earlier timer, last registration wins. When
	// `at` is in the past the task fires immediately.
	ScheduleOneShot(c ctx.Ctx, id string, at time.Time, task Task)
	// Cancel drops a pending one shot job. Cancelling an unknown id is
	// a no-op.
	Cancel(c ctx.Ctx, id string)
	// SchedulePeriodic runs task every interval until the scheduler is
	// stopped. The first run happens after one interval.
	SchedulePeriodic(c ctx.Ctx, name string, interval time.Duration, task Task)
}

type oneShotJob struct {
	timer *time.Timer
	done  chan interface{}
}

type impl struct {
	mu       sync.Mutex
	started  bool
	jobs     map[string]*oneShotJob
	rootCtx  ctx.Ctx
	cancelFn func()
	wg       sync.WaitGroup
}

func New() Service {
	return &impl{
		jobs: map[string]*oneShotJob{},
	}
}

func (im *impl) Start(c ctx.Ctx) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.started {
		return
	}
	im.rootCtx, im.cancelFn = ctx.WithCancel(c)
	im.started = true
}

func (im *impl) Stop() {
	im.mu.Lock()
	if !im.started {
		im.mu.Unlock()
		return
	}
	im.started = false
	for id, job := range im.jobs {
		im.stopJob(job)
		delete(im.jobs, id)
	}
	cancel := im.cancelFn
	im.mu.Unlock()

	cancel()
	im.wg.Wait()
}

// stopJob must be called with im.mu held. When the timer was stopped
// before firing the fire callback never runs, so the waitgroup slot is
// released here.
func (im *impl) stopJob(job *oneShotJob) {
	if job.timer.Stop() {
		im.wg.Done()
	}
	close(job.done)
}

func (im *impl) ScheduleOneShot(c ctx.Ctx, id string, at time.Time, task Task) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if !im.started {
		c.WithField("id", id).Warn("scheduler not started, dropping job")
		return
	}

	if old, ok := im.jobs[id]; ok {
		im.stopJob(old)
		delete(im.jobs, id)
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	job := &oneShotJob{done: make(chan interface{})}
	im.wg.Add(1)
	job.timer = time.AfterFunc(delay, func() {
		im.mu.Lock()
		if im.jobs[id] == job {
			delete(im.jobs, id)
		}
		im.mu.Unlock()

		select {
		case <-job.done:
			im.wg.Done()
			return
		case <-im.rootCtx.Done():
			im.wg.Done()
			return
		default:
		}

		goroutine.RecoverableGo(func() {
			task(im.rootCtx)
		}, goroutine.WithAfterEnded(im.wg.Done))
	})
	im.jobs[id] = job

	c.WithFields(log.Fields{
		"id": id,
		"at": at,
	}).Info("one shot job scheduled")
}

func (im *impl) Cancel(c ctx.Ctx, id string) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if job, ok := im.jobs[id]; ok {
		im.stopJob(job)
		delete(im.jobs, id)
		c.WithField("id", id).Info("one shot job cancelled")
	}
}

func (im *impl) SchedulePeriodic(c ctx.Ctx, name string, interval time.Duration, task Task) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if !im.started {
		c.WithField("name", name).Warn("scheduler not started, dropping job")
		return
	}

	root := im.rootCtx
	im.wg.Add(1)
	goroutine.RecoverableGo(func() {
		for {
			select {
			case <-root.Done():
				return
			case <-time.After(interval):
				// recover per run so one panicking pass does not kill
				// the loop
				if e := <-goroutine.RecoverableGo(func() { task(root) }); e != nil {
					root.WithFields(log.Fields{
						"name": name,
						"err":  e.Panic,
					}).Error("periodic job panicked")
				}
			}
		}
	}, goroutine.WithAfterEnded(im.wg.Done))

	c.WithFields(log.Fields{
		"name":     name,
		"interval": interval,
	}).Info("periodic job scheduled")
}
