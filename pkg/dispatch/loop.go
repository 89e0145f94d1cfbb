// Package dispatch provides a single-writer serial executor. Every function handed to a
// Loop runs on the same goroutine, one at a time, in submission order.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/compago/pkg/clock"
)

// ErrClosed is returned once the loop has been closed.
var ErrClosed = errors.New("dispatch loop closed")

// Loop serializes work onto one goroutine. Functions running on the loop must not
// call Do on the same loop; use Post instead.
type Loop struct {
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.Mutex
	queue  []func()
	jobs   map[*Job]struct{}
	closed bool

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
}

// New starts a loop. A nil clock means the wall clock.
func New(clk clock.Clock, logger *slog.Logger) *Loop {
	if clk == nil {
		clk = clock.Real()
	}
	l := &Loop{
		clock:   clk,
		logger:  logger.With("component", "dispatch"),
		jobs:    make(map[*Job]struct{}),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

// Clock returns the time source used for scheduling.
func (l *Loop) Clock() clock.Clock { return l.clock }

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case <-l.quit:
			return
		case <-l.wake:
		}
		for {
			l.mu.Lock()
			if len(l.queue) == 0 || l.closed {
				l.mu.Unlock()
				break
			}
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("❌ [ERROR] panic recovered on dispatch loop", "panic", r)
		}
	}()
	fn()
}

// Post enqueues fn without waiting. The queue is unbounded so Post never blocks,
// which makes it safe to call from timers and from the loop itself.
func (l *Loop) Post(fn func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Do runs fn on the loop and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	err := l.Post(func() {
		var runErr error
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("panic on dispatch loop: %v", r)
			}
			result <- runErr
		}()
		runErr = fn()
	})
	if err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		// the command may have completed right before shutdown
		select {
		case err := <-result:
			return err
		default:
			return ErrClosed
		}
	}
}

// Schedule runs fn on the loop after delay unless the job is cancelled first.
func (l *Loop) Schedule(delay time.Duration, fn func()) (*Job, error) {
	job := &Job{loop: l, fn: fn, done: make(chan struct{}), due: l.clock.Now().Add(delay)}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrClosed
	}
	l.jobs[job] = struct{}{}
	l.mu.Unlock()

	timer := l.clock.AfterFunc(delay, func() {
		if err := l.Post(job.fire); err != nil {
			l.logger.Debug("dropping scheduled job after close", "due", job.due)
		}
	})
	l.mu.Lock()
	job.timer = timer
	l.mu.Unlock()
	return job, nil
}

// PendingJobs returns the number of scheduled jobs that have neither run nor been cancelled.
func (l *Loop) PendingJobs() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.jobs)
}

// Close stops the loop and cancels every pending job. Queued commands are dropped and
// their callers receive ErrClosed. Close is idempotent.
func (l *Loop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.stopped
		return nil
	}
	l.closed = true
	jobs := make([]*Job, 0, len(l.jobs))
	for j := range l.jobs {
		jobs = append(jobs, j)
	}
	l.queue = nil
	l.mu.Unlock()

	for _, j := range jobs {
		j.Cancel()
	}
	close(l.quit)
	<-l.stopped
	if len(jobs) > 0 {
		l.logger.Info("🔁 [SKIP] Cancelled pending jobs on close", "count", len(jobs))
	}
	return nil
}
