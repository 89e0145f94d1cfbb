// Package notification implements the single-slot notification queue: at most one
// notification is visible, a new one replaces it, and it disappears after a TTL.
package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/compago/pkg/dispatch"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/notification"
	"github.com/amirasaad/compago/pkg/eventbus"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Notifier is what the workflow handlers need from the queue.
type Notifier interface {
	Notify(ctx context.Context, message string, severity notification.Severity) notification.Notification
	Dismiss(ctx context.Context) bool
	Current() (notification.Notification, bool)
}

// Queue is the single-slot notification queue. Expiry jobs run on the dispatch loop;
// a generation counter makes sure a stale expiry never clears a newer notification.
type Queue struct {
	loop   *dispatch.Loop
	bus    eventbus.Bus
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	current *notification.Notification
	gen     uint64
	expiry  *dispatch.Job
}

// NewQueue creates a queue. A non-positive ttl falls back to DefaultTTL.
func NewQueue(loop *dispatch.Loop, bus eventbus.Bus, ttl time.Duration, logger *slog.Logger) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		loop:   loop,
		bus:    bus,
		ttl:    ttl,
		logger: logger.With("component", "notification"),
	}
}

// TTL returns the visibility window.
func (q *Queue) TTL() time.Duration { return q.ttl }

// Notify replaces any pending notification and restarts the expiry timer.
func (q *Queue) Notify(
	ctx context.Context,
	message string,
	severity notification.Severity,
) notification.Notification {
	now := q.loop.Clock().Now()
	q.mu.Lock()
	q.gen++
	gen := q.gen
	n := notification.Notification{
		ID:        gen,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}
	q.current = &n
	previous := q.expiry
	q.expiry = nil
	q.mu.Unlock()

	if previous != nil {
		previous.Cancel()
	}
	job, err := q.loop.Schedule(q.ttl, func() { q.expire(gen) })
	if err != nil {
		q.logger.Warn("could not schedule notification expiry", "error", err)
	} else {
		q.mu.Lock()
		if q.gen == gen {
			q.expiry = job
		} else {
			job.Cancel()
		}
		q.mu.Unlock()
	}

	q.logger.Debug("notification shown", "id", gen, "severity", severity, "message", message)
	q.publish(ctx, &n)
	return n
}

// Dismiss clears the active notification. It reports whether one was visible.
func (q *Queue) Dismiss(ctx context.Context) bool {
	q.mu.Lock()
	if q.current == nil {
		q.mu.Unlock()
		return false
	}
	q.gen++
	q.current = nil
	job := q.expiry
	q.expiry = nil
	q.mu.Unlock()

	if job != nil {
		job.Cancel()
	}
	q.publish(ctx, nil)
	return true
}

// Current returns the active notification, if any.
func (q *Queue) Current() (notification.Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return notification.Notification{}, false
	}
	return *q.current, true
}

func (q *Queue) expire(gen uint64) {
	q.mu.Lock()
	if q.gen != gen || q.current == nil {
		q.mu.Unlock()
		return
	}
	q.current = nil
	q.expiry = nil
	q.mu.Unlock()
	q.logger.Debug("notification expired", "id", gen)
	q.publish(context.Background(), nil)
}

func (q *Queue) publish(ctx context.Context, n *notification.Notification) {
	if q.bus == nil {
		return
	}
	evt := &events.NotificationChanged{FlowEvent: events.NewFlowEvent(), Notification: n}
	if err := q.bus.Emit(ctx, evt); err != nil {
		q.logger.Error("❌ [ERROR] failed to publish notification change", "error", err)
	}
}

var _ Notifier = (*Queue)(nil)
