package payment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/compago/pkg/clock"
	"github.com/amirasaad/compago/pkg/dispatch"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/eventbus"
	"github.com/amirasaad/compago/pkg/ledger"
	"github.com/amirasaad/compago/pkg/money"
	"github.com/google/uuid"
)

// DefaultSettlementDelay is the simulated processing time of a payment.
const DefaultSettlementDelay = 1500 * time.Millisecond

// Scheduler runs deferred work on the dispatch loop. *dispatch.Loop implements it.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (*dispatch.Job, error)
	Clock() clock.Clock
}

// Settlement configures the deferred half of the workflow.
type Settlement struct {
	Scheduler Scheduler
	Delay     time.Duration
	Tracker   *Tracker
}

func (s Settlement) delay() time.Duration {
	if s.Delay <= 0 {
		return DefaultSettlementDelay
	}
	return s.Delay
}

// entry is the ledger record a settlement job writes.
type entry struct {
	direction    account.Direction
	accountID    string
	amount       money.Money
	counterparty string
	channel      account.Channel
	memo         string
}

// schedule queues the settlement of e for the workflow fe and tracks the job until it
// has run. When the job fires it settles the entry on the ledger in one atomic step
// and emits PaymentSettled, or PaymentFailed when the ledger rejects it.
func (s Settlement) schedule(
	ctx context.Context,
	bus eventbus.Bus,
	store ledger.Store,
	fe events.FlowEvent,
	e entry,
	log *slog.Logger,
) error {
	job, err := s.Scheduler.Schedule(s.delay(), func() {
		defer s.Tracker.done(fe.ID)
		settle(ctx, bus, store, fe, e, s.Scheduler.Clock().Now(), log)
	})
	if err != nil {
		log.Error("❌ [ERROR] Failed to schedule settlement", "error", err)
		return err
	}
	s.Tracker.add(fe.ID, job)
	log.Info("✅ [SUCCESS] Settlement scheduled", "due", job.Due())
	return nil
}

func settle(
	ctx context.Context,
	bus eventbus.Bus,
	store ledger.Store,
	fe events.FlowEvent,
	e entry,
	now time.Time,
	log *slog.Logger,
) {
	tx, err := account.NewTransaction(
		e.direction,
		e.amount,
		e.counterparty,
		e.channel,
		account.WithOccurredOn(now),
		account.WithAccount(e.accountID),
		account.WithMemo(e.memo),
	)
	if err == nil {
		var acc account.Account
		if acc, err = store.Settle(tx, e.accountID); err == nil {
			log.Info(
				"📤 [EMIT] Emitting PaymentSettled",
				"transaction_id", tx.ID,
				"balance", acc.Balance.String(),
			)
			emit(ctx, bus, events.NewPaymentSettled(fe, tx, acc.Balance), log)
			return
		}
	}
	log.Error("❌ [ERROR] Settlement rejected", "error", err)
	emit(ctx, bus, events.NewPaymentFailed(fe, e.direction, e.accountID, e.amount, err), log)
}

// Tracker keeps the settlement jobs that have been scheduled but not finished.
type Tracker struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*dispatch.Job
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[uuid.UUID]*dispatch.Job)}
}

func (t *Tracker) add(id uuid.UUID, job *dispatch.Job) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[id] = job
}

func (t *Tracker) done(id uuid.UUID) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, id)
}

// Pending returns the number of settlements still in flight.
func (t *Tracker) Pending() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

// CancelAll cancels every pending settlement. Used on teardown.
func (t *Tracker) CancelAll() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	jobs := make([]*dispatch.Job, 0, len(t.jobs))
	for id, job := range t.jobs {
		jobs = append(jobs, job)
		delete(t.jobs, id)
	}
	t.mu.Unlock()
	n := 0
	for _, job := range jobs {
		if job.Cancel() {
			n++
		}
	}
	return n
}

// emit publishes follow-up events from a settlement job. The job outlives the request
// that scheduled it, so cancellation of the request context is ignored.
func emit(ctx context.Context, bus eventbus.Bus, evt events.Event, log *slog.Logger) {
	if err := bus.Emit(context.WithoutCancel(ctx), evt); err != nil {
		log.Error("❌ [ERROR] Failed to emit event", "type", evt.Type(), "error", err)
	}
}
