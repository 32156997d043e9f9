package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/observability"
	"chat-relay/repositories"
)

var _ contract.Worker = (*ReconcilerWorker)(nil)
var _ contract.IReconciler = (*ReconcilerWorker)(nil)

type taskKind int

const (
	taskMessage taskKind = iota
	taskMembership
	taskAck
	taskLastSeen
)

type reconcileTask struct {
	kind     taskKind
	message  repositories.DiskMessage
	room     domain.RoomID
	identity domain.Identity
	joined   bool
	seq      uint64
	at       time.Time
}

// ReconcilerWorker drains durable writes off the delivery critical path.
// Each task is attempted at-least-once and retried with exponential backoff
// on transient storage failure. A message whose retries are exhausted is
// reported as a persistence-degraded event, never silently dropped: live
// subscribers already have it, but reconnecting members would see a gap
// unless an operator reconciles.
//
// The queue is a single FIFO with a single consumer, so writes of the same
// room land in sequence order.
type ReconcilerWorker struct {
	log         *slog.Logger
	queue       chan reconcileTask
	messages    repositories.IMessageRepository
	memberships repositories.IMembershipRepository
	alarms      chan<- event.DomainEvent
	maxAttempts int
	baseBackoff time.Duration
}

func NewReconcilerWorker(
	log *slog.Logger,
	queueSize int,
	messages repositories.IMessageRepository,
	memberships repositories.IMembershipRepository,
	alarms chan<- event.DomainEvent,
	maxAttempts int,
	baseBackoff time.Duration,
) *ReconcilerWorker {
	return &ReconcilerWorker{
		log:         log,
		queue:       make(chan reconcileTask, queueSize),
		messages:    messages,
		memberships: memberships,
		alarms:      alarms,
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
	}
}

// EnqueueMessage hands an accepted message over for durable recording.
// Never blocks: the caller holds the room's critical section. A full queue
// is already a degraded persistence situation and is reported as such.
func (w *ReconcilerWorker) EnqueueMessage(m domain.Message) {
	w.enqueue(reconcileTask{kind: taskMessage, message: repositories.FromDomain(m), room: m.Room, seq: m.Seq})
}

func (w *ReconcilerWorker) EnqueueMembership(room domain.RoomID, identity domain.Identity, joined bool, at time.Time) {
	w.enqueue(reconcileTask{kind: taskMembership, room: room, identity: identity, joined: joined, at: at})
}

func (w *ReconcilerWorker) EnqueueAck(room domain.RoomID, identity domain.Identity, seq uint64) {
	w.enqueue(reconcileTask{kind: taskAck, room: room, identity: identity, seq: seq})
}

func (w *ReconcilerWorker) EnqueueLastSeen(identity domain.Identity, at time.Time) {
	w.enqueue(reconcileTask{kind: taskLastSeen, identity: identity, at: at})
}

func (w *ReconcilerWorker) enqueue(t reconcileTask) {
	select {
	case w.queue <- t:
		observability.ReconcilerQueueDepth.Set(float64(len(w.queue)))
	default:
		if t.kind == taskMessage {
			w.reportDegraded(t, fmt.Errorf("reconciler queue full"))
		} else {
			w.log.Error("Reconciler queue full, dropping task", "kind", t.kind)
		}
	}
}

func (w *ReconcilerWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, draining reconciler")
			w.drain()
			return nil
		case t := <-w.queue:
			observability.ReconcilerQueueDepth.Set(float64(len(w.queue)))
			w.process(ctx, t)
		}
	}
}

// drain makes a best-effort pass over whatever is still queued at shutdown,
// one attempt each, so a clean stop does not leave accepted messages behind.
func (w *ReconcilerWorker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case t := <-w.queue:
			if err := w.attempt(ctx, t); err != nil {
				w.log.Error("Durable write lost at shutdown", "kind", t.kind, "error", err)
			}
		default:
			return
		}
	}
}

func (w *ReconcilerWorker) process(ctx context.Context, t reconcileTask) {
	var lastErr error
	for attempt := 0; attempt < w.maxAttempts; attempt++ {
		if attempt > 0 {
			observability.PersistenceRetries.Inc()
			backoff := w.baseBackoff << (attempt - 1)
			select {
			case <-ctx.Done():
				// Shutdown mid-retry: drain() gets one final shot.
				w.enqueue(t)
				return
			case <-time.After(backoff):
			}
		}
		if lastErr = w.attempt(ctx, t); lastErr == nil {
			return
		}
		w.log.Warn("Durable write failed", "kind", t.kind, "attempt", attempt+1, "error", lastErr)
	}

	if t.kind == taskMessage {
		w.reportDegraded(t, lastErr)
		return
	}
	w.log.Error("Durable write retries exhausted", "kind", t.kind, "error", lastErr)
}

func (w *ReconcilerWorker) attempt(ctx context.Context, t reconcileTask) error {
	switch t.kind {
	case taskMessage:
		return w.messages.StoreMessage(t.message)
	case taskMembership:
		return w.memberships.RecordMembershipChange(ctx, t.room, t.identity, t.joined, t.at)
	case taskAck:
		return w.memberships.SetLastAck(ctx, t.room, t.identity.ID, t.seq)
	case taskLastSeen:
		return w.memberships.TouchLastSeen(ctx, t.identity.ID, t.at)
	default:
		return fmt.Errorf("unknown reconcile task kind %d", t.kind)
	}
}

func (w *ReconcilerWorker) reportDegraded(t reconcileTask, cause error) {
	observability.PersistenceDegraded.Inc()
	w.log.Error("Message delivered live but not durably recorded",
		"room", t.room, "seq", t.seq, "error", cause)
	evt := event.PersistenceDegraded{
		Room:   t.room,
		Seq:    t.seq,
		Reason: cause.Error(),
		At:     time.Now().UTC(),
	}
	select {
	case w.alarms <- evt:
	default:
		w.log.Error("Alarm channel full, degraded event dropped", "room", t.room, "seq", t.seq)
	}
}
