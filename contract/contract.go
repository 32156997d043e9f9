//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"chat-relay/domain"
	"chat-relay/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself.
// Panic recovery and restarts belong to the supervisor.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker lifecycle
// events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// ConnectionSink is the outbound side of one live connection. Messages and
// events travel on distinct bounded channels; a full message queue means the
// connection cannot keep up and must be disconnected, never that the fan-out
// as a whole blocks.
type ConnectionSink interface {
	// PushMessage enqueues a sequenced message. Returns ErrBackpressure when
	// the bounded queue is full.
	PushMessage(m domain.Message) error
	// PushEvent enqueues a presence or operational event, best effort.
	PushEvent(e event.DomainEvent) error
	Close()
}

// IReconciler is the asynchronous durable-write boundary. Enqueue calls never
// block the delivery path; the reconciler worker drains them with retry and
// backoff.
type IReconciler interface {
	EnqueueMessage(m domain.Message)
	EnqueueMembership(room domain.RoomID, identity domain.Identity, joined bool, at time.Time)
	EnqueueAck(room domain.RoomID, identity domain.Identity, seq uint64)
	EnqueueLastSeen(identity domain.Identity, at time.Time)
}

// ISubscriberIndex is the read-only view the fan-out engine has of the
// membership index: the live subscriber set of a room at delivery time.
type ISubscriberIndex interface {
	SubscribersOf(room domain.RoomID) []domain.ConnectionID
}

// ISessionDirectory resolves a connection to its outbound sink.
type ISessionDirectory interface {
	SinkOf(conn domain.ConnectionID) (ConnectionSink, bool)
}

// DisconnectFunc tears down a single connection: its registry entry, its
// subscriptions and its sink. Used by workers to isolate a failing
// connection without touching its siblings.
type DisconnectFunc func(conn domain.ConnectionID, reason error)

// IPresenceSweeper demotes inactive identities, called on the sweeper tick.
type IPresenceSweeper interface {
	SweepAway(now time.Time)
}

// IIdleScanner lists connections unresponsive beyond a cutoff.
type IIdleScanner interface {
	IdleSince(cutoff time.Time) []domain.ConnectionID
}
