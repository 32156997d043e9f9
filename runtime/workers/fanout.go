package workers

import (
	"context"
	stderrors "errors"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/observability"
)

// Ensure *FanoutWorker implements the contract.Worker interface at compile time.
var _ contract.Worker = (*FanoutWorker)(nil)

// FanoutWorker pushes sequenced messages to every live subscriber of their
// room, and presence/operational events on the distinct event channel.
//
// It is the single consumer of the deliveries channel, so messages of the
// same room reach each connection's queue in non-decreasing sequence order.
// Each push is a non-blocking enqueue into that connection's bounded sink:
// one slow or dead connection gets disconnected, it never stalls or fails
// delivery to its siblings, and it never propagates back to the sequencer.
type FanoutWorker struct {
	log        *slog.Logger
	deliveries chan domain.Message
	events     chan event.DomainEvent
	index      contract.ISubscriberIndex
	sessions   contract.ISessionDirectory
	disconnect contract.DisconnectFunc
}

func NewFanoutWorker(
	log *slog.Logger,
	deliveries chan domain.Message,
	events chan event.DomainEvent,
	index contract.ISubscriberIndex,
	sessions contract.ISessionDirectory,
	disconnect contract.DisconnectFunc,
) *FanoutWorker {
	return &FanoutWorker{
		log:        log,
		deliveries: deliveries,
		events:     events,
		index:      index,
		sessions:   sessions,
		disconnect: disconnect,
	}
}

func (w *FanoutWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fan-out")
			return nil
		case msg := <-w.deliveries:
			w.Deliver(msg)
		case evt := <-w.events:
			w.Broadcast(evt)
		}
	}
}

// Deliver pushes one message to the subscriber set snapshotted at the
// instant of delivery.
func (w *FanoutWorker) Deliver(msg domain.Message) {
	for _, conn := range w.index.SubscribersOf(msg.Room) {
		sink, ok := w.sessions.SinkOf(conn)
		if !ok {
			// Disconnect race: the connection went away between the snapshot
			// and the push. Expected, nothing to do.
			continue
		}
		if err := sink.PushMessage(msg); err != nil {
			if stderrors.Is(err, errors.ErrBackpressure) {
				observability.BackpressureDisconnects.Inc()
			}
			w.log.Warn("Push failed, disconnecting connection",
				"connection_id", conn, "room", msg.Room, "seq", msg.Seq, "error", err)
			w.disconnect(conn, err)
			continue
		}
		observability.FanoutPushes.Inc()
	}
}

// Broadcast pushes a presence or operational event to the room's live
// subscribers. Best effort: event delivery never consumes sequence numbers
// and a drop is acceptable.
func (w *FanoutWorker) Broadcast(evt event.DomainEvent) {
	for _, conn := range w.index.SubscribersOf(evt.RoomID()) {
		sink, ok := w.sessions.SinkOf(conn)
		if !ok {
			continue
		}
		if err := sink.PushEvent(evt); err != nil {
			w.log.Debug("Event push skipped", "connection_id", conn, "error", err)
		}
	}
}
