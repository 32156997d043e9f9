package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/observability"
	"chat-relay/repositories"
)

// Sequencer is the sole writer of sequence numbers. Accept stamps each
// message with the next per-room sequence inside that room's critical
// section, hands it to the delivery channel and the reconciler in the same
// section, and only then releases the lock. Ordering is therefore fixed at
// acceptance time regardless of downstream delivery timing, and same-room
// accepts serialize while unrelated rooms never contend.
type Sequencer struct {
	rooms      *Rooms
	membership *MembershipIndex
	messages   repositories.IMessageRepository
	reconciler contract.IReconciler

	// deliveries feeds the fan-out worker; the channel is FIFO and has a
	// single consumer, which preserves per-room enqueue order end to end.
	deliveries chan<- domain.Message
	// alarms carries operator-visible events such as a halted room.
	alarms chan<- event.DomainEvent
	log    *slog.Logger
}

func NewSequencer(
	rooms *Rooms,
	membership *MembershipIndex,
	messages repositories.IMessageRepository,
	reconciler contract.IReconciler,
	deliveries chan<- domain.Message,
	alarms chan<- event.DomainEvent,
	log *slog.Logger,
) *Sequencer {
	return &Sequencer{
		rooms:      rooms,
		membership: membership,
		messages:   messages,
		reconciler: reconciler,
		deliveries: deliveries,
		alarms:     alarms,
		log:        log,
	}
}

// Accept validates the sender's membership, assigns the next sequence number
// for the room and returns the fully stamped message. A rejected send never
// consumes a sequence number. An in-flight Accept that outlives a subscriber
// disconnect still completes; the message exists regardless of who is
// listening.
func (s *Sequencer) Accept(ctx context.Context, room domain.RoomID, sender domain.Identity, payload string) (domain.Message, error) {
	member, err := s.membership.IsMember(ctx, room, sender.ID)
	if err != nil {
		observability.MessagesRejected.Inc()
		return domain.Message{}, fmt.Errorf("membership check for room %s: %w", room, err)
	}
	if !member {
		observability.MessagesRejected.Inc()
		return domain.Message{}, fmt.Errorf("sender %s in room %s: %w", sender.ID, room, errors.ErrNotAMember)
	}

	rs := s.rooms.Get(room)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.halted {
		observability.MessagesRejected.Inc()
		return domain.Message{}, fmt.Errorf("room %s (%s): %w", room, rs.haltDetail, errors.ErrSequenceHalted)
	}

	// The counter is seeded lazily from the highest durably stored sequence,
	// so restarts continue the room's total order instead of renumbering.
	if !rs.seqLoaded {
		last, err := s.messages.LastStoredSequence(room)
		if err != nil {
			observability.MessagesRejected.Inc()
			return domain.Message{}, fmt.Errorf("seeding sequence for room %s: %w", room, err)
		}
		rs.seq = last
		rs.seqLoaded = true
	}

	// Duplicate or regressed sequence means corrupted state. Halt accept for
	// this room and raise the alarm; silently renumbering would forge history.
	if n := len(rs.tail); n > 0 && rs.tail[n-1].Seq != rs.seq {
		s.haltLocked(rs, room, fmt.Sprintf("tail seq %d diverged from counter %d", rs.tail[n-1].Seq, rs.seq))
		return domain.Message{}, fmt.Errorf("room %s: %w", room, errors.ErrSequenceHalted)
	}

	msg := domain.Message{
		ID:      uuid.New(),
		Room:    room,
		Seq:     rs.seq + 1,
		Sender:  sender,
		Payload: payload,
		At:      time.Now().UTC(),
	}
	rs.seq = msg.Seq
	rs.appendTail(msg, s.rooms.tailSize)

	// Handoff happens under the room lock: the fan-out worker drains this
	// channel without ever blocking, so the send stays short.
	s.deliveries <- msg
	s.reconciler.EnqueueMessage(msg)

	observability.MessagesAccepted.Inc()
	return msg, nil
}

func (s *Sequencer) haltLocked(rs *roomState, room domain.RoomID, detail string) {
	rs.halted = true
	rs.haltDetail = detail
	observability.SequenceHalts.Inc()
	observability.MessagesRejected.Inc()
	s.log.Error("Sequence corruption detected, halting accept for room",
		"room", room, "detail", detail)
	select {
	case s.alarms <- event.SequenceHalted{Room: room, Detail: detail, At: time.Now().UTC()}:
	default:
		s.log.Error("Alarm channel full, halt alarm dropped", "room", room)
	}
}
