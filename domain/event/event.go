package event

import (
	"time"

	"chat-relay/domain"
)

// DomainEvent is anything the fan-out engine can broadcast to a room.
// Presence and operational events travel on a distinct delivery channel from
// messages and never consume message sequence numbers.
type DomainEvent interface {
	RoomID() domain.RoomID
}

// PresenceChanged announces an identity transition between online, away and
// offline, broadcast to every room the identity is a member of.
type PresenceChanged struct {
	Room     domain.RoomID
	Identity domain.Identity
	State    domain.PresenceState
	At       time.Time
}

func (e PresenceChanged) RoomID() domain.RoomID { return e.Room }

// MemberJoined is emitted after an idempotent join mutates the durable
// membership list.
type MemberJoined struct {
	Room     domain.RoomID
	Identity domain.Identity
	At       time.Time
}

func (e MemberJoined) RoomID() domain.RoomID { return e.Room }

type MemberLeft struct {
	Room     domain.RoomID
	Identity domain.Identity
	At       time.Time
}

func (e MemberLeft) RoomID() domain.RoomID { return e.Room }

// PersistenceDegraded reports a message that was delivered live but could not
// be durably recorded after exhausting retries. Reconnecting members will see
// a gap unless it is reconciled by an operator.
type PersistenceDegraded struct {
	Room   domain.RoomID
	Seq    uint64
	Reason string
	At     time.Time
}

func (e PersistenceDegraded) RoomID() domain.RoomID { return e.Room }

// SequenceHalted is the operator alarm raised when a duplicate or regressed
// sequence number is detected. Accept stays halted for the room.
type SequenceHalted struct {
	Room   domain.RoomID
	Detail string
	At     time.Time
}

func (e SequenceHalted) RoomID() domain.RoomID { return e.Room }
