package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable chat event. The sequence number is assigned exactly
// once by the sequencer at acceptance time and is never renumbered: for any
// room it is unique and strictly increasing, and a range read must come back
// gapless.
type Message struct {
	ID      uuid.UUID `json:"id"`
	Room    RoomID    `json:"room"`
	Seq     uint64    `json:"seq"`
	Sender  Identity  `json:"sender"`
	Payload string    `json:"payload"`
	At      time.Time `json:"at"`
}
