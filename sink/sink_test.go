package sink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
)

func TestConnectionSink_BackpressureWhenFull(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(2, 2)

	req.NoError(s.PushMessage(domain.Message{Seq: 1}))
	req.NoError(s.PushMessage(domain.Message{Seq: 2}))

	// Third push exceeds the bounded queue.
	err := s.PushMessage(domain.Message{Seq: 3})
	req.ErrorIs(err, errors.ErrBackpressure)

	// The queued messages are intact and in order.
	req.Equal(uint64(1), (<-s.Messages).Seq)
	req.Equal(uint64(2), (<-s.Messages).Seq)
}

func TestConnectionSink_PushAfterClose(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(2, 2)

	s.Close()
	s.Close() // idempotent

	err := s.PushMessage(domain.Message{Seq: 1})
	req.ErrorIs(err, errors.ErrNotFound)

	select {
	case <-s.Closed():
	case <-time.After(time.Second):
		t.Fatal("Closed() channel never signalled")
	}
}

func TestConnectionSink_EventsAreBestEffort(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(1, 1)

	evt := event.PresenceChanged{Room: "lobby", State: domain.PresenceOnline}
	req.NoError(s.PushEvent(evt))
	// Queue is full: the event is dropped, not an error.
	req.NoError(s.PushEvent(evt))

	req.Len(s.Events, 1)
}
