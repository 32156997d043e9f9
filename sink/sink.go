// Package sink carries outbound traffic for one live connection.
package sink

import (
	"sync"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
)

// ConnectionSink buffers outbound frames for a single connection. Messages
// and presence/operational events travel on distinct bounded channels so
// presence traffic never competes with sequenced delivery.
//
// Pushes are non-blocking. A full message queue surfaces ErrBackpressure so
// the caller can disconnect this connection without stalling fan-out to
// siblings. The write pump of the transport drains both channels.
type ConnectionSink struct {
	Messages chan domain.Message
	Events   chan event.DomainEvent

	closeOnce sync.Once
	closed    chan struct{}
}

func NewConnectionSink(messageBuffer, eventBuffer int) *ConnectionSink {
	return &ConnectionSink{
		Messages: make(chan domain.Message, messageBuffer),
		Events:   make(chan event.DomainEvent, eventBuffer),
		closed:   make(chan struct{}),
	}
}

// PushMessage enqueues a sequenced message for the write pump.
// Enqueue order is delivery order: the fan-out engine calls this in sequence
// order per room, and the channel is FIFO.
func (s *ConnectionSink) PushMessage(m domain.Message) error {
	select {
	case <-s.closed:
		return errors.ErrNotFound
	default:
	}
	select {
	case s.Messages <- m:
		return nil
	default:
		return errors.ErrBackpressure
	}
}

// PushEvent enqueues a presence or operational event. Events are best effort
// and may be dropped under pressure; they never consume sequence numbers.
func (s *ConnectionSink) PushEvent(e event.DomainEvent) error {
	select {
	case <-s.closed:
		return errors.ErrNotFound
	default:
	}
	select {
	case s.Events <- e:
		return nil
	default:
		// Dropping presence is acceptable, dropping messages is not.
		return nil
	}
}

// Close signals the write pump that no more frames will arrive. Idempotent,
// disconnect races are expected.
func (s *ConnectionSink) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// Closed reports whether the sink was closed, for the write pump select loop.
func (s *ConnectionSink) Closed() <-chan struct{} { return s.closed }
