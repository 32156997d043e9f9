package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated rejects a connection attempt before any state is created.
	ErrUnauthenticated = fmt.Errorf("unauthenticated")
	// ErrNotAMember rejects a join-gated action. The connection stays alive.
	ErrNotAMember = fmt.Errorf("not a member of the room")
	// ErrNotFound covers unknown rooms and stale connection references.
	ErrNotFound = fmt.Errorf("not found")
	// ErrBackpressure means one connection's outbound queue is full.
	// Only that connection is disconnected, never the whole fan-out.
	ErrBackpressure = fmt.Errorf("connection outbound queue full")
	// ErrPersistenceDegraded means durable write retries were exhausted.
	// Live subscribers already received the message.
	ErrPersistenceDegraded = fmt.Errorf("durable write retries exhausted")
	// ErrSequenceHalted means a duplicate or regressed sequence number was
	// detected. Accept is halted for that room, nothing gets renumbered.
	ErrSequenceHalted = fmt.Errorf("sequence counter halted for room")
	ErrWorkerPanic    = fmt.Errorf("worker panic")
)

// MapToHTTPStatus translates relay sentinel errors into transport status codes.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAMember):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSequenceHalted), errors.Is(err, ErrPersistenceDegraded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
