package runtime

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/sink"
)

func TestSessionRegistry_MultiDevice(t *testing.T) {
	req := require.New(t)
	registry := NewSessionRegistry(slog.Default())
	alice := domain.Identity{ID: "alice", DisplayName: "Alice"}

	conn1 := registry.Register(alice, sink.NewConnectionSink(4, 4))
	conn2 := registry.Register(alice, sink.NewConnectionSink(4, 4))
	req.NotEqual(conn1, conn2)

	// Both devices are addressable independently.
	req.Len(registry.ConnectionsFor("alice"), 2)

	identity, err := registry.IdentityOf(conn1)
	req.NoError(err)
	req.Equal("alice", identity.ID)

	_, removed := registry.Unregister(conn1)
	req.True(removed)
	req.Len(registry.ConnectionsFor("alice"), 1)
}

func TestSessionRegistry_UnregisterIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewSessionRegistry(slog.Default())
	snk := sink.NewConnectionSink(4, 4)

	conn := registry.Register(domain.Identity{ID: "bob"}, snk)

	_, removed := registry.Unregister(conn)
	req.True(removed)

	// The sink was closed exactly once with the unregistration.
	select {
	case <-snk.Closed():
	default:
		t.Fatal("sink not closed on unregister")
	}

	// Disconnect races are expected: a second unregister is a no-op.
	_, removed = registry.Unregister(conn)
	req.False(removed)

	_, err := registry.IdentityOf(conn)
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestSessionRegistry_NotifyFiresOnLifecycle(t *testing.T) {
	req := require.New(t)
	registry := NewSessionRegistry(slog.Default())

	type call struct {
		identity  string
		connected bool
	}
	var calls []call
	registry.SetNotify(func(identity domain.Identity, connected bool) {
		calls = append(calls, call{identity: identity.ID, connected: connected})
	})

	conn := registry.Register(domain.Identity{ID: "carol"}, sink.NewConnectionSink(4, 4))
	registry.Unregister(conn)

	req.Equal([]call{{"carol", true}, {"carol", false}}, calls)
}
