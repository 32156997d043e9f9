package runtime

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/observability"
)

type session struct {
	conn domain.Connection
	sink contract.ConnectionSink
}

// SessionRegistry owns the Connection lifecycle exclusively. It keeps the
// one-to-many mapping from identity to live connections so fan-out can
// address connections directly; an identity with several devices shows up
// here as several independent entries.
//
// Register and Unregister are the only mutating operations. Both are safe
// under concurrent calls for the same identity and idempotent against
// duplicates, because disconnect races are expected.
type SessionRegistry struct {
	mu         sync.RWMutex
	sessions   map[domain.ConnectionID]*session
	byIdentity map[string]map[domain.ConnectionID]struct{}
	log        *slog.Logger

	// notify is the presence-candidate hook, fired outside the lock after
	// each register/unregister.
	notify func(identity domain.Identity, connected bool)
}

func NewSessionRegistry(log *slog.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions:   make(map[domain.ConnectionID]*session),
		byIdentity: make(map[string]map[domain.ConnectionID]struct{}),
		log:        log,
	}
}

// SetNotify installs the presence-candidate callback. Wired once at startup,
// before any connection is accepted.
func (r *SessionRegistry) SetNotify(fn func(identity domain.Identity, connected bool)) {
	r.notify = fn
}

// Register creates a Connection for a validated identity and returns its ID.
func (r *SessionRegistry) Register(identity domain.Identity, sink contract.ConnectionSink) domain.ConnectionID {
	id := domain.ConnectionID(uuid.NewString())

	r.mu.Lock()
	r.sessions[id] = &session{
		conn: domain.Connection{ID: id, Owner: identity, LastActivity: time.Now().UTC()},
		sink: sink,
	}
	if _, ok := r.byIdentity[identity.ID]; !ok {
		r.byIdentity[identity.ID] = make(map[domain.ConnectionID]struct{})
	}
	r.byIdentity[identity.ID][id] = struct{}{}
	total := len(r.sessions)
	r.mu.Unlock()

	observability.LiveConnections.Set(float64(total))
	r.log.Debug("Connection registered", "connection_id", id, "identity", identity.ID)
	if r.notify != nil {
		r.notify(identity, true)
	}
	return id
}

// Unregister removes a connection and closes its sink. Unknown IDs are a
// no-op, not an error. Returns the owning identity when the connection was
// actually removed.
func (r *SessionRegistry) Unregister(id domain.ConnectionID) (domain.Identity, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return domain.Identity{}, false
	}
	delete(r.sessions, id)
	identity := s.conn.Owner
	if set, exists := r.byIdentity[identity.ID]; exists {
		delete(set, id)
		if len(set) == 0 {
			delete(r.byIdentity, identity.ID)
		}
	}
	total := len(r.sessions)
	r.mu.Unlock()

	s.sink.Close()
	observability.LiveConnections.Set(float64(total))
	r.log.Debug("Connection unregistered", "connection_id", id, "identity", identity.ID)
	if r.notify != nil {
		r.notify(identity, false)
	}
	return identity, true
}

func (r *SessionRegistry) IdentityOf(id domain.ConnectionID) (domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.Identity{}, fmt.Errorf("connection %s: %w", id, errors.ErrNotFound)
	}
	return s.conn.Owner, nil
}

func (r *SessionRegistry) ConnectionsFor(identityID string) []domain.ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.byIdentity[identityID]
	if !ok {
		return nil
	}
	ids := make([]domain.ConnectionID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// SinkOf resolves the outbound sink of a live connection for the fan-out
// engine.
func (r *SessionRegistry) SinkOf(id domain.ConnectionID) (contract.ConnectionSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return s.sink, true
}

// Touch refreshes the last-activity timestamp of a connection.
func (r *SessionRegistry) Touch(id domain.ConnectionID, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.conn.LastActivity = at
	}
}

// IdleSince lists connections whose last activity is older than the cutoff,
// for the sweeper to forcibly unregister.
func (r *SessionRegistry) IdleSince(cutoff time.Time) []domain.ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var idle []domain.ConnectionID
	for id, s := range r.sessions {
		if s.conn.LastActivity.Before(cutoff) {
			idle = append(idle, id)
		}
	}
	return idle
}
