package runtime

import (
	"log/slog"
	"sync"
	"time"

	"chat-relay/domain"
	"chat-relay/observability"
)

type presenceEntry struct {
	identity     domain.Identity
	connections  int
	lastActivity time.Time
	state        domain.PresenceState
}

// PresenceTracker derives online/away/offline per identity from connection
// and activity events. State is transient and recomputed from liveness; the
// durable store only caches a last-seen timestamp on the way out.
//
// Transitions: offline -> online on the first live connection, online ->
// offline when the last connection goes, online -> away after an inactivity
// timeout (driven by the sweeper worker).
type PresenceTracker struct {
	mu        sync.Mutex
	entries   map[string]*presenceEntry
	awayAfter time.Duration
	now       func() time.Time
	log       *slog.Logger

	// broadcast fires on every state transition, outside the tracker lock.
	broadcast func(identity domain.Identity, state domain.PresenceState, at time.Time)
}

func NewPresenceTracker(awayAfter time.Duration, log *slog.Logger) *PresenceTracker {
	return &PresenceTracker{
		entries:   make(map[string]*presenceEntry),
		awayAfter: awayAfter,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
	}
}

// SetBroadcast installs the transition hook. Wired once at startup.
func (p *PresenceTracker) SetBroadcast(fn func(identity domain.Identity, state domain.PresenceState, at time.Time)) {
	p.broadcast = fn
}

func (p *PresenceTracker) OnConnect(identity domain.Identity) {
	now := p.now()

	p.mu.Lock()
	e, ok := p.entries[identity.ID]
	if !ok {
		e = &presenceEntry{identity: identity, state: domain.PresenceOffline}
		p.entries[identity.ID] = e
	}
	e.connections++
	e.lastActivity = now
	transitioned := e.state != domain.PresenceOnline
	e.state = domain.PresenceOnline
	total := len(p.entries)
	p.mu.Unlock()

	observability.OnlineIdentities.Set(float64(total))
	if transitioned && p.broadcast != nil {
		p.broadcast(identity, domain.PresenceOnline, now)
	}
}

// OnDisconnect decrements the connection count. An identity with two live
// connections stays online after losing one; only the last disconnect flips
// it offline.
func (p *PresenceTracker) OnDisconnect(identity domain.Identity) {
	now := p.now()

	p.mu.Lock()
	e, ok := p.entries[identity.ID]
	if !ok {
		p.mu.Unlock()
		return
	}
	e.connections--
	if e.connections > 0 {
		p.mu.Unlock()
		return
	}
	delete(p.entries, identity.ID)
	total := len(p.entries)
	p.mu.Unlock()

	observability.OnlineIdentities.Set(float64(total))
	if p.broadcast != nil {
		p.broadcast(identity, domain.PresenceOffline, now)
	}
}

// OnActivity refreshes the inactivity clock and lifts an away identity back
// to online.
func (p *PresenceTracker) OnActivity(identityID string) {
	now := p.now()

	p.mu.Lock()
	e, ok := p.entries[identityID]
	if !ok {
		p.mu.Unlock()
		return
	}
	e.lastActivity = now
	lifted := e.state == domain.PresenceAway
	if lifted {
		e.state = domain.PresenceOnline
	}
	identity := e.identity
	p.mu.Unlock()

	if lifted && p.broadcast != nil {
		p.broadcast(identity, domain.PresenceOnline, now)
	}
}

func (p *PresenceTracker) CurrentState(identityID string) domain.PresenceState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[identityID]; ok {
		return e.state
	}
	return domain.PresenceOffline
}

// SweepAway demotes online identities whose last activity is older than the
// configured threshold. Called periodically by the idle sweeper worker.
func (p *PresenceTracker) SweepAway(now time.Time) {
	type transition struct {
		identity domain.Identity
	}
	var demoted []transition

	p.mu.Lock()
	for _, e := range p.entries {
		if e.state == domain.PresenceOnline && now.Sub(e.lastActivity) > p.awayAfter {
			e.state = domain.PresenceAway
			demoted = append(demoted, transition{identity: e.identity})
		}
	}
	p.mu.Unlock()

	for _, t := range demoted {
		p.log.Debug("Presence demoted to away", "identity", t.identity.ID)
		if p.broadcast != nil {
			p.broadcast(t.identity, domain.PresenceAway, now)
		}
	}
}
