package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

// MembershipIndex owns the durable membership list and the ephemeral
// subscription map. Membership (identity in room) survives disconnects and is
// written through to the relational store via the reconciler; subscription
// (connection follows room) dies with the connection and is re-established on
// reconnect.
type MembershipIndex struct {
	mu            sync.RWMutex
	members       map[domain.RoomID]map[string]domain.Identity
	loaded        map[domain.RoomID]bool
	subs          map[domain.RoomID]map[domain.ConnectionID]struct{}
	connRooms     map[domain.ConnectionID]map[domain.RoomID]struct{}
	identityRooms map[string]map[domain.RoomID]struct{}

	repo       repositories.IMembershipRepository
	reconciler contract.IReconciler
	log        *slog.Logger
}

func NewMembershipIndex(repo repositories.IMembershipRepository, reconciler contract.IReconciler, log *slog.Logger) *MembershipIndex {
	return &MembershipIndex{
		members:       make(map[domain.RoomID]map[string]domain.Identity),
		loaded:        make(map[domain.RoomID]bool),
		subs:          make(map[domain.RoomID]map[domain.ConnectionID]struct{}),
		connRooms:     make(map[domain.ConnectionID]map[domain.RoomID]struct{}),
		identityRooms: make(map[string]map[domain.RoomID]struct{}),
		repo:          repo,
		reconciler:    reconciler,
		log:           log,
	}
}

// ensureLoaded hydrates a room's member set from the relational store on
// first touch, so durable membership survives a relay restart. The store
// read happens outside the index lock.
func (m *MembershipIndex) ensureLoaded(ctx context.Context, room domain.RoomID) error {
	m.mu.RLock()
	done := m.loaded[room]
	m.mu.RUnlock()
	if done {
		return nil
	}

	stored, err := m.repo.Members(ctx, room)
	if err != nil {
		return fmt.Errorf("loading members of room %s: %w", room, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded[room] {
		return nil
	}
	if _, ok := m.members[room]; !ok {
		m.members[room] = make(map[string]domain.Identity)
	}
	for _, id := range stored {
		if _, ok := m.members[room][id]; !ok {
			m.members[room][id] = domain.Identity{ID: id}
		}
		m.indexIdentityLocked(id, room)
	}
	m.loaded[room] = true
	return nil
}

func (m *MembershipIndex) indexIdentityLocked(identityID string, room domain.RoomID) {
	if _, ok := m.identityRooms[identityID]; !ok {
		m.identityRooms[identityID] = make(map[domain.RoomID]struct{})
	}
	m.identityRooms[identityID][room] = struct{}{}
}

// Join adds an identity to the durable membership list, write-through to the
// reconciler. Idempotent: joining an already-joined identity is a no-op that
// still succeeds. Returns true when membership actually changed.
func (m *MembershipIndex) Join(ctx context.Context, room domain.RoomID, identity domain.Identity) (bool, error) {
	if err := m.ensureLoaded(ctx, room); err != nil {
		return false, err
	}

	m.mu.Lock()
	if _, ok := m.members[room]; !ok {
		m.members[room] = make(map[string]domain.Identity)
	}
	if _, already := m.members[room][identity.ID]; already {
		m.mu.Unlock()
		return false, nil
	}
	m.members[room][identity.ID] = identity
	m.indexIdentityLocked(identity.ID, room)
	m.mu.Unlock()

	m.reconciler.EnqueueMembership(room, identity, true, time.Now().UTC())
	return true, nil
}

// Leave removes durable membership. Idempotent like Join.
func (m *MembershipIndex) Leave(ctx context.Context, room domain.RoomID, identity domain.Identity) (bool, error) {
	if err := m.ensureLoaded(ctx, room); err != nil {
		return false, err
	}

	m.mu.Lock()
	set, ok := m.members[room]
	if !ok {
		m.mu.Unlock()
		return false, nil
	}
	if _, member := set[identity.ID]; !member {
		m.mu.Unlock()
		return false, nil
	}
	delete(set, identity.ID)
	if rooms, ok := m.identityRooms[identity.ID]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(m.identityRooms, identity.ID)
		}
	}
	m.mu.Unlock()

	m.reconciler.EnqueueMembership(room, identity, false, time.Now().UTC())
	return true, nil
}

func (m *MembershipIndex) IsMember(ctx context.Context, room domain.RoomID, identityID string) (bool, error) {
	if err := m.ensureLoaded(ctx, room); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.members[room]
	if !ok {
		return false, nil
	}
	_, member := set[identityID]
	return member, nil
}

// Subscribe attaches a live connection to a room. Requires prior Join:
// subscribing without membership fails with ErrNotAMember and leaves the
// subscription map untouched.
func (m *MembershipIndex) Subscribe(ctx context.Context, connID domain.ConnectionID, identityID string, room domain.RoomID) error {
	member, err := m.IsMember(ctx, room, identityID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("identity %s in room %s: %w", identityID, room, errors.ErrNotAMember)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[room]; !ok {
		m.subs[room] = make(map[domain.ConnectionID]struct{})
	}
	m.subs[room][connID] = struct{}{}
	if _, ok := m.connRooms[connID]; !ok {
		m.connRooms[connID] = make(map[domain.RoomID]struct{})
	}
	m.connRooms[connID][room] = struct{}{}
	return nil
}

func (m *MembershipIndex) Unsubscribe(connID domain.ConnectionID, room domain.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detachLocked(connID, room)
}

func (m *MembershipIndex) detachLocked(connID domain.ConnectionID, room domain.RoomID) {
	if set, ok := m.subs[room]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(m.subs, room)
		}
	}
	if rooms, ok := m.connRooms[connID]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(m.connRooms, connID)
		}
	}
}

// UnsubscribeAll promptly releases every subscription of a disconnecting
// connection and returns the rooms it was following.
func (m *MembershipIndex) UnsubscribeAll(connID domain.ConnectionID) []domain.RoomID {
	m.mu.Lock()
	defer m.mu.Unlock()
	rooms := make([]domain.RoomID, 0, len(m.connRooms[connID]))
	for room := range m.connRooms[connID] {
		rooms = append(rooms, room)
	}
	for _, room := range rooms {
		m.detachLocked(connID, room)
	}
	return rooms
}

// SubscribersOf snapshots the live subscriber set of a room at the instant of
// delivery. A room with zero live subscribers is a valid state; offline
// members still count as members for storage purposes.
func (m *MembershipIndex) SubscribersOf(room domain.RoomID) []domain.ConnectionID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.subs[room]
	if !ok {
		return nil
	}
	subs := make([]domain.ConnectionID, 0, len(set))
	for id := range set {
		subs = append(subs, id)
	}
	return subs
}

// RoomsOf lists the rooms an identity is a durable member of, as currently
// known to the index. Presence transitions broadcast to these rooms.
func (m *MembershipIndex) RoomsOf(identityID string) []domain.RoomID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.identityRooms[identityID]
	if !ok {
		return nil
	}
	rooms := make([]domain.RoomID, 0, len(set))
	for room := range set {
		rooms = append(rooms, room)
	}
	return rooms
}
