// Package runtime is the real-time relay core: session registry, membership
// index, sequencer, fan-out, presence and the orchestrator that wires them.
// It routes between components without containing storage or transport logic.
package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime/workers"
)

// Config carries the orchestrator's runtime tuning. All durations come from
// the environment; see cmd/config.go.
type Config struct {
	RoomTailSize      int
	SweepInterval     time.Duration
	AwayAfter         time.Duration
	UnresponsiveAfter time.Duration
	MetricInterval    time.Duration
	HealthInterval    time.Duration
}

// Orchestrator owns the relay pipeline. All cross-component access goes
// through its entry points; transports never touch the registries directly.
type Orchestrator struct {
	log        *slog.Logger
	cfg        Config
	supervisor contract.ISupervisor
	sessions   *SessionRegistry
	membership *MembershipIndex
	rooms      *Rooms
	sequencer  *Sequencer
	presence   *PresenceTracker
	reconciler *workers.ReconcilerWorker

	messages    repositories.IMessageRepository
	memberships repositories.IMembershipRepository

	deliveries chan domain.Message
	events     chan event.DomainEvent
}

func NewOrchestrator(
	log *slog.Logger,
	cfg Config,
	supervisor contract.ISupervisor,
	messages repositories.IMessageRepository,
	memberships repositories.IMembershipRepository,
	reconciler *workers.ReconcilerWorker,
	deliveries chan domain.Message,
	events chan event.DomainEvent,
) *Orchestrator {
	o := &Orchestrator{
		log:         log,
		cfg:         cfg,
		supervisor:  supervisor,
		messages:    messages,
		memberships: memberships,
		reconciler:  reconciler,
		deliveries:  deliveries,
		events:      events,
	}

	o.sessions = NewSessionRegistry(log)
	o.rooms = NewRooms(cfg.RoomTailSize)
	o.membership = NewMembershipIndex(memberships, reconciler, log)
	o.sequencer = NewSequencer(o.rooms, o.membership, messages, reconciler, o.deliveries, o.events, log)
	o.presence = NewPresenceTracker(cfg.AwayAfter, log)

	o.sessions.SetNotify(func(identity domain.Identity, connected bool) {
		if connected {
			o.presence.OnConnect(identity)
			return
		}
		o.presence.OnDisconnect(identity)
	})
	o.presence.SetBroadcast(o.broadcastPresence)

	return o
}

// broadcastPresence fans a state transition out to every room the identity
// is a member of, on the event channel. Presence never consumes message
// sequence numbers.
func (o *Orchestrator) broadcastPresence(identity domain.Identity, state domain.PresenceState, at time.Time) {
	if state == domain.PresenceOffline {
		o.reconciler.EnqueueLastSeen(identity, at)
	}
	for _, room := range o.membership.RoomsOf(identity.ID) {
		evt := event.PresenceChanged{Room: room, Identity: identity, State: state, At: at}
		select {
		case o.events <- evt:
		default:
			o.log.Debug("Event channel full, presence event dropped",
				"identity", identity.ID, "room", room)
		}
	}
}

// Start registers the background workers and launches the supervisor.
func (o *Orchestrator) Start(ctx context.Context) {
	fanout := workers.NewFanoutWorker(o.log, o.deliveries, o.events,
		o.membership, o.sessions, o.disconnectWith)
	sweeper := workers.NewIdleSweeperWorker(o.log, o.presence, o.sessions,
		o.disconnectWith, o.cfg.SweepInterval, o.cfg.UnresponsiveAfter)
	capacity := workers.NewChannelCapacityWorker(o.log, []workers.NamedChannel{
		{Name: "deliveries", Channel: o.deliveries},
		{Name: "events", Channel: o.events},
	}, o.cfg.MetricInterval)
	health := workers.NewHealthWorker(o.log, o.cfg.HealthInterval)

	o.supervisor.Add(fanout, o.reconciler, sweeper, capacity, health)
	o.log.Info("Starting orchestrator and all supervised workers")
	go o.supervisor.Run(ctx)
}

// Stop initiates a graceful shutdown of the supervised workers.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}

// Connect registers a live duplex channel for an already-authenticated
// identity. Transport-agnostic: the sink is whatever the transport drains.
func (o *Orchestrator) Connect(identity domain.Identity, sink contract.ConnectionSink) domain.ConnectionID {
	return o.sessions.Register(identity, sink)
}

// Disconnect promptly releases a connection's subscriptions and registry
// entry. Unknown connections are a no-op; disconnect races are expected.
func (o *Orchestrator) Disconnect(connID domain.ConnectionID) {
	o.membership.UnsubscribeAll(connID)
	o.sessions.Unregister(connID)
}

func (o *Orchestrator) disconnectWith(connID domain.ConnectionID, reason error) {
	o.log.Warn("Disconnecting connection", "connection_id", connID, "reason", reason)
	o.Disconnect(connID)
}

// CreateRoom creates a durable room and joins the creator to it.
func (o *Orchestrator) CreateRoom(ctx context.Context, creator domain.Identity) (domain.Room, error) {
	room := domain.Room{ID: domain.RoomID(uuid.NewString()), CreatedAt: time.Now().UTC()}
	if err := o.memberships.UpsertRoom(ctx, room.ID, room.CreatedAt); err != nil {
		return domain.Room{}, fmt.Errorf("creating room: %w", err)
	}
	if err := o.Join(ctx, room.ID, creator); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

// Join adds durable membership, idempotently. The room must exist.
func (o *Orchestrator) Join(ctx context.Context, room domain.RoomID, identity domain.Identity) error {
	exists, err := o.memberships.RoomExists(ctx, room)
	if err != nil {
		return fmt.Errorf("checking room %s: %w", room, err)
	}
	if !exists {
		return fmt.Errorf("room %s: %w", room, errors.ErrNotFound)
	}
	changed, err := o.membership.Join(ctx, room, identity)
	if err != nil {
		return err
	}
	if changed {
		o.emit(event.MemberJoined{Room: room, Identity: identity, At: time.Now().UTC()})
	}
	return nil
}

func (o *Orchestrator) Leave(ctx context.Context, room domain.RoomID, identity domain.Identity) error {
	changed, err := o.membership.Leave(ctx, room, identity)
	if err != nil {
		return err
	}
	if changed {
		o.emit(event.MemberLeft{Room: room, Identity: identity, At: time.Now().UTC()})
	}
	return nil
}

func (o *Orchestrator) emit(evt event.DomainEvent) {
	select {
	case o.events <- evt:
	default:
		o.log.Debug("Event channel full, event dropped", "room", evt.RoomID())
	}
}

// Subscribe attaches a connection to a room it has joined and replays missed
// messages in sequence order, starting from the member's last-acknowledged
// sequence. The replay and the attach happen inside the room's critical
// section, so no live delivery can interleave and the connection sees a
// gapless, in-order stream from replay into live traffic.
func (o *Orchestrator) Subscribe(ctx context.Context, connID domain.ConnectionID, room domain.RoomID) error {
	identity, err := o.sessions.IdentityOf(connID)
	if err != nil {
		return err
	}
	sink, ok := o.sessions.SinkOf(connID)
	if !ok {
		return fmt.Errorf("connection %s: %w", connID, errors.ErrNotFound)
	}
	member, err := o.membership.IsMember(ctx, room, identity.ID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("identity %s in room %s: %w", identity.ID, room, errors.ErrNotAMember)
	}
	lastAck, _, err := o.memberships.LastAck(ctx, room, identity.ID)
	if err != nil {
		return fmt.Errorf("loading replay cursor: %w", err)
	}

	rs := o.rooms.Get(room)
	rs.mu.Lock()
	err = o.replayLocked(ctx, rs, room, lastAck, connID, identity.ID, sink)
	rs.mu.Unlock()

	if err != nil {
		// A connection that cannot even absorb its replay is disconnected;
		// other failures leave it alive for a retry.
		if stderrors.Is(err, errors.ErrBackpressure) {
			o.disconnectWith(connID, err)
		}
		return err
	}
	return nil
}

func (o *Orchestrator) replayLocked(ctx context.Context, rs *roomState, room domain.RoomID,
	lastAck uint64, connID domain.ConnectionID, identityID string, sink contract.ConnectionSink) error {

	stored, err := o.messages.ReplayFrom(room, lastAck)
	if err != nil {
		return fmt.Errorf("replaying room %s: %w", room, err)
	}

	cursor := lastAck
	push := func(m domain.Message) error {
		if err := sink.PushMessage(m); err != nil {
			return fmt.Errorf("replay push to %s: %w", connID, err)
		}
		observability.ReplayedMessages.Inc()
		cursor = m.Seq
		return nil
	}

	for _, dm := range stored {
		if err := push(repositories.ToDomain(dm)); err != nil {
			return err
		}
	}
	// Bridge writes still in flight to the reconciler from the in-memory
	// tail. A hole here means persistence lagged beyond the tail window:
	// surface it, the durable store is the part that is behind.
	for _, m := range rs.tail {
		if m.Seq <= cursor {
			continue
		}
		if m.Seq > cursor+1 {
			o.log.Warn("Replay gap: messages accepted but not yet durable",
				"room", room, "from", cursor+1, "to", m.Seq-1)
		}
		if err := push(m); err != nil {
			return err
		}
	}

	return o.membership.Subscribe(ctx, connID, identityID, room)
}

func (o *Orchestrator) Unsubscribe(connID domain.ConnectionID, room domain.RoomID) {
	o.membership.Unsubscribe(connID, room)
}

// SendMessage accepts a message from a live connection. The stamped message
// is returned to the submitter; delivery and persistence proceed
// asynchronously.
func (o *Orchestrator) SendMessage(ctx context.Context, connID domain.ConnectionID, room domain.RoomID, payload string) (domain.Message, error) {
	identity, err := o.sessions.IdentityOf(connID)
	if err != nil {
		return domain.Message{}, err
	}
	now := time.Now().UTC()
	o.sessions.Touch(connID, now)
	o.presence.OnActivity(identity.ID)
	return o.sequencer.Accept(ctx, room, identity, payload)
}

// Acknowledge records the highest sequence a member has seen in a room,
// moving its replay cursor forward. Async via the reconciler.
func (o *Orchestrator) Acknowledge(connID domain.ConnectionID, room domain.RoomID, seq uint64) error {
	identity, err := o.sessions.IdentityOf(connID)
	if err != nil {
		return err
	}
	o.sessions.Touch(connID, time.Now().UTC())
	o.presence.OnActivity(identity.ID)
	o.reconciler.EnqueueAck(room, identity, seq)
	return nil
}

// History reads stored messages of a room with sequence greater than
// afterSeq, ascending, membership-gated like the original read path.
func (o *Orchestrator) History(ctx context.Context, room domain.RoomID, identityID string, afterSeq uint64, limit int) ([]domain.Message, error) {
	member, err := o.membership.IsMember(ctx, room, identityID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("identity %s in room %s: %w", identityID, room, errors.ErrNotAMember)
	}
	stored, err := o.messages.ReplayFrom(room, afterSeq)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}
	return lo.Map(stored, func(dm repositories.DiskMessage, _ int) domain.Message {
		return repositories.ToDomain(dm)
	}), nil
}

// PresenceOf answers the presence query entry point.
func (o *Orchestrator) PresenceOf(identityID string) domain.PresenceState {
	return o.presence.CurrentState(identityID)
}

// LastSequence exposes the member's replay cursor for a room.
func (o *Orchestrator) LastSequence(ctx context.Context, room domain.RoomID, identityID string) (uint64, bool, error) {
	return o.memberships.LastAck(ctx, room, identityID)
}
