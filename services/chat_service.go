//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/runtime"
)

// IChatService is the transport-facing surface of the relay core. Handlers
// depend on this, never on the orchestrator directly.
type IChatService interface {
	Connect(identity domain.Identity, sink contract.ConnectionSink) domain.ConnectionID
	Disconnect(connID domain.ConnectionID)
	CreateRoom(ctx context.Context, creator domain.Identity) (domain.Room, error)
	Join(ctx context.Context, room domain.RoomID, identity domain.Identity) error
	Leave(ctx context.Context, room domain.RoomID, identity domain.Identity) error
	Subscribe(ctx context.Context, connID domain.ConnectionID, room domain.RoomID) error
	Unsubscribe(connID domain.ConnectionID, room domain.RoomID)
	SendMessage(ctx context.Context, connID domain.ConnectionID, room domain.RoomID, payload string) (domain.Message, error)
	Acknowledge(connID domain.ConnectionID, room domain.RoomID, seq uint64) error
	History(ctx context.Context, room domain.RoomID, identityID string, afterSeq uint64, limit int) ([]domain.Message, error)
	PresenceOf(identityID string) domain.PresenceState
}

type ChatService struct {
	orchestrator *runtime.Orchestrator
}

func NewChatService(o *runtime.Orchestrator) *ChatService {
	return &ChatService{orchestrator: o}
}

func (s *ChatService) Connect(identity domain.Identity, sink contract.ConnectionSink) domain.ConnectionID {
	return s.orchestrator.Connect(identity, sink)
}

func (s *ChatService) Disconnect(connID domain.ConnectionID) {
	s.orchestrator.Disconnect(connID)
}

func (s *ChatService) CreateRoom(ctx context.Context, creator domain.Identity) (domain.Room, error) {
	return s.orchestrator.CreateRoom(ctx, creator)
}

func (s *ChatService) Join(ctx context.Context, room domain.RoomID, identity domain.Identity) error {
	return s.orchestrator.Join(ctx, room, identity)
}

func (s *ChatService) Leave(ctx context.Context, room domain.RoomID, identity domain.Identity) error {
	return s.orchestrator.Leave(ctx, room, identity)
}

func (s *ChatService) Subscribe(ctx context.Context, connID domain.ConnectionID, room domain.RoomID) error {
	return s.orchestrator.Subscribe(ctx, connID, room)
}

func (s *ChatService) Unsubscribe(connID domain.ConnectionID, room domain.RoomID) {
	s.orchestrator.Unsubscribe(connID, room)
}

func (s *ChatService) SendMessage(ctx context.Context, connID domain.ConnectionID, room domain.RoomID, payload string) (domain.Message, error) {
	return s.orchestrator.SendMessage(ctx, connID, room, payload)
}

func (s *ChatService) Acknowledge(connID domain.ConnectionID, room domain.RoomID, seq uint64) error {
	return s.orchestrator.Acknowledge(connID, room, seq)
}

func (s *ChatService) History(ctx context.Context, room domain.RoomID, identityID string, afterSeq uint64, limit int) ([]domain.Message, error) {
	return s.orchestrator.History(ctx, room, identityID, afterSeq, limit)
}

func (s *ChatService) PresenceOf(identityID string) domain.PresenceState {
	return s.orchestrator.PresenceOf(identityID)
}
