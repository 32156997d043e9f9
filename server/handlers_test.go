package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
)

func newTestServer(t *testing.T) (*Server, *mocks.MockIChatService, string) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockIChatService(ctrl)
	tokens := auth.NewTokenValidator("test-secret", "chat-relay")

	s := New(slog.Default(), service, tokens, Config{
		ConnectionBufferSize:      16,
		ConnectionEventBufferSize: 16,
		MaxPayloadLength:          4096,
		WriteWait:                 time.Second,
		PongWait:                  time.Second,
		PingPeriod:                time.Second,
		HistoryLimit:              100,
	})

	token, err := tokens.GenerateToken(domain.Identity{ID: "alice", DisplayName: "Alice"}, time.Hour)
	require.NoError(t, err)
	return s, service, token
}

func doRequest(t *testing.T, s *Server, method, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestServer_HealthzIsPublic(t *testing.T) {
	s, _, _ := newTestServer(t)
	resp := doRequest(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_RejectsMissingToken(t *testing.T) {
	s, _, _ := newTestServer(t)
	resp := doRequest(t, s, http.MethodPost, "/rooms", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_CreateRoom(t *testing.T) {
	req := require.New(t)
	s, service, token := newTestServer(t)

	room := domain.Room{ID: "room-1", CreatedAt: time.Now().UTC()}
	service.EXPECT().
		CreateRoom(gomock.Any(), domain.Identity{ID: "alice", DisplayName: "Alice"}).
		Return(room, nil)

	resp := doRequest(t, s, http.MethodPost, "/rooms", token)
	req.Equal(http.StatusCreated, resp.StatusCode)

	var body roomResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal("room-1", body.ID)
}

func TestServer_JoinUnknownRoomIs404(t *testing.T) {
	req := require.New(t)
	s, service, token := newTestServer(t)

	service.EXPECT().
		Join(gomock.Any(), domain.RoomID("ghost"), gomock.Any()).
		Return(fmt.Errorf("room ghost: %w", errors.ErrNotFound))

	resp := doRequest(t, s, http.MethodPost, "/rooms/ghost/join", token)
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestServer_HistoryIsMembershipGated(t *testing.T) {
	req := require.New(t)
	s, service, token := newTestServer(t)

	service.EXPECT().
		History(gomock.Any(), domain.RoomID("lobby"), "alice", uint64(0), 100).
		Return(nil, fmt.Errorf("identity alice: %w", errors.ErrNotAMember))

	resp := doRequest(t, s, http.MethodGet, "/rooms/lobby/messages", token)
	req.Equal(http.StatusForbidden, resp.StatusCode)
}

func TestServer_HistoryHonorsCursor(t *testing.T) {
	req := require.New(t)
	s, service, token := newTestServer(t)

	messages := []domain.Message{
		{Room: "lobby", Seq: 2, Sender: domain.Identity{ID: "bob"}, Payload: "yo"},
		{Room: "lobby", Seq: 3, Sender: domain.Identity{ID: "alice"}, Payload: "hey"},
	}
	service.EXPECT().
		History(gomock.Any(), domain.RoomID("lobby"), "alice", uint64(1), 50).
		Return(messages, nil)

	resp := doRequest(t, s, http.MethodGet, "/rooms/lobby/messages?after=1&limit=50", token)
	req.Equal(http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	req.NoError(err)

	var body struct {
		Messages []messageResponse `json:"messages"`
	}
	req.NoError(json.Unmarshal(raw, &body))
	req.Len(body.Messages, 2)
	req.Equal(uint64(2), body.Messages[0].Seq)
	req.Equal("yo", body.Messages[0].Payload)
}

func TestServer_PresenceQuery(t *testing.T) {
	req := require.New(t)
	s, service, token := newTestServer(t)

	service.EXPECT().PresenceOf("bob").Return(domain.PresenceAway)

	resp := doRequest(t, s, http.MethodGet, "/presence/bob", token)
	req.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal("away", body["state"])
}
