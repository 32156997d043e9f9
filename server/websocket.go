package server

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/sink"
)

// clientFrame is everything a client may send over the socket.
type clientFrame struct {
	Type    string `json:"type" validate:"required,oneof=subscribe unsubscribe message ack"`
	Room    string `json:"room" validate:"required"`
	Payload string `json:"payload"`
	Seq     uint64 `json:"seq"`
}

type presenceFrame struct {
	Identity string    `json:"identity"`
	State    string    `json:"state"`
	At       time.Time `json:"at"`
}

type memberFrame struct {
	Identity string    `json:"identity"`
	Display  string    `json:"display"`
	At       time.Time `json:"at"`
}

type serverFrame struct {
	Type     string           `json:"type"`
	Room     string           `json:"room,omitempty"`
	Seq      uint64           `json:"seq,omitempty"`
	Message  *messageResponse `json:"message,omitempty"`
	Presence *presenceFrame   `json:"presence,omitempty"`
	Member   *memberFrame     `json:"member,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// errorEvent routes a per-request failure back through the connection's
// event channel, so only the write pump ever touches the socket.
type errorEvent struct {
	room domain.RoomID
	msg  string
}

func (e errorEvent) RoomID() domain.RoomID { return e.room }

// handleSocket manages the lifecycle of one WebSocket connection: register,
// pump frames both ways, and clean up on any exit path. The read pump runs
// on the handler goroutine, the write pump on its own, and the sink is the
// only thing they share.
func (s *Server) handleSocket(c *websocket.Conn) {
	identity, ok := c.Locals(auth.IdentityKey).(domain.Identity)
	if !ok {
		_ = c.Close()
		return
	}

	snk := sink.NewConnectionSink(s.cfg.ConnectionBufferSize, s.cfg.ConnectionEventBufferSize)
	connID := s.service.Connect(identity, snk)
	s.log.Debug("Client connected", "identity", identity.ID, "connection_id", connID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer s.service.Disconnect(connID)

	go s.writePump(c, snk)
	s.readPump(ctx, c, connID, snk)

	s.log.Debug("Client disconnected", "identity", identity.ID, "connection_id", connID)
}

func (s *Server) readPump(ctx context.Context, c *websocket.Conn, connID domain.ConnectionID, snk *sink.ConnectionSink) {
	c.SetReadLimit(int64(s.cfg.MaxPayloadLength + 1024))
	_ = c.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	for {
		var frame clientFrame
		if err := c.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("WebSocket read error", "connection_id", connID, "error", err)
			}
			return
		}
		_ = c.SetReadDeadline(time.Now().Add(s.cfg.PongWait))

		if err := s.validate.Struct(frame); err != nil {
			_ = snk.PushEvent(errorEvent{room: domain.RoomID(frame.Room), msg: "malformed frame"})
			continue
		}
		room := domain.RoomID(frame.Room)

		switch frame.Type {
		case "subscribe":
			if err := s.service.Subscribe(ctx, connID, room); err != nil {
				_ = snk.PushEvent(errorEvent{room: room, msg: err.Error()})
			}
		case "unsubscribe":
			s.service.Unsubscribe(connID, room)
		case "message":
			if len(frame.Payload) == 0 || len(frame.Payload) > s.cfg.MaxPayloadLength {
				_ = snk.PushEvent(errorEvent{room: room, msg: "payload length out of bounds"})
				continue
			}
			if _, err := s.service.SendMessage(ctx, connID, room, frame.Payload); err != nil {
				_ = snk.PushEvent(errorEvent{room: room, msg: err.Error()})
			}
		case "ack":
			if err := s.service.Acknowledge(connID, room, frame.Seq); err != nil {
				_ = snk.PushEvent(errorEvent{room: room, msg: err.Error()})
			}
		}
	}
}

// writePump is the only writer on the socket. It drains the sink's message
// and event channels, keeps the connection alive with pings, and closes the
// socket on any error so the read pump unblocks.
func (s *Server) writePump(c *websocket.Conn, snk *sink.ConnectionSink) {
	ticker := time.NewTicker(s.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	write := func(frame serverFrame) bool {
		_ = c.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
		if err := c.WriteJSON(frame); err != nil {
			s.log.Debug("WebSocket write error", "error", err)
			return false
		}
		return true
	}

	for {
		select {
		case msg := <-snk.Messages:
			resp := toMessageResponse(msg)
			if !write(serverFrame{Type: "message", Room: string(msg.Room), Seq: msg.Seq, Message: &resp}) {
				return
			}
		case evt := <-snk.Events:
			if !write(toEventFrame(evt)) {
				return
			}
		case <-ticker.C:
			_ = c.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-snk.Closed():
			_ = c.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			_ = c.WriteMessage(websocket.CloseMessage, nil)
			return
		}
	}
}

func toEventFrame(evt event.DomainEvent) serverFrame {
	switch e := evt.(type) {
	case event.PresenceChanged:
		return serverFrame{Type: "presence", Room: string(e.Room),
			Presence: &presenceFrame{Identity: e.Identity.ID, State: string(e.State), At: e.At}}
	case event.MemberJoined:
		return serverFrame{Type: "member_joined", Room: string(e.Room),
			Member: &memberFrame{Identity: e.Identity.ID, Display: e.Identity.DisplayName, At: e.At}}
	case event.MemberLeft:
		return serverFrame{Type: "member_left", Room: string(e.Room),
			Member: &memberFrame{Identity: e.Identity.ID, Display: e.Identity.DisplayName, At: e.At}}
	case event.PersistenceDegraded:
		return serverFrame{Type: "persistence_degraded", Room: string(e.Room), Seq: e.Seq}
	case event.SequenceHalted:
		return serverFrame{Type: "sequence_halted", Room: string(e.Room), Error: e.Detail}
	case errorEvent:
		return serverFrame{Type: "error", Room: string(e.room), Error: e.msg}
	default:
		return serverFrame{Type: "event", Room: string(evt.RoomID())}
	}
}
