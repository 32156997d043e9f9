package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
)

func identityOf(c *fiber.Ctx) domain.Identity {
	identity, _ := c.Locals(auth.IdentityKey).(domain.Identity)
	return identity
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errors.MapToHTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

type roomResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type messageResponse struct {
	ID       string    `json:"id"`
	Room     string    `json:"room"`
	Seq      uint64    `json:"seq"`
	SenderID string    `json:"sender_id"`
	Sender   string    `json:"sender"`
	Payload  string    `json:"payload"`
	At       time.Time `json:"at"`
}

func toMessageResponse(m domain.Message) messageResponse {
	return messageResponse{
		ID:       m.ID.String(),
		Room:     string(m.Room),
		Seq:      m.Seq,
		SenderID: m.Sender.ID,
		Sender:   m.Sender.DisplayName,
		Payload:  m.Payload,
		At:       m.At,
	}
}

// createRoom creates a durable room and joins the creator to it.
func (s *Server) createRoom(c *fiber.Ctx) error {
	room, err := s.service.CreateRoom(c.Context(), identityOf(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(roomResponse{ID: string(room.ID), CreatedAt: room.CreatedAt})
}

func (s *Server) joinRoom(c *fiber.Ctx) error {
	room := domain.RoomID(c.Params("roomID"))
	if err := s.service.Join(c.Context(), room, identityOf(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"joined": true})
}

func (s *Server) leaveRoom(c *fiber.Ctx) error {
	room := domain.RoomID(c.Params("roomID"))
	if err := s.service.Leave(c.Context(), room, identityOf(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"left": true})
}

// history returns stored messages of a room with sequence greater than
// ?after, ascending, capped at ?limit. Membership-gated.
func (s *Server) history(c *fiber.Ctx) error {
	room := domain.RoomID(c.Params("roomID"))
	after, _ := strconv.ParseUint(c.Query("after", "0"), 10, 64)
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(s.cfg.HistoryLimit)))
	if err != nil || limit <= 0 || limit > s.cfg.HistoryLimit {
		limit = s.cfg.HistoryLimit
	}

	messages, err := s.service.History(c.Context(), room, identityOf(c).ID, after, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"messages": lo.Map(messages, func(m domain.Message, _ int) messageResponse {
			return toMessageResponse(m)
		}),
	})
}

func (s *Server) presenceOf(c *fiber.Ctx) error {
	state := s.service.PresenceOf(c.Params("identityID"))
	return c.JSON(fiber.Map{"identity": c.Params("identityID"), "state": string(state)})
}
