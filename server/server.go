// Package server exposes the relay over HTTP and WebSocket.
package server

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chat-relay/auth"
	"chat-relay/services"
)

// Config is the transport tuning, loaded from the environment by cmd.
type Config struct {
	ConnectionBufferSize      int
	ConnectionEventBufferSize int
	MaxPayloadLength          int
	WriteWait                 time.Duration
	PongWait                  time.Duration
	PingPeriod                time.Duration
	HistoryLimit              int
}

type Server struct {
	app      *fiber.App
	log      *slog.Logger
	service  services.IChatService
	validate *validator.Validate
	cfg      Config
}

func New(log *slog.Logger, service services.IChatService, tokens *auth.TokenValidator, cfg Config) *Server {
	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		log:      log,
		service:  service,
		validate: validator.New(),
		cfg:      cfg,
	}

	s.app.Get("/healthz", s.healthz)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authed := s.app.Group("", auth.Middleware(tokens))
	authed.Post("/rooms", s.createRoom)
	authed.Post("/rooms/:roomID/join", s.joinRoom)
	authed.Post("/rooms/:roomID/leave", s.leaveRoom)
	authed.Get("/rooms/:roomID/messages", s.history)
	authed.Get("/presence/:identityID", s.presenceOf)

	authed.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	authed.Get("/ws", websocket.New(s.handleSocket))

	return s
}

func (s *Server) Listen(address string) error {
	return s.app.Listen(address)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
