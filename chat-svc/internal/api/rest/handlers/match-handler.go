package handlers

import (
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/api/rest/middleware"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper/utils"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	messageLimit  = 30
	messageWindow = time.Minute
)

// MatchHandler serves the participant side of a match: details and the thread.
type MatchHandler struct {
	matches  services.MatchService
	messages services.MessageService
}

func NewMatchHandler(matches services.MatchService, messages services.MessageService) *MatchHandler {
	return &MatchHandler{matches: matches, messages: messages}
}

func (h *MatchHandler) SetupRoutes(api fiber.Router, g Guards) {
	m := api.Group("/matches", g.Auth)

	m.Get("/", withUser(h.List))
	m.Get("/:id", withUser(h.Get))
	m.Get("/:id/messages", withUser(h.ListMessages))
	m.Post("/:id/messages", middleware.RateLimit(g.Limiter, "message", messageLimit, messageWindow), withUser(h.PostMessage))
	m.Post("/:id/messages/mark-read", withUser(h.MarkRead))
}

func (h *MatchHandler) List(ctx *fiber.Ctx, userID uint) error {
	out, err := h.matches.ListForUser(userID)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *MatchHandler) Get(ctx *fiber.Ctx, userID uint) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	out, err := h.matches.GetForUser(userID, id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *MatchHandler) ListMessages(ctx *fiber.Ctx, userID uint) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	out, err := h.messages.List(userID, id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *MatchHandler) PostMessage(ctx *fiber.Ctx, userID uint) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var req dto.SendMessage
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	out, err := h.messages.Post(userID, id, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, out)
}

func (h *MatchHandler) MarkRead(ctx *fiber.Ctx, userID uint) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	out, err := h.messages.MarkRead(userID, id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}
