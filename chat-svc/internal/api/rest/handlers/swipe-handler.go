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
	swipeLimit  = 60
	swipeWindow = time.Minute
)

type SwipeHandler struct {
	svc services.SwipeService
}

func NewSwipeHandler(svc services.SwipeService) *SwipeHandler {
	return &SwipeHandler{svc: svc}
}

func (h *SwipeHandler) SetupRoutes(api fiber.Router, g Guards) {
	api.Post("/swipe", g.Auth, middleware.RateLimit(g.Limiter, "swipe", swipeLimit, swipeWindow), withUser(h.Swipe))
	api.Get("/discover", g.Auth, withUser(h.Discover))
}

func (h *SwipeHandler) Swipe(ctx *fiber.Ctx, userID uint) error {
	var req dto.SwipeRequest
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	resp, err := h.svc.Swipe(userID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *SwipeHandler) Discover(ctx *fiber.Ctx, userID uint) error {
	resp, err := h.svc.Discover(userID)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}
