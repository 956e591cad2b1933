package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/api/rest/middleware"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper/utils"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Guards are the middlewares every handler hangs its routes behind.
type Guards struct {
	Auth    fiber.Handler
	Admin   fiber.Handler
	Limiter middleware.Limiter
}

var statusByKind = map[services.ErrorKind]int{
	services.KindValidation:        fiber.StatusBadRequest,
	services.KindAlreadyExists:     fiber.StatusConflict,
	services.KindNotFound:          fiber.StatusNotFound,
	services.KindForbidden:         fiber.StatusForbidden,
	services.KindInvalidTransition: fiber.StatusConflict,
	services.KindUnauthorized:      fiber.StatusUnauthorized,
}

// respondError writes service errors with their status. Unknown errors are logged
// and hidden behind a 500.
func respondError(ctx *fiber.Ctx, err error) error {
	var e *services.Error
	if errors.As(err, &e) {
		if status, ok := statusByKind[e.Kind]; ok {
			return ctx.Status(status).JSON(fiber.Map{
				"error": e.Message,
				"code":  e.Kind,
			})
		}
	}
	log.Printf("%s %s error: %v", ctx.Method(), ctx.Path(), err)
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
}

func currentUserID(ctx *fiber.Ctx) (uint, bool) {
	id, ok := ctx.Locals("userID").(uint)
	return id, ok && id != 0
}

// withUser runs next with the authenticated user id.
func withUser(next func(ctx *fiber.Ctx, userID uint) error) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, ok := currentUserID(ctx)
		if !ok {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
		}
		return next(ctx, userID)
	}
}

func paramID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, services.ValidationError("invalid " + name)
	}
	return uint(id), nil
}

func pageParams(ctx *fiber.Ctx) (int, int) {
	return ctx.QueryInt("limit", 0), ctx.QueryInt("offset", 0)
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return services.ValidationError("Please provide valid inputs")
	}
	return nil
}

type RouteHandler interface {
	SetupRoutes(api fiber.Router, g Guards)
}

// Register mounts every handler under /api in the given order.
func Register(app *fiber.App, g Guards, hs ...RouteHandler) {
	api := app.Group("/api")
	for _, h := range hs {
		h.SetupRoutes(api, g)
	}
}
