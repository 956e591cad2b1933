package handlers

import (
	"net/url"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper/utils"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/services"
	"github.com/gofiber/fiber/v2"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	svc          services.AuthService
	frontendURL  string
	secureCookie bool
}

func NewAuthHandler(svc services.AuthService, frontendURL string, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, frontendURL: frontendURL, secureCookie: secureCookie}
}

// SetupRoutes must run before the admin routes are registered so that the admin
// login is matched ahead of the admin guard.
func (h *AuthHandler) SetupRoutes(api fiber.Router, _ Guards) {
	api.Get("/auth/google/login", h.GoogleLogin)
	api.Get("/auth/google/callback", h.GoogleCallback)
	api.Post("/admin/login", h.AdminLogin)
}

func (h *AuthHandler) GoogleLogin(ctx *fiber.Ctx) error {
	redirect, state, err := h.svc.GoogleLoginURL()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusServiceUnavailable, err.Error())
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.Redirect(redirect, fiber.StatusTemporaryRedirect)
}

// GoogleCallback hands the session token to the frontend through the redirect URL.
// Without a frontend URL it answers with JSON.
func (h *AuthHandler) GoogleCallback(ctx *fiber.Ctx) error {
	state := ctx.Query("state")
	if state == "" || state != ctx.Cookies(stateCookie) {
		return h.callbackFailed(ctx, services.ForbiddenError("invalid oauth state"))
	}
	ctx.ClearCookie(stateCookie)

	resp, err := h.svc.GoogleCallback(ctx.UserContext(), ctx.Query("code"))
	if err != nil {
		return h.callbackFailed(ctx, err)
	}

	if h.frontendURL == "" {
		return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
	}
	return ctx.Redirect(h.frontendURL+"/bc/auth-callback?token="+url.QueryEscape(resp.Token), fiber.StatusFound)
}

func (h *AuthHandler) callbackFailed(ctx *fiber.Ctx, err error) error {
	if h.frontendURL == "" {
		return respondError(ctx, err)
	}
	reason := "auth_failed"
	if kind, ok := services.KindOf(err); ok && kind == services.KindForbidden {
		reason = "domain_not_allowed"
	}
	return ctx.Redirect(h.frontendURL+"/bc?error="+reason, fiber.StatusFound)
}

func (h *AuthHandler) AdminLogin(ctx *fiber.Ctx) error {
	var req dto.AdminLogin
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	resp, err := h.svc.AdminLogin(req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}
