package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staffSet map[uint]bool

func (s staffSet) IsAdmin(userID uint) (bool, error) {
	if userID == 99 {
		return false, errors.New("db down")
	}
	return s[userID], nil
}

func newApp(auth helper.Auth, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{AuthMiddleware(auth)}, extra...)
	handlers = append(handlers, func(ctx *fiber.Ctx) error {
		claims, err := auth.GetCurrentUser(ctx)
		if err != nil {
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("userID"), "email": claims.Email})
	})
	app.Get("/", handlers...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	auth := helper.SetupAuth("mw-secret")
	app := newApp(auth)

	token, err := auth.GenerateToken(7, "a@berkeley.edu")
	require.NoError(t, err)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{name: "no token", setup: func(r *http.Request) {}, status: fiber.StatusUnauthorized},
		{name: "garbage", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, status: fiber.StatusUnauthorized},
		{name: "bearer header", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, status: fiber.StatusOK},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: token}) }, status: fiber.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	auth := helper.SetupAuth("mw-secret")
	app := newApp(auth, AdminOnly(staffSet{1: true}))

	for _, tc := range []struct {
		userID uint
		status int
	}{
		{userID: 1, status: fiber.StatusOK},
		{userID: 2, status: fiber.StatusForbidden},
		{userID: 99, status: fiber.StatusInternalServerError},
	} {
		token, err := auth.GenerateToken(tc.userID, "x@berkeley.edu")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "user %d", tc.userID)
	}
}

func TestRateLimiter_Window(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter()
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("k", 2, time.Minute))
	assert.True(t, l.Allow("k", 2, time.Minute))
	assert.False(t, l.Allow("k", 2, time.Minute))
	assert.True(t, l.Allow("other", 2, time.Minute))

	now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("k", 2, time.Minute))
}

func TestRateLimit_PerUser(t *testing.T) {
	auth := helper.SetupAuth("mw-secret")
	limiter := NewFallbackLimiter(NewRedisLimiter(nil), NewRateLimiter())
	app := newApp(auth, RateLimit(limiter, "swipe", 1, time.Minute))

	call := func(userID uint) int {
		token, err := auth.GenerateToken(userID, "x@berkeley.edu")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, call(1))
	assert.Equal(t, fiber.StatusTooManyRequests, call(1))
	assert.Equal(t, fiber.StatusOK, call(2))
}
