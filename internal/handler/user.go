package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type UserHandler struct {
	svc          AccountAPI
	secureCookie bool
}

func NewUserHandler(svc AccountAPI, secureCookie bool) *UserHandler {
	return &UserHandler{svc: svc, secureCookie: secureCookie}
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}

	profile, err := h.svc.Register(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	Metrics.Registrations.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    profile,
	})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}

	session, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	h.setTokenCookie(c, session.Token, session.ExpiresAt)
	return c.JSON(model.LoginResponse{
		Message: "Login successful",
		Token:   session.Token,
		User:    session.Profile,
	})
}

// Logout handles POST /api/users/logout. Credentials are stateless, so this
// only clears the cookie.
func (h *UserHandler) Logout(c fiber.Ctx) error {
	h.setTokenCookie(c, "", time.Unix(0, 0))
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// GetProfile handles GET /api/users/:id
func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	profile, err := h.svc.Profile(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"user": profile})
}

func (h *UserHandler) setTokenCookie(c fiber.Ctx, value string, expires time.Time) {
	cookie := &fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	c.Cookie(cookie)
}
