package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type ChannelHandler struct {
	svc ChannelAPI
}

func NewChannelHandler(svc ChannelAPI) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// Create handles POST /api/channels
func (h *ChannelHandler) Create(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req model.CreateChannelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}

	ch, err := h.svc.Create(c.Context(), identity.AccountID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ch)
}

// List handles GET /api/channels
func (h *ChannelHandler) List(c fiber.Ctx) error {
	channels, err := h.svc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(channels)
}

// Get handles GET /api/channels/:id
func (h *ChannelHandler) Get(c fiber.Ctx) error {
	ch, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ch)
}

// Update handles PUT /api/channels/:id. Ownership is checked before the
// body is looked at.
func (h *ChannelHandler) Update(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	id := c.Params("id")

	var patch model.ChannelPatch
	if err := c.Bind().JSON(&patch); err != nil {
		if _, ownErr := h.svc.RequireOwner(c.Context(), id, identity.AccountID); ownErr != nil {
			return writeError(c, ownErr)
		}
		return invalidBody(c)
	}

	ch, err := h.svc.Update(c.Context(), id, identity.AccountID, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ch)
}

// Delete handles DELETE /api/channels/:id
func (h *ChannelHandler) Delete(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.svc.Delete(c.Context(), c.Params("id"), identity.AccountID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Channel deleted"})
}
