package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type VideoHandler struct {
	svc VideoAPI
}

func NewVideoHandler(svc VideoAPI) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Upload handles POST /api/videos
func (h *VideoHandler) Upload(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req model.UploadVideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}

	video, err := h.svc.Upload(c.Context(), identity.AccountID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Video uploaded successfully",
		"video":   video,
	})
}

// List handles GET /api/videos?search=
func (h *VideoHandler) List(c fiber.Ctx) error {
	search, errMsg := middleware.ValidateSearch(c.Query("search"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	videos, err := h.svc.List(c.Context(), search)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"videos": videos})
}

// Get handles GET /api/videos/:id
func (h *VideoHandler) Get(c fiber.Ctx) error {
	video, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}

// ListByChannel handles GET /api/videos/channel/:channelId
func (h *VideoHandler) ListByChannel(c fiber.Ctx) error {
	videos, err := h.svc.ListByChannel(c.Context(), c.Params("channelId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"videos": videos})
}

// ListByOwner handles GET /api/videos/user/:userId
func (h *VideoHandler) ListByOwner(c fiber.Ctx) error {
	videos, err := h.svc.ListByOwner(c.Context(), c.Params("userId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"videos": videos})
}

// Update handles PUT /api/videos/:id. A non-owner gets 403 whatever the
// payload looks like.
func (h *VideoHandler) Update(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	id := c.Params("id")

	var patch model.VideoPatch
	if err := c.Bind().JSON(&patch); err != nil {
		if _, ownErr := h.svc.RequireOwner(c.Context(), id, identity.AccountID, "update"); ownErr != nil {
			return writeError(c, ownErr)
		}
		return invalidBody(c)
	}

	video, err := h.svc.Update(c.Context(), id, identity.AccountID, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Video updated successfully",
		"video":   video,
	})
}

// Delete handles DELETE /api/videos/:id
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.svc.Delete(c.Context(), c.Params("id"), identity.AccountID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Video deleted successfully"})
}

// Like handles POST /api/videos/:id/like
func (h *VideoHandler) Like(c fiber.Ctx) error {
	return h.react(c, model.ReactionLike)
}

// Dislike handles POST /api/videos/:id/dislike
func (h *VideoHandler) Dislike(c fiber.Ctx) error {
	return h.react(c, model.ReactionDislike)
}

func (h *VideoHandler) react(c fiber.Ctx, reaction model.Reaction) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.svc.React(c.Context(), c.Params("id"), identity.AccountID, reaction)
	if err != nil {
		return writeError(c, err)
	}
	Metrics.Reactions.WithLabelValues(string(reaction)).Inc()
	return c.JSON(resp)
}
