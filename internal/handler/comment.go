package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type CommentHandler struct {
	svc CommentAPI
}

func NewCommentHandler(svc CommentAPI) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Add handles POST /api/comments
func (h *CommentHandler) Add(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req model.AddCommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}

	comment, err := h.svc.Add(c.Context(), identity.AccountID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// ListByVideo handles GET /api/comments/:videoId
func (h *CommentHandler) ListByVideo(c fiber.Ctx) error {
	comments, err := h.svc.ListByVideo(c.Context(), c.Params("videoId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// Update handles PUT /api/comments/:commentId
func (h *CommentHandler) Update(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	id := c.Params("commentId")

	var req model.UpdateCommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		if _, authErr := h.svc.RequireAuthor(c.Context(), id, identity.AccountID, "update"); authErr != nil {
			return writeError(c, authErr)
		}
		return invalidBody(c)
	}

	comment, err := h.svc.Update(c.Context(), id, identity.AccountID, req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment updated successfully",
		"comment": comment,
	})
}

// Delete handles DELETE /api/comments/:commentId
func (h *CommentHandler) Delete(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.svc.Delete(c.Context(), c.Params("commentId"), identity.AccountID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
