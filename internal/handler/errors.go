package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/service"
)

// writeError maps a service error onto the HTTP error envelope. Internal
// causes are logged and never sent to the client.
func writeError(c fiber.Ctx, err error) error {
	kind := service.KindOf(err)

	status, code := fiber.StatusInternalServerError, "INTERNAL_ERROR"
	switch kind {
	case service.KindValidation:
		status, code = fiber.StatusBadRequest, "INVALID_FIELD"
	case service.KindUnauthenticated:
		status, code = fiber.StatusUnauthorized, "UNAUTHENTICATED"
	case service.KindForbidden:
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case service.KindNotFound:
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case service.KindConflict:
		status, code = fiber.StatusConflict, "CONFLICT"
	default:
		middleware.Logger.Error().Err(err).
			Str("method", c.Method()).
			Str("path", middleware.SanitizePath(c.Path())).
			Msg("request failed")
	}

	return middleware.ErrorResponse(c, status, code, service.MessageOf(err))
}

func invalidBody(c fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
}

func unauthenticated(c fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
}
