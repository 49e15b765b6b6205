package middleware

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
)

// MaxSearchLen bounds the ?search= term accepted by the video listing.
const MaxSearchLen = 100

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"code":    code,
	})
}

// ValidateSearch trims a search term and checks its length.
func ValidateSearch(term string) (string, string) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) > MaxSearchLen {
		return "", "search must be at most 100 characters"
	}
	return term, ""
}

// BearerToken extracts the credential from an Authorization header value.
// It returns "" when the header is absent or uses another scheme.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
