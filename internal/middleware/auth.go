package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/auth"
)

// TokenCookie is the cookie carrying the credential for browser clients.
const TokenCookie = "token"

type identityKey struct{}

// RequireAuth verifies the caller's credential, read from the Authorization
// header first and then from the token cookie, and stores the identity for
// downstream handlers. Requests without a valid credential stop with 401.
func RequireAuth(tokens *auth.TokenManager) fiber.Handler {
	return func(c fiber.Ctx) error {
		raw := BearerToken(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			raw = c.Cookies(TokenCookie)
		}
		if raw == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		}

		identity, err := tokens.Verify(raw)
		if err != nil {
			Logger.Debug().Err(err).Str("path", sanitizePath(c.Path())).Msg("rejected credential")
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Invalid or expired token")
		}

		c.Locals(identityKey{}, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity attached by RequireAuth.
func IdentityFrom(c fiber.Ctx) (*auth.Identity, bool) {
	identity, ok := c.Locals(identityKey{}).(*auth.Identity)
	return identity, ok && identity != nil
}
