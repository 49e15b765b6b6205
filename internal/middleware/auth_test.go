package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/auth"
)

func newAuthApp(tokens *auth.TokenManager) *fiber.App {
	app := fiber.New()
	app.Get("/me", RequireAuth(tokens), func(c fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(identity.AccountID.String())
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	accountID := uuid.New()
	token, _, err := tokens.Issue(accountID, "user")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	foreign, _, _ := auth.NewTokenManager("other", time.Hour).Issue(accountID, "user")

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantMsg    string
	}{
		{"bearer header", "Bearer " + token, "", fiber.StatusOK, ""},
		{"cookie", "", token, fiber.StatusOK, ""},
		{"header wins over cookie", "Bearer " + token, "garbage", fiber.StatusOK, ""},
		{"missing", "", "", fiber.StatusUnauthorized, "Authentication required"},
		{"malformed", "Bearer not-a-jwt", "", fiber.StatusUnauthorized, "Invalid or expired token"},
		{"wrong secret", "Bearer " + foreign, "", fiber.StatusUnauthorized, "Invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthApp(tokens)
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantMsg != "" {
				var body map[string]string
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["message"] != tt.wantMsg {
					t.Errorf("message = %q, want %q", body["message"], tt.wantMsg)
				}
			}
		})
	}
}
