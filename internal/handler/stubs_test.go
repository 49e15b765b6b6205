package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/auth"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/service"
)

var errBoom = errors.New("boom")

func svcErr(kind service.Kind, msg string) error {
	return &service.Error{Kind: kind, Message: msg}
}

type stubAccounts struct {
	register func(model.RegisterRequest) (*model.Profile, error)
	login    func(model.LoginRequest) (*service.Session, error)
	profile  func(string) (*model.Profile, error)
	stats    func() (*model.StatsResponse, error)
}

func (s *stubAccounts) Register(_ context.Context, req model.RegisterRequest) (*model.Profile, error) {
	return s.register(req)
}

func (s *stubAccounts) Login(_ context.Context, req model.LoginRequest) (*service.Session, error) {
	return s.login(req)
}

func (s *stubAccounts) Profile(_ context.Context, id string) (*model.Profile, error) {
	return s.profile(id)
}

func (s *stubAccounts) GetStats(context.Context) (*model.StatsResponse, error) {
	return s.stats()
}

// stubOwned answers ownership checks from a fixed owner and records whether
// the mutation itself was reached.
type stubOwned struct {
	owner   uuid.UUID
	exists  bool
	mutated bool
	err     error
}

func (s *stubOwned) requireOwner(raw string, caller uuid.UUID) error {
	if _, err := uuid.Parse(raw); err != nil {
		return svcErr(service.KindValidation, "Invalid ID format")
	}
	if !s.exists {
		return svcErr(service.KindNotFound, "Not found")
	}
	if caller != s.owner {
		return svcErr(service.KindForbidden, "Forbidden")
	}
	return nil
}

func (s *stubOwned) mutate(raw string, caller uuid.UUID) error {
	if err := s.requireOwner(raw, caller); err != nil {
		return err
	}
	s.mutated = true
	return s.err
}

type stubChannels struct{ stubOwned }

func (s *stubChannels) Create(_ context.Context, owner uuid.UUID, req model.CreateChannelRequest) (*model.Channel, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Channel{ID: uuid.New(), ChannelName: req.ChannelName, OwnerID: owner}, nil
}

func (s *stubChannels) Get(_ context.Context, raw string) (*model.Channel, error) {
	if err := s.requireOwner(raw, s.owner); err != nil {
		return nil, err
	}
	return &model.Channel{ID: uuid.MustParse(raw), ChannelName: "tv", Videos: []model.Video{}}, nil
}

func (s *stubChannels) List(context.Context) ([]model.Channel, error) {
	return []model.Channel{{ID: uuid.New(), ChannelName: "tv"}}, s.err
}

func (s *stubChannels) RequireOwner(_ context.Context, raw string, caller uuid.UUID) (*model.Channel, error) {
	return &model.Channel{}, s.requireOwner(raw, caller)
}

func (s *stubChannels) Update(_ context.Context, raw string, caller uuid.UUID, patch model.ChannelPatch) (*model.Channel, error) {
	if err := s.mutate(raw, caller); err != nil {
		return nil, err
	}
	ch := &model.Channel{ID: uuid.MustParse(raw)}
	if patch.ChannelName != nil {
		ch.ChannelName = *patch.ChannelName
	}
	return ch, nil
}

func (s *stubChannels) Delete(_ context.Context, raw string, caller uuid.UUID) error {
	return s.mutate(raw, caller)
}

type stubVideos struct {
	stubOwned
	lastSearch string
	reaction   *model.ReactionResponse
}

func (s *stubVideos) Upload(_ context.Context, owner uuid.UUID, req model.UploadVideoRequest) (*model.Video, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Video{ID: uuid.New(), OwnerID: owner, Title: req.Title}, nil
}

func (s *stubVideos) List(_ context.Context, search string) ([]model.Video, error) {
	s.lastSearch = search
	if s.err != nil {
		return nil, s.err
	}
	return []model.Video{}, nil
}

func (s *stubVideos) Get(_ context.Context, raw string) (*model.Video, error) {
	if err := s.requireOwner(raw, s.owner); err != nil {
		return nil, err
	}
	return &model.Video{ID: uuid.MustParse(raw)}, nil
}

func (s *stubVideos) ListByChannel(context.Context, string) ([]model.Video, error) {
	return []model.Video{}, s.err
}

func (s *stubVideos) ListByOwner(context.Context, string) ([]model.Video, error) {
	return []model.Video{}, s.err
}

func (s *stubVideos) RequireOwner(_ context.Context, raw string, caller uuid.UUID, _ string) (*model.Video, error) {
	return &model.Video{}, s.requireOwner(raw, caller)
}

func (s *stubVideos) Update(_ context.Context, raw string, caller uuid.UUID, _ model.VideoPatch) (*model.Video, error) {
	if err := s.mutate(raw, caller); err != nil {
		return nil, err
	}
	return &model.Video{ID: uuid.MustParse(raw)}, nil
}

func (s *stubVideos) Delete(_ context.Context, raw string, caller uuid.UUID) error {
	return s.mutate(raw, caller)
}

func (s *stubVideos) React(_ context.Context, raw string, _ uuid.UUID, _ model.Reaction) (*model.ReactionResponse, error) {
	if err := s.requireOwner(raw, s.owner); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.reaction, nil
}

type stubComments struct{ stubOwned }

func (s *stubComments) Add(_ context.Context, author uuid.UUID, req model.AddCommentRequest) (*model.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Comment{ID: uuid.New(), AuthorID: author, Message: req.Message}, nil
}

func (s *stubComments) ListByVideo(context.Context, string) ([]model.Comment, error) {
	return []model.Comment{}, s.err
}

func (s *stubComments) RequireAuthor(_ context.Context, raw string, caller uuid.UUID, _ string) (*model.Comment, error) {
	return &model.Comment{}, s.requireOwner(raw, caller)
}

func (s *stubComments) Update(_ context.Context, raw string, caller uuid.UUID, message string) (*model.Comment, error) {
	if err := s.mutate(raw, caller); err != nil {
		return nil, err
	}
	return &model.Comment{ID: uuid.MustParse(raw), Message: message}, nil
}

func (s *stubComments) Delete(_ context.Context, raw string, caller uuid.UUID) error {
	return s.mutate(raw, caller)
}

var testTokens = auth.NewTokenManager("handler-test-secret", time.Hour)

func bearer(t *testing.T, accountID uuid.UUID) string {
	t.Helper()
	token, _, err := testTokens.Issue(accountID, model.DefaultRole)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, authHeader string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test(%s %s) error = %v", method, path, err)
	}
	return resp
}

func requireAuth() fiber.Handler {
	return middleware.RequireAuth(testTokens)
}
