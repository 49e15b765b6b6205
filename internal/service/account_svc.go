package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/auth"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/repository"
	"github.com/mathieu-neron/ViewTube/viewtube-go/pkg/hash"
)

type AccountService struct {
	repo   AccountStore
	tokens *auth.TokenManager

	hashPassword func(string) (string, error)
}

func NewAccountService(repo AccountStore, tokens *auth.TokenManager) *AccountService {
	return &AccountService{repo: repo, tokens: tokens, hashPassword: hash.HashPassword}
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Profile   *model.Profile
}

// Register creates an account and returns its public profile.
func (s *AccountService) Register(ctx context.Context, req model.RegisterRequest) (*model.Profile, error) {
	userName := strings.TrimSpace(req.UserName)
	email := NormalizeEmail(req.Email)
	about := strings.TrimSpace(req.About)
	profilePic := strings.TrimSpace(req.ProfilePic)

	if userName == "" || email == "" || req.Password == "" || about == "" || profilePic == "" {
		return nil, validation("All fields are required")
	}
	if tooLong(userName, MaxUserNameLen) {
		return nil, validation("Username must be at most 64 characters")
	}
	if !validEmail(email) {
		return nil, validation("Invalid email address")
	}

	taken, err := s.repo.ExistsByEmailOrUserName(ctx, email, userName)
	if err != nil {
		return nil, internal("check account uniqueness", err)
	}
	if taken {
		return nil, conflict("Email or username already in use", nil)
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	account := &model.Account{
		ID:           uuid.New(),
		UserName:     userName,
		Email:        email,
		PasswordHash: hashed,
		About:        about,
		ProfilePic:   profilePic,
		Role:         model.DefaultRole,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Email or username already in use", err)
		}
		return nil, internal("create account", err)
	}

	return account.PublicProfile(nil), nil
}

// Login verifies credentials and issues a signed, time-bound token.
func (s *AccountService) Login(ctx context.Context, req model.LoginRequest) (*Session, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, validation("Email and password are required")
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, unauthenticated("Invalid credentials")
		}
		return nil, internal("find account", err)
	}

	if err := hash.VerifyPassword(account.PasswordHash, req.Password); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			return nil, unauthenticated("Invalid credentials")
		}
		return nil, internal("verify password", err)
	}

	token, expiresAt, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, internal("issue token", err)
	}

	channelID, err := s.repo.ChannelIDFor(ctx, account.ID)
	if err != nil {
		return nil, internal("lookup channel", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, Profile: account.PublicProfile(channelID)}, nil
}

// Profile returns the public profile for an account, including its channel id.
func (s *AccountService) Profile(ctx context.Context, rawID string) (*model.Profile, error) {
	id, err := parseID(rawID, "Invalid user ID format")
	if err != nil {
		return nil, err
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("User not found")
		}
		return nil, internal("find account", err)
	}

	channelID, err := s.repo.ChannelIDFor(ctx, id)
	if err != nil {
		return nil, internal("lookup channel", err)
	}

	return account.PublicProfile(channelID), nil
}

// GetStats returns aggregate platform statistics.
func (s *AccountService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, internal("get stats", err)
	}
	return stats, nil
}
