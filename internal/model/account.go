package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user identity.
type Account struct {
	ID           uuid.UUID `json:"id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	About        string    `json:"about"`
	ProfilePic   string    `json:"profilePic"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultRole is assigned to every newly registered account.
const DefaultRole = "user"

// Profile is the public view of an account.
type Profile struct {
	ID         uuid.UUID  `json:"id"`
	UserName   string     `json:"userName"`
	Email      string     `json:"email"`
	About      string     `json:"about"`
	ProfilePic string     `json:"profilePic"`
	Role       string     `json:"role"`
	ChannelID  *uuid.UUID `json:"channelId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// OwnerSummary is the condensed profile embedded in videos, channels and comments.
type OwnerSummary struct {
	ID         uuid.UUID `json:"id"`
	UserName   string    `json:"userName"`
	ProfilePic string    `json:"profilePic"`
}

// PublicProfile strips credentials and internal fields from an account.
func (a *Account) PublicProfile(channelID *uuid.UUID) *Profile {
	return &Profile{
		ID:         a.ID,
		UserName:   a.UserName,
		Email:      a.Email,
		About:      a.About,
		ProfilePic: a.ProfilePic,
		Role:       a.Role,
		ChannelID:  channelID,
		CreatedAt:  a.CreatedAt,
	}
}

// RegisterRequest is the API request body for account creation.
type RegisterRequest struct {
	UserName   string `json:"userName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	About      string `json:"about"`
	ProfilePic string `json:"profilePic"`
}

// LoginRequest is the API request body for credential issuance.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    *Profile `json:"user"`
}

// StatsResponse is the API response for platform statistics.
type StatsResponse struct {
	TotalAccounts    int            `json:"totalAccounts"`
	TotalChannels    int            `json:"totalChannels"`
	TotalVideos      int            `json:"totalVideos"`
	TotalComments    int            `json:"totalComments"`
	VideosByCategory map[string]int `json:"videosByCategory"`
}
