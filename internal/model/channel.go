package model

import (
	"time"

	"github.com/google/uuid"
)

// Channel is a named video collection owned by one account.
type Channel struct {
	ID            uuid.UUID     `json:"id"`
	ChannelName   string        `json:"channelName"`
	OwnerID       uuid.UUID     `json:"-"`
	Owner         *OwnerSummary `json:"owner,omitempty"`
	Description   string        `json:"description"`
	ChannelBanner string        `json:"channelBanner"`
	Subscribers   int           `json:"subscribers"`
	Videos        []Video       `json:"videos,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ChannelSummary is the condensed channel embedded in a video detail.
type ChannelSummary struct {
	ID          uuid.UUID `json:"id"`
	ChannelName string    `json:"channelName"`
	Subscribers int       `json:"subscribers"`
}

// CreateChannelRequest is the API request body for channel creation.
type CreateChannelRequest struct {
	ChannelName   string `json:"channelName"`
	Description   string `json:"description"`
	ChannelBanner string `json:"channelBanner"`
}

// ChannelPatch holds the owner-editable channel fields. Nil means unchanged.
type ChannelPatch struct {
	ChannelName   *string `json:"channelName"`
	Description   *string `json:"description"`
	ChannelBanner *string `json:"channelBanner"`
}
