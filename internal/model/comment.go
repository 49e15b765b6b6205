package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a message left by an account on a video.
type Comment struct {
	ID        uuid.UUID     `json:"id"`
	AuthorID  uuid.UUID     `json:"-"`
	Author    *OwnerSummary `json:"user,omitempty"`
	VideoID   uuid.UUID     `json:"videoId"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AddCommentRequest is the API request body for posting a comment.
type AddCommentRequest struct {
	VideoID string `json:"videoId"`
	Message string `json:"message"`
}

// UpdateCommentRequest is the API request body for editing a comment.
type UpdateCommentRequest struct {
	Message string `json:"message"`
}
