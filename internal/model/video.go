package model

import (
	"time"

	"github.com/google/uuid"
)

// Video is a metadata record pointing at externally hosted media.
type Video struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"-"`
	Owner       *OwnerSummary   `json:"user,omitempty"`
	ChannelID   *uuid.UUID      `json:"channelId,omitempty"`
	Channel     *ChannelSummary `json:"channel,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	VideoLink   string          `json:"videoLink"`
	Category    string          `json:"category"`
	Views       int64           `json:"views"`
	Like        int64           `json:"like"`
	Dislike     int64           `json:"dislike"`
	LikedBy     []uuid.UUID     `json:"likedBy"`
	DislikedBy  []uuid.UUID     `json:"dislikedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Video categories.
const (
	CategoryAll        = "All"
	CategoryTrending   = "Trending"
	CategoryMusic      = "Music"
	CategoryGaming     = "Gaming"
	CategoryNews       = "News"
	CategoryLive       = "Live"
	CategoryUPSC       = "UPSC"
	CategoryEnglish    = "English"
	CategoryReact      = "React"
	CategoryJavascript = "Javascript"
)

// Categories lists every accepted video category in display order.
var Categories = []string{
	CategoryAll, CategoryTrending, CategoryMusic, CategoryGaming, CategoryNews,
	CategoryLive, CategoryUPSC, CategoryEnglish, CategoryReact, CategoryJavascript,
}

// UploadVideoRequest is the API request body for publishing a video.
type UploadVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	VideoLink   string `json:"videoLink"`
	Category    string `json:"category"`
	Channel     string `json:"channel,omitempty"`
}

// VideoPatch holds the owner-editable video fields. Nil means unchanged.
type VideoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	VideoLink   *string `json:"videoLink"`
	Category    *string `json:"category"`
}

// Empty reports whether the patch changes nothing.
func (p VideoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Thumbnail == nil &&
		p.VideoLink == nil && p.Category == nil
}
