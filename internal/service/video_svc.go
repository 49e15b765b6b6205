package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/repository"
)

type VideoService struct {
	repo     VideoStore
	channels ChannelStore
}

func NewVideoService(repo VideoStore, channels ChannelStore) *VideoService {
	return &VideoService{repo: repo, channels: channels}
}

// Upload publishes a video in the caller's channel. When req.Channel is set
// the caller must own that channel; otherwise the caller's own channel is used.
func (s *VideoService) Upload(ctx context.Context, ownerID uuid.UUID, req model.UploadVideoRequest) (*model.Video, error) {
	v := &model.Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Thumbnail:   strings.TrimSpace(req.Thumbnail),
		VideoLink:   strings.TrimSpace(req.VideoLink),
		Category:    strings.TrimSpace(req.Category),
	}
	if v.Title == "" || strings.TrimSpace(v.Description) == "" || v.Thumbnail == "" || v.VideoLink == "" || v.Category == "" {
		return nil, validation("All fields are required")
	}
	patch := model.VideoPatch{
		Title: &v.Title, Description: &v.Description, Thumbnail: &v.Thumbnail,
		VideoLink: &v.VideoLink, Category: &v.Category,
	}
	if err := normalizeVideoPatch(&patch); err != nil {
		return nil, err
	}

	ch, err := s.resolveChannel(ctx, ownerID, req.Channel)
	if err != nil {
		return nil, err
	}
	v.ChannelID = &ch.ID

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, internal("create video", err)
	}
	return s.load(ctx, v.ID)
}

func (s *VideoService) resolveChannel(ctx context.Context, ownerID uuid.UUID, rawChannelID string) (*model.Channel, error) {
	if strings.TrimSpace(rawChannelID) == "" {
		ch, err := s.channels.FindByOwner(ctx, ownerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, notFound("Channel not found for user.")
			}
			return nil, internal("find owner channel", err)
		}
		return ch, nil
	}

	channelID, err := parseID(rawChannelID, "Invalid channel ID format")
	if err != nil {
		return nil, err
	}
	ch, err := s.channels.FindByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("Channel not found.")
		}
		return nil, internal("find channel", err)
	}
	if ch.OwnerID != ownerID {
		return nil, forbidden("You do not own this channel.")
	}
	return ch, nil
}

// List returns all videos newest first, keeping only titles that contain
// search (case-insensitive) when it is non-empty.
func (s *VideoService) List(ctx context.Context, search string) ([]model.Video, error) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal("list videos", err)
	}
	return FilterByTitle(videos, search), nil
}

// Get returns a single video with owner and channel summaries.
func (s *VideoService) Get(ctx context.Context, rawID string) (*model.Video, error) {
	id, err := parseID(rawID, "Invalid video ID format")
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// ListByChannel returns the channel's videos, newest first.
func (s *VideoService) ListByChannel(ctx context.Context, rawChannelID string) ([]model.Video, error) {
	channelID, err := parseID(rawChannelID, "Invalid channel ID format")
	if err != nil {
		return nil, err
	}
	if _, err := s.channels.FindByID(ctx, channelID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("Channel not found")
		}
		return nil, internal("find channel", err)
	}
	videos, err := s.repo.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, internal("list channel videos", err)
	}
	return videos, nil
}

// ListByOwner returns the account's videos, newest first.
func (s *VideoService) ListByOwner(ctx context.Context, rawOwnerID string) ([]model.Video, error) {
	ownerID, err := parseID(rawOwnerID, "Invalid user ID format")
	if err != nil {
		return nil, err
	}
	videos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, internal("list user videos", err)
	}
	return videos, nil
}

// RequireOwner loads the video and fails with Forbidden unless callerID owns it.
func (s *VideoService) RequireOwner(ctx context.Context, rawID string, callerID uuid.UUID, action string) (*model.Video, error) {
	id, err := parseID(rawID, "Invalid video ID format")
	if err != nil {
		return nil, err
	}
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != callerID {
		return nil, forbidden("You are not authorized to " + action + " this video")
	}
	return v, nil
}

// Update applies the patch after the ownership check, validating it with the
// same constraints as Upload.
func (s *VideoService) Update(ctx context.Context, rawID string, callerID uuid.UUID, patch model.VideoPatch) (*model.Video, error) {
	v, err := s.RequireOwner(ctx, rawID, callerID, "update")
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return v, nil
	}
	if err := normalizeVideoPatch(&patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v.ID, patch); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("Video not found")
		}
		return nil, internal("update video", err)
	}
	return s.load(ctx, v.ID)
}

// Delete removes the video. The channel's video list is derived, so the
// video disappears from it with the same write.
func (s *VideoService) Delete(ctx context.Context, rawID string, callerID uuid.UUID) error {
	v, err := s.RequireOwner(ctx, rawID, callerID, "delete")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, v.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("Video not found")
		}
		return internal("delete video", err)
	}
	return nil
}

// React records a like or dislike. A repeated reaction is rejected; switching
// sides moves the caller between the sets in one atomic update.
func (s *VideoService) React(ctx context.Context, rawID string, callerID uuid.UUID, reaction model.Reaction) (*model.ReactionResponse, error) {
	if !reaction.Valid() {
		return nil, validation("Unknown reaction")
	}
	id, err := parseID(rawID, "Invalid video ID format")
	if err != nil {
		return nil, err
	}

	resp, err := s.repo.React(ctx, id, callerID, reaction)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, notFound("Video not found")
		case errors.Is(err, repository.ErrAlreadyReacted):
			return nil, validation("You already " + string(reaction) + "d this video")
		}
		return nil, internal("react to video", err)
	}
	return resp, nil
}

func (s *VideoService) load(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("Video not found")
		}
		return nil, internal("find video", err)
	}
	return v, nil
}
