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

type ChannelService struct {
	repo   ChannelStore
	videos VideoStore
}

func NewChannelService(repo ChannelStore, videos VideoStore) *ChannelService {
	return &ChannelService{repo: repo, videos: videos}
}

// Create registers a channel for the owner. An account owns at most one
// channel and channel names are unique.
func (s *ChannelService) Create(ctx context.Context, ownerID uuid.UUID, req model.CreateChannelRequest) (*model.Channel, error) {
	name := strings.TrimSpace(req.ChannelName)
	if name == "" {
		return nil, validation("Channel name is required")
	}
	if tooLong(name, MaxChannelNameLen) {
		return nil, validation("Channel name must be at most 100 characters")
	}

	ch := &model.Channel{
		ID:            uuid.New(),
		ChannelName:   name,
		OwnerID:       ownerID,
		Description:   strings.TrimSpace(req.Description),
		ChannelBanner: strings.TrimSpace(req.ChannelBanner),
	}
	if err := s.repo.Create(ctx, ch); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Channel name already taken or user already owns a channel", err)
		}
		return nil, internal("create channel", err)
	}

	return s.load(ctx, ch.ID)
}

// Get returns a channel with its owner summary and full video list.
func (s *ChannelService) Get(ctx context.Context, rawID string) (*model.Channel, error) {
	id, err := parseID(rawID, "Invalid channel id")
	if err != nil {
		return nil, err
	}

	ch, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	videos, err := s.videos.ListByChannel(ctx, id)
	if err != nil {
		return nil, internal("list channel videos", err)
	}
	ch.Videos = videos
	return ch, nil
}

// List returns all channels with their owner summaries.
func (s *ChannelService) List(ctx context.Context) ([]model.Channel, error) {
	channels, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal("list channels", err)
	}
	return channels, nil
}

// RequireOwner loads the channel and fails with Forbidden unless callerID owns it.
func (s *ChannelService) RequireOwner(ctx context.Context, rawID string, callerID uuid.UUID) (*model.Channel, error) {
	id, err := parseID(rawID, "Invalid channel id")
	if err != nil {
		return nil, err
	}
	ch, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.OwnerID != callerID {
		return nil, forbidden("You do not own this channel")
	}
	return ch, nil
}

// Update merges the owner-editable fields of patch into the channel.
func (s *ChannelService) Update(ctx context.Context, rawID string, callerID uuid.UUID, patch model.ChannelPatch) (*model.Channel, error) {
	ch, err := s.RequireOwner(ctx, rawID, callerID)
	if err != nil {
		return nil, err
	}

	if patch.ChannelName != nil {
		name := strings.TrimSpace(*patch.ChannelName)
		if name == "" {
			return nil, validation("Channel name is required")
		}
		if tooLong(name, MaxChannelNameLen) {
			return nil, validation("Channel name must be at most 100 characters")
		}
		patch.ChannelName = &name
	}

	if err := s.repo.Update(ctx, ch.ID, patch); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, conflict("Channel name already taken", err)
		case errors.Is(err, pgx.ErrNoRows):
			return nil, notFound("Channel not found")
		}
		return nil, internal("update channel", err)
	}

	return s.load(ctx, ch.ID)
}

// Delete removes the channel. Its videos are kept and unlinked.
func (s *ChannelService) Delete(ctx context.Context, rawID string, callerID uuid.UUID) error {
	ch, err := s.RequireOwner(ctx, rawID, callerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ch.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("Channel not found")
		}
		return internal("delete channel", err)
	}
	return nil
}

func (s *ChannelService) load(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	ch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("Channel not found")
		}
		return nil, internal("find channel", err)
	}
	return ch, nil
}
