package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/service"
)

// AccountAPI is the identity capability the user handlers depend on.
type AccountAPI interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.Profile, error)
	Login(ctx context.Context, req model.LoginRequest) (*service.Session, error)
	Profile(ctx context.Context, rawID string) (*model.Profile, error)
	GetStats(ctx context.Context) (*model.StatsResponse, error)
}

// ChannelAPI is the channel registry capability.
type ChannelAPI interface {
	Create(ctx context.Context, ownerID uuid.UUID, req model.CreateChannelRequest) (*model.Channel, error)
	Get(ctx context.Context, rawID string) (*model.Channel, error)
	List(ctx context.Context) ([]model.Channel, error)
	RequireOwner(ctx context.Context, rawID string, callerID uuid.UUID) (*model.Channel, error)
	Update(ctx context.Context, rawID string, callerID uuid.UUID, patch model.ChannelPatch) (*model.Channel, error)
	Delete(ctx context.Context, rawID string, callerID uuid.UUID) error
}

// VideoAPI is the video catalog capability.
type VideoAPI interface {
	Upload(ctx context.Context, ownerID uuid.UUID, req model.UploadVideoRequest) (*model.Video, error)
	List(ctx context.Context, search string) ([]model.Video, error)
	Get(ctx context.Context, rawID string) (*model.Video, error)
	ListByChannel(ctx context.Context, rawChannelID string) ([]model.Video, error)
	ListByOwner(ctx context.Context, rawOwnerID string) ([]model.Video, error)
	RequireOwner(ctx context.Context, rawID string, callerID uuid.UUID, action string) (*model.Video, error)
	Update(ctx context.Context, rawID string, callerID uuid.UUID, patch model.VideoPatch) (*model.Video, error)
	Delete(ctx context.Context, rawID string, callerID uuid.UUID) error
	React(ctx context.Context, rawID string, callerID uuid.UUID, reaction model.Reaction) (*model.ReactionResponse, error)
}

// CommentAPI is the comment ledger capability.
type CommentAPI interface {
	Add(ctx context.Context, authorID uuid.UUID, req model.AddCommentRequest) (*model.Comment, error)
	ListByVideo(ctx context.Context, rawVideoID string) ([]model.Comment, error)
	RequireAuthor(ctx context.Context, rawID string, callerID uuid.UUID, action string) (*model.Comment, error)
	Update(ctx context.Context, rawID string, callerID uuid.UUID, message string) (*model.Comment, error)
	Delete(ctx context.Context, rawID string, callerID uuid.UUID) error
}
