package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

// AccountStore is the persistence capability used by AccountService.
// Lookups that match nothing return pgx.ErrNoRows.
type AccountStore interface {
	Create(ctx context.Context, a *model.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, error)
	ChannelIDFor(ctx context.Context, accountID uuid.UUID) (*uuid.UUID, error)
	GetStats(ctx context.Context) (*model.StatsResponse, error)
}

// ChannelStore is the persistence capability used by ChannelService.
type ChannelStore interface {
	Create(ctx context.Context, ch *model.Channel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Channel, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Channel, error)
	List(ctx context.Context) ([]model.Channel, error)
	Update(ctx context.Context, id uuid.UUID, patch model.ChannelPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VideoStore is the persistence capability used by VideoService.
// React returns repository.ErrAlreadyReacted for a repeated reaction.
type VideoStore interface {
	Create(ctx context.Context, v *model.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]model.Video, error)
	ListByChannel(ctx context.Context, channelID uuid.UUID) ([]model.Video, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Video, error)
	Update(ctx context.Context, id uuid.UUID, patch model.VideoPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	React(ctx context.Context, videoID, accountID uuid.UUID, reaction model.Reaction) (*model.ReactionResponse, error)
}

// CommentStore is the persistence capability used by CommentService.
type CommentStore interface {
	Create(ctx context.Context, cm *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID) ([]model.Comment, error)
	UpdateMessage(ctx context.Context, id uuid.UUID, message string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
