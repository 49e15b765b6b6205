package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

const channelSelect = `
	SELECT c.id, c.channel_name, c.owner_id, c.description, c.channel_banner,
	       c.subscribers, c.created_at, c.updated_at, a.user_name, a.profile_pic
	FROM channels c
	JOIN accounts a ON a.id = c.owner_id`

func scanChannel(row scanner) (*model.Channel, error) {
	var ch model.Channel
	owner := &model.OwnerSummary{}
	err := row.Scan(
		&ch.ID, &ch.ChannelName, &ch.OwnerID, &ch.Description, &ch.ChannelBanner,
		&ch.Subscribers, &ch.CreatedAt, &ch.UpdatedAt, &owner.UserName, &owner.ProfilePic,
	)
	if err != nil {
		return nil, err
	}
	owner.ID = ch.OwnerID
	ch.Owner = owner
	return &ch, nil
}

// Create inserts a channel. A taken name or an owner that already has a
// channel surfaces as ErrDuplicate.
func (r *ChannelRepo) Create(ctx context.Context, ch *model.Channel) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO channels (id, channel_name, owner_id, description, channel_banner)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING subscribers, created_at, updated_at`,
		ch.ID, ch.ChannelName, ch.OwnerID, ch.Description, ch.ChannelBanner,
	).Scan(&ch.Subscribers, &ch.CreatedAt, &ch.UpdatedAt)
	return mapWriteErr(err)
}

// FindByID returns a channel with its owner summary.
func (r *ChannelRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	return scanChannel(r.pool.QueryRow(ctx, channelSelect+` WHERE c.id = $1`, id))
}

// FindByOwner returns the channel owned by the given account.
func (r *ChannelRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Channel, error) {
	return scanChannel(r.pool.QueryRow(ctx, channelSelect+` WHERE c.owner_id = $1`, ownerID))
}

// List returns every channel, newest first.
func (r *ChannelRepo) List(ctx context.Context) ([]model.Channel, error) {
	rows, err := r.pool.Query(ctx, channelSelect+` ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := []model.Channel{}
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, *ch)
	}
	return channels, rows.Err()
}

// Update merges the non-nil patch fields into the channel.
func (r *ChannelRepo) Update(ctx context.Context, id uuid.UUID, patch model.ChannelPatch) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE channels
		SET channel_name   = COALESCE($2::text, channel_name),
		    description    = COALESCE($3::text, description),
		    channel_banner = COALESCE($4::text, channel_banner),
		    updated_at     = NOW()
		WHERE id = $1`,
		id, patch.ChannelName, patch.Description, patch.ChannelBanner)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the channel. Its videos stay and lose their channel
// reference through ON DELETE SET NULL.
func (r *ChannelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
