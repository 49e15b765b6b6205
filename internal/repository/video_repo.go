package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

const videoSelect = `
	SELECT v.id, v.owner_id, v.channel_id, v.title, v.description, v.thumbnail,
	       v.video_link, v.category, v.views, v.likes, v.dislikes, v.liked_by,
	       v.disliked_by, v.created_at, v.updated_at,
	       a.user_name, a.profile_pic, c.channel_name, c.subscribers
	FROM videos v
	JOIN accounts a ON a.id = v.owner_id
	LEFT JOIN channels c ON c.id = v.channel_id`

func scanVideo(row scanner) (*model.Video, error) {
	var v model.Video
	owner := &model.OwnerSummary{}
	var channelName *string
	var subscribers *int
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.ChannelID, &v.Title, &v.Description, &v.Thumbnail,
		&v.VideoLink, &v.Category, &v.Views, &v.Like, &v.Dislike, &v.LikedBy,
		&v.DislikedBy, &v.CreatedAt, &v.UpdatedAt,
		&owner.UserName, &owner.ProfilePic, &channelName, &subscribers,
	)
	if err != nil {
		return nil, err
	}
	owner.ID = v.OwnerID
	v.Owner = owner
	if v.ChannelID != nil && channelName != nil {
		v.Channel = &model.ChannelSummary{ID: *v.ChannelID, ChannelName: *channelName}
		if subscribers != nil {
			v.Channel.Subscribers = *subscribers
		}
	}
	if v.LikedBy == nil {
		v.LikedBy = []uuid.UUID{}
	}
	if v.DislikedBy == nil {
		v.DislikedBy = []uuid.UUID{}
	}
	return &v, nil
}

func (r *VideoRepo) queryVideos(ctx context.Context, query string, args ...any) ([]model.Video, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []model.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

// Create inserts a video already linked to its channel. The channel's video
// list is derived from videos.channel_id, so this is the only write.
func (r *VideoRepo) Create(ctx context.Context, v *model.Video) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO videos (id, owner_id, channel_id, title, description, thumbnail, video_link, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING views, likes, dislikes, created_at, updated_at`,
		v.ID, v.OwnerID, v.ChannelID, v.Title, v.Description, v.Thumbnail, v.VideoLink, v.Category,
	).Scan(&v.Views, &v.Like, &v.Dislike, &v.CreatedAt, &v.UpdatedAt)
}

// FindByID returns a video with its owner and channel summaries.
func (r *VideoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	return scanVideo(r.pool.QueryRow(ctx, videoSelect+` WHERE v.id = $1`, id))
}

// Exists reports whether a video with the given ID is stored.
func (r *VideoRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM videos WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// List returns all videos, newest first.
func (r *VideoRepo) List(ctx context.Context) ([]model.Video, error) {
	return r.queryVideos(ctx, videoSelect+` ORDER BY v.created_at DESC`)
}

// ListByChannel returns the channel's videos, newest first.
func (r *VideoRepo) ListByChannel(ctx context.Context, channelID uuid.UUID) ([]model.Video, error) {
	return r.queryVideos(ctx, videoSelect+` WHERE v.channel_id = $1 ORDER BY v.created_at DESC`, channelID)
}

// ListByOwner returns the account's videos, newest first.
func (r *VideoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Video, error) {
	return r.queryVideos(ctx, videoSelect+` WHERE v.owner_id = $1 ORDER BY v.created_at DESC`, ownerID)
}

// Update merges the non-nil patch fields into the video.
func (r *VideoRepo) Update(ctx context.Context, id uuid.UUID, patch model.VideoPatch) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET title       = COALESCE($2::text, title),
		    description = COALESCE($3::text, description),
		    thumbnail   = COALESCE($4::text, thumbnail),
		    video_link  = COALESCE($5::text, video_link),
		    category    = COALESCE($6::text, category),
		    updated_at  = NOW()
		WHERE id = $1`,
		id, patch.Title, patch.Description, patch.Thumbnail, patch.VideoLink, patch.Category)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the video; its comments cascade.
func (r *VideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Every expression in SET reads the pre-update row, so the opposite set is
// tested before the caller is removed from it.
const (
	likeSQL = `
		UPDATE videos
		SET likes       = likes + 1,
		    liked_by    = array_append(liked_by, $2::uuid),
		    dislikes    = CASE WHEN $2::uuid = ANY(disliked_by) THEN GREATEST(dislikes - 1, 0) ELSE dislikes END,
		    disliked_by = array_remove(disliked_by, $2::uuid),
		    updated_at  = NOW()
		WHERE id = $1 AND NOT ($2::uuid = ANY(liked_by))
		RETURNING likes, dislikes`

	dislikeSQL = `
		UPDATE videos
		SET dislikes    = dislikes + 1,
		    disliked_by = array_append(disliked_by, $2::uuid),
		    likes       = CASE WHEN $2::uuid = ANY(liked_by) THEN GREATEST(likes - 1, 0) ELSE likes END,
		    liked_by    = array_remove(liked_by, $2::uuid),
		    updated_at  = NOW()
		WHERE id = $1 AND NOT ($2::uuid = ANY(disliked_by))
		RETURNING likes, dislikes`
)

// React records a like or dislike in one conditional statement. It returns
// pgx.ErrNoRows when the video is absent and ErrAlreadyReacted when the
// account already holds the same reaction.
func (r *VideoRepo) React(ctx context.Context, videoID, accountID uuid.UUID, reaction model.Reaction) (*model.ReactionResponse, error) {
	query := likeSQL
	if reaction == model.ReactionDislike {
		query = dislikeSQL
	}

	var resp model.ReactionResponse
	err := r.pool.QueryRow(ctx, query, videoID, accountID).Scan(&resp.Like, &resp.Dislike)
	if err == nil {
		return &resp, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	exists, err := r.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, pgx.ErrNoRows
	}
	return nil, ErrAlreadyReacted
}
