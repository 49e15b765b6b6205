package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

const commentSelect = `
	SELECT cm.id, cm.author_id, cm.video_id, cm.message, cm.created_at, cm.updated_at,
	       a.user_name, a.profile_pic
	FROM comments cm
	JOIN accounts a ON a.id = cm.author_id`

func scanComment(row scanner) (*model.Comment, error) {
	var cm model.Comment
	author := &model.OwnerSummary{}
	err := row.Scan(
		&cm.ID, &cm.AuthorID, &cm.VideoID, &cm.Message, &cm.CreatedAt, &cm.UpdatedAt,
		&author.UserName, &author.ProfilePic,
	)
	if err != nil {
		return nil, err
	}
	author.ID = cm.AuthorID
	cm.Author = author
	return &cm, nil
}

// Create inserts a comment stamped with the database clock.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, author_id, video_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		cm.ID, cm.AuthorID, cm.VideoID, cm.Message,
	).Scan(&cm.CreatedAt, &cm.UpdatedAt)
}

// FindByID returns a single comment with its author summary.
func (r *CommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE cm.id = $1`, id))
}

// ListByVideo returns the video's comments, newest first.
func (r *CommentRepo) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, commentSelect+` WHERE cm.video_id = $1 ORDER BY cm.created_at DESC`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *cm)
	}
	return comments, rows.Err()
}

// UpdateMessage replaces the comment text.
func (r *CommentRepo) UpdateMessage(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE comments SET message = $2, updated_at = NOW() WHERE id = $1`, id, message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the comment.
func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
