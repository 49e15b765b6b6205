package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `id, user_name, email, password_hash, about, profile_pic, role, created_at, updated_at`

func scanAccount(row scanner) (*model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.UserName, &a.Email, &a.PasswordHash, &a.About,
		&a.ProfilePic, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account. Unique violations on email or user_name
// surface as ErrDuplicate.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, user_name, email, password_hash, about, profile_pic, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		a.ID, a.UserName, a.Email, a.PasswordHash, a.About, a.ProfilePic, a.Role,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	return mapWriteErr(err)
}

// FindByID returns a single account by its ID.
func (r *AccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// FindByEmail returns the account registered with the given normalized email.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// ExistsByEmailOrUserName reports whether either identifier is already taken.
func (r *AccountRepo) ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1 OR user_name = $2)`,
		email, userName).Scan(&exists)
	return exists, err
}

// ChannelIDFor returns the ID of the channel owned by the account, or nil.
func (r *AccountRepo) ChannelIDFor(ctx context.Context, accountID uuid.UUID) (*uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT id FROM channels WHERE owner_id = $1`, accountID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GetStats returns aggregate statistics from all tables. The totals and the
// per-category breakdown run concurrently on separate pool connections.
func (r *AccountRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	stats := &model.StatsResponse{VideosByCategory: make(map[string]int)}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.pool.QueryRow(gctx, `
			SELECT
				(SELECT COUNT(*) FROM accounts) AS total_accounts,
				(SELECT COUNT(*) FROM channels) AS total_channels,
				(SELECT COUNT(*) FROM videos)   AS total_videos,
				(SELECT COUNT(*) FROM comments) AS total_comments`,
		).Scan(&stats.TotalAccounts, &stats.TotalChannels, &stats.TotalVideos, &stats.TotalComments)
	})

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `
			SELECT category, COUNT(*) AS total
			FROM videos
			GROUP BY category`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var cat string
			var count int
			if err := rows.Scan(&cat, &count); err != nil {
				return err
			}
			stats.VideosByCategory[cat] = count
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
