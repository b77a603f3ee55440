package postgres

import (
	"context"
	"errors"

	"candidate-tracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type tokenRepo struct {
	db *pgxpool.Pool
}

func NewTokenRepository(db *pgxpool.Pool) domain.TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) GetByUser(ctx context.Context, userID string) (*domain.AuthToken, error) {
	query := `SELECT token, user_id, created_at, expires_at FROM auth_tokens WHERE user_id = $1`
	var t domain.AuthToken
	err := r.db.QueryRow(ctx, query, userID).Scan(&t.Token, &t.UserID, &t.CreatedAt, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save upserts the single token row for the user. The unique index on
// user_id makes the replace atomic under concurrent logins.
func (r *tokenRepo) Save(ctx context.Context, t *domain.AuthToken) error {
	query := `INSERT INTO auth_tokens (token, user_id, created_at, expires_at)
              VALUES ($1, $2, NOW(), $3)
              ON CONFLICT (user_id) DO UPDATE
                  SET token = EXCLUDED.token,
                      created_at = EXCLUDED.created_at,
                      expires_at = EXCLUDED.expires_at
              RETURNING created_at`
	return r.db.QueryRow(ctx, query, t.Token, t.UserID, t.ExpiresAt).Scan(&t.CreatedAt)
}

// GetUser resolves a bearer token to its owner. Expired tokens and disabled
// accounts do not resolve.
func (r *tokenRepo) GetUser(ctx context.Context, token string) (*domain.User, error) {
	query := `SELECT u.id, u.username, u.password_hash, u.email, u.first_name, u.last_name,
                     u.is_active, u.created_at, u.updated_at
              FROM auth_tokens t
              JOIN users u ON u.id = t.user_id
              WHERE t.token = $1
                AND (t.expires_at IS NULL OR t.expires_at > NOW())
                AND u.is_active = TRUE`
	return scanUser(r.db.QueryRow(ctx, query, token))
}

func (r *tokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
