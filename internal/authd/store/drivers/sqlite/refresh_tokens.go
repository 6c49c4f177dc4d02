package sqlite

import (
	"context"
	"database/sql"

	"github.com/doughlab/authd/internal/authd/domain"
)

type refreshTokensRepo struct {
	db *sql.DB
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) (domain.RefreshToken, error) {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, expires_at, created_at)
		VALUES (?, ?, ?)`,
		t.UserID, t.ExpiresAt.UTC(), ts,
	)
	if err != nil {
		return domain.RefreshToken{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.RefreshToken{}, err
	}

	t.ID = id
	t.CreatedAt = ts
	return t, nil
}

func (r *refreshTokensRepo) GetRefreshTokenByID(ctx context.Context, id int64) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, expires_at, created_at
		FROM refresh_tokens WHERE id = ?`, id).
		Scan(&t.ID, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

// DeleteRefreshToken is intentionally idempotent: deleting an id that is
// already gone succeeds, so logout and rotation never fail on a retry.
func (r *refreshTokensRepo) DeleteRefreshToken(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE id = ?`, id)
	return err
}

func (r *refreshTokensRepo) DeleteUserRefreshTokens(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = ?`, userID)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
