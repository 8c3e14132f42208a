package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
)

// PasswordResetTokenRepository manages rows in the 'password_reset_tokens' table.
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// Create persists a new reset token.
func (r *PasswordResetTokenRepository) Create(ctx context.Context, t *models.PasswordResetToken) error {
	t.ID = uuid.New()

	query := `
		INSERT INTO password_reset_tokens (token_id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, t.ID, t.UserID, t.Token, t.ExpiresAt).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating reset token: %w", err)
	}
	return nil
}

// GetByToken retrieves a reset token by its opaque value.
func (r *PasswordResetTokenRepository) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT token_id, user_id, token, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token = $1
	`

	var t models.PasswordResetToken
	err := r.db.QueryRow(ctx, query, token).Scan(&t.ID, &t.UserID, &t.Token,
		&t.ExpiresAt, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("error loading reset token: %w", err)
	}
	return &t, nil
}

// MarkUsedTx stamps the token as consumed within the same transaction that
// updates the password. A token already stamped is reported as used.
func (r *PasswordResetTokenRepository) MarkUsedTx(ctx context.Context, tx pgx.Tx, tokenID uuid.UUID) error {
	tag, err := tx.Exec(ctx,
		`UPDATE password_reset_tokens SET used_at = now() WHERE token_id = $1 AND used_at IS NULL`,
		tokenID)
	if err != nil {
		return fmt.Errorf("error consuming reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResetTokenUsed
	}
	return nil
}

// DeleteExpired prunes tokens past their expiry.
func (r *PasswordResetTokenRepository) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("error pruning reset tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
