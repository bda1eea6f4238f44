package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

// The refresh token ledger. Every operation is a single statement, so
// concurrent logins and logouts race only at the storage layer's own
// consistency level.

func (r *Repository) CreateToken(
	ctx context.Context,
	userID uuid.UUID,
	token string,
	expiresAt time.Time,
) error {
	const op = "auth.CreateToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	_, err := r.conn.ExecContext(ctx, tokenCreateQ, token, userID, expiresAt)
	return err
}

// IsTokenRevoked reports the absence of a ledger record. A token that
// was never issued is indistinguishable from one explicitly revoked.
func (r *Repository) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	const op = "auth.IsTokenRevoked.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var exists bool
	if err := r.conn.GetContext(ctx, &exists, tokenExistsQ, token); err != nil {
		return false, err
	}

	return !exists, nil
}

// RevokeToken is idempotent: deleting a missing record is not an error.
func (r *Repository) RevokeToken(ctx context.Context, token string) error {
	const op = "auth.RevokeToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	_, err := r.conn.ExecContext(ctx, tokenRevokeQ, token)
	return err
}

func (r *Repository) RevokeAllTokens(ctx context.Context, userID uuid.UUID) error {
	const op = "auth.RevokeAllTokens.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	_, err := r.conn.ExecContext(ctx, tokenRevokeAllQ, userID)
	return err
}
