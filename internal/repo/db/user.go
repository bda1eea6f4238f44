package db

import (
	"context"
	"database/sql"
	"errors"

	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opentracing/opentracing-go"
)

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByIDQ, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

// GetUserByEmail is the only lookup that includes the password hash.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*md.User, error) {
	const op = "users.GetUserByEmail.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByEmailQ, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *Repository) CreateUser(ctx context.Context, u *md.User) (uuid.UUID, error) {
	const op = "users.CreateUser.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var id uuid.UUID
	err := r.conn.QueryRowContext(
		ctx,
		userCreateQ,
		u.Name,
		u.Password,
		u.Email,
		u.Avatar,
		u.Role,
		u.Preferences,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, repo.ErrAlreadyExists
		}
		return uuid.Nil, err
	}

	return id, nil
}

func (r *Repository) UpdateUser(ctx context.Context, u *md.User) error {
	const op = "users.UpdateUser.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(
		ctx,
		userUpdateQ,
		u.Name,
		u.Avatar,
		u.Bio,
		u.Location,
		u.Website,
		u.SocialLinks,
		u.Preferences,
		u.ID,
	)
	if err != nil {
		return err
	}

	if aff, err := res.RowsAffected(); err == nil && aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}

// DeleteUser removes the Principal; todos, login history and ledger
// records cascade at the schema level.
func (r *Repository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "users.DeleteUser.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, userDeleteQ, userID)
	if err != nil {
		return err
	}

	if aff, err := res.RowsAffected(); err == nil && aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *Repository) AppendLoginEntry(ctx context.Context, userID uuid.UUID, ip, device string) error {
	const op = "users.AppendLoginEntry.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if _, err := r.conn.ExecContext(ctx, userTouchLoginQ, userID); err != nil {
		return err
	}

	_, err := r.conn.ExecContext(ctx, loginHistoryAppendQ, userID, ip, device)
	return err
}

func (r *Repository) ListLoginHistory(ctx context.Context, userID uuid.UUID) ([]md.LoginEntry, error) {
	const op = "users.ListLoginHistory.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := make([]md.LoginEntry, 0)
	if err := r.conn.SelectContext(ctx, &res, loginHistoryListQ, userID); err != nil {
		return nil, err
	}

	return res, nil
}
