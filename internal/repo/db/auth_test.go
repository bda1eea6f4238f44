package db

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &Repository{conn: sqlx.NewDb(conn, "pgx")}, mock
}

func TestCreateToken(t *testing.T) {
	repository, mock := newTestRepo(t)

	ctx := context.Background()
	uid := uuid.New()
	expiresAt := time.Now().Add(168 * time.Hour)

	mock.ExpectExec(regexp.QuoteMeta(tokenCreateQ)).
		WithArgs("refresh-token", uid, expiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repository.CreateToken(ctx, uid, "refresh-token", expiresAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsTokenRevoked(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		revoked bool
		wantErr bool
	}{
		{
			name: "RecordedToken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(tokenExistsQ)).
					WithArgs("refresh-token").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			revoked: false,
		},
		{
			name: "MissingToken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(tokenExistsQ)).
					WithArgs("refresh-token").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			revoked: true,
		},
		{
			name: "QueryError",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(tokenExistsQ)).
					WithArgs("refresh-token").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				repository, mock := newTestRepo(t)
				tt.setup(mock)

				revoked, err := repository.IsTokenRevoked(ctx, "refresh-token")
				if tt.wantErr {
					require.Error(t, err)
				} else {
					require.NoError(t, err)
					assert.Equal(t, tt.revoked, revoked)
				}

				assert.NoError(t, mock.ExpectationsWereMet())
			},
		)
	}
}

func TestRevokeToken(t *testing.T) {
	repository, mock := newTestRepo(t)
	ctx := context.Background()

	t.Run("Existing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(tokenRevokeQ)).
			WithArgs("refresh-token").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repository.RevokeToken(ctx, "refresh-token"))
	})

	t.Run("AlreadyGone", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(tokenRevokeQ)).
			WithArgs("refresh-token").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repository.RevokeToken(ctx, "refresh-token"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeAllTokens(t *testing.T) {
	repository, mock := newTestRepo(t)
	ctx := context.Background()
	uid := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(tokenRevokeAllQ)).
		WithArgs(uid).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repository.RevokeAllTokens(ctx, uid))
	assert.NoError(t, mock.ExpectationsWereMet())
}
