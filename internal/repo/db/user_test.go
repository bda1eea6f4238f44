package db

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserByEmail(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	t.Run("Found", func(t *testing.T) {
		repository, mock := newTestRepo(t)

		rows := sqlmock.NewRows(
			[]string{"id", "name", "email", "password", "avatar", "role"},
		).AddRow(uid, "John Doe", "john@example.com", "hashed", "", md.RoleUser)

		mock.ExpectQuery(regexp.QuoteMeta(userGetByEmailQ)).
			WithArgs("john@example.com").
			WillReturnRows(rows)

		u, err := repository.GetUserByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		assert.Equal(t, uid, u.ID)
		assert.Equal(t, "hashed", u.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repository, mock := newTestRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(userGetByEmailQ)).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repository.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repo.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	u := &md.User{
		Name:        "John Doe",
		Email:       "john@example.com",
		Password:    "hashed",
		Role:        md.RoleUser,
		Preferences: md.DefaultPreferences(),
	}

	t.Run("Success", func(t *testing.T) {
		repository, mock := newTestRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(userCreateQ)).
			WithArgs(u.Name, u.Password, u.Email, u.Avatar, u.Role, u.Preferences).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uid))

		id, err := repository.CreateUser(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, uid, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repository, mock := newTestRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(userCreateQ)).
			WithArgs(u.Name, u.Password, u.Email, u.Avatar, u.Role, u.Preferences).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		_, err := repository.CreateUser(ctx, u)
		assert.ErrorIs(t, err, repo.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repository, mock := newTestRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(userDeleteQ)).
			WithArgs(uid).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repository.DeleteUser(ctx, uid))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repository, mock := newTestRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(userDeleteQ)).
			WithArgs(uid).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repository.DeleteUser(ctx, uid), repo.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppendLoginEntry(t *testing.T) {
	repository, mock := newTestRepo(t)
	ctx := context.Background()
	uid := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(userTouchLoginQ)).
		WithArgs(uid).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(loginHistoryAppendQ)).
		WithArgs(uid, "127.0.0.1", "go-test").
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repository.AppendLoginEntry(ctx, uid, "127.0.0.1", "go-test"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
