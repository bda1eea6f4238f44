package ctrl

import (
	"context"
	"testing"
	"time"

	"github.com/JMURv/taskboard/internal/dto"
	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/JMURv/taskboard/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestController(t *testing.T) (*Controller, *mocks.MockAppRepo, *mocks.MockCacheService) {
	t.Helper()

	ctrlMock := gomock.NewController(t)
	t.Cleanup(ctrlMock.Finish)

	au := mocks.NewMockPort(ctrlMock)
	ar := mocks.NewMockAppRepo(ctrlMock)
	cache := mocks.NewMockCacheService(ctrlMock)

	return New(au, ar, cache, nil, nil), ar, cache
}

func TestCreateTodo(t *testing.T) {
	svc, ar, _ := newTestController(t)
	ctx := context.Background()
	uid := uuid.New()
	id := uuid.New()

	ar.EXPECT().
		CreateTodo(gomock.Any(), gomock.Any()).
		DoAndReturn(
			func(_ context.Context, todo *md.Todo) (uuid.UUID, error) {
				assert.Equal(t, uid, todo.UserID)
				assert.Equal(t, md.StatusPending, todo.Status)
				assert.Equal(t, md.PriorityMedium, todo.Priority)
				return id, nil
			},
		).Times(1)
	ar.EXPECT().
		GetTodo(gomock.Any(), id, uid).
		Return(&md.Todo{ID: id, UserID: uid, Title: "Write tests"}, nil).
		Times(1)

	res, err := svc.CreateTodo(ctx, uid, &dto.CreateTodoRequest{Title: "Write tests"})
	require.NoError(t, err)
	assert.Equal(t, id, res.ID)
}

func TestListTodos(t *testing.T) {
	svc, ar, _ := newTestController(t)
	ctx := context.Background()
	uid := uuid.New()

	t.Run("RegularUserSeesOwn", func(t *testing.T) {
		ar.EXPECT().
			ListTodos(gomock.Any(), uid).
			Return([]md.Todo{{UserID: uid}}, nil).
			Times(1)

		res, err := svc.ListTodos(ctx, &md.User{ID: uid, Role: md.RoleUser})
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("AdminSeesAll", func(t *testing.T) {
		ar.EXPECT().
			ListAllTodos(gomock.Any()).
			Return([]md.Todo{{}, {}}, nil).
			Times(1)

		res, err := svc.ListTodos(ctx, &md.User{ID: uid, Role: md.RoleAdmin})
		require.NoError(t, err)
		assert.Len(t, res, 2)
	})
}

func TestUpdateTodo(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	id := uuid.New()

	completed := md.StatusCompleted
	pending := md.StatusPending

	t.Run("CompletionFollowsStatus", func(t *testing.T) {
		svc, ar, _ := newTestController(t)

		ar.EXPECT().
			GetTodo(gomock.Any(), id, uid).
			Return(&md.Todo{ID: id, UserID: uid, Status: md.StatusInProgress}, nil).
			Times(1)
		ar.EXPECT().UpdateTodo(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		res, err := svc.UpdateTodo(ctx, id, uid, &dto.UpdateTodoRequest{Status: &completed})
		require.NoError(t, err)
		assert.True(t, res.Completed)
		require.NotNil(t, res.CompletedAt)
		assert.WithinDuration(t, time.Now(), *res.CompletedAt, 5*time.Second)
	})

	t.Run("ReopeningClearsCompletion", func(t *testing.T) {
		svc, ar, _ := newTestController(t)

		doneAt := time.Now().Add(-time.Hour)
		ar.EXPECT().
			GetTodo(gomock.Any(), id, uid).
			Return(
				&md.Todo{
					ID:          id,
					UserID:      uid,
					Status:      md.StatusCompleted,
					Completed:   true,
					CompletedAt: &doneAt,
				}, nil,
			).Times(1)
		ar.EXPECT().UpdateTodo(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		res, err := svc.UpdateTodo(ctx, id, uid, &dto.UpdateTodoRequest{Status: &pending})
		require.NoError(t, err)
		assert.False(t, res.Completed)
		assert.Nil(t, res.CompletedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, ar, _ := newTestController(t)

		ar.EXPECT().
			GetTodo(gomock.Any(), id, uid).
			Return(nil, repo.ErrNotFound).
			Times(1)

		_, err := svc.UpdateTodo(ctx, id, uid, &dto.UpdateTodoRequest{Status: &pending})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteTodo(t *testing.T) {
	svc, ar, _ := newTestController(t)
	ctx := context.Background()
	uid := uuid.New()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ar.EXPECT().DeleteTodo(gomock.Any(), id, uid).Return(nil).Times(1)
		assert.NoError(t, svc.DeleteTodo(ctx, id, uid))
	})

	t.Run("NotFound", func(t *testing.T) {
		ar.EXPECT().DeleteTodo(gomock.Any(), id, uid).Return(repo.ErrNotFound).Times(1)
		assert.ErrorIs(t, svc.DeleteTodo(ctx, id, uid), ErrNotFound)
	})
}
