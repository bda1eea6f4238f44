package ctrl

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JMURv/taskboard/internal/dto"
	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	cacheKey := fmt.Sprintf(userCacheKey, uid)

	t.Run("CacheHit", func(t *testing.T) {
		svc, _, cache := newTestController(t)

		cache.EXPECT().
			GetToStruct(gomock.Any(), cacheKey, gomock.Any()).
			DoAndReturn(
				func(_ context.Context, _ string, dest any) error {
					bytes, _ := json.Marshal(&md.User{ID: uid, Name: "Cached"})
					return json.Unmarshal(bytes, dest)
				},
			).Times(1)

		u, err := svc.GetUserByID(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "Cached", u.Name)
	})

	t.Run("CacheMiss", func(t *testing.T) {
		svc, ar, cache := newTestController(t)

		cache.EXPECT().
			GetToStruct(gomock.Any(), cacheKey, gomock.Any()).
			Return(errors.New("cache miss")).
			Times(1)
		ar.EXPECT().
			GetUserByID(gomock.Any(), uid).
			Return(&md.User{ID: uid, Name: "Stored"}, nil).
			Times(1)
		cache.EXPECT().
			Set(gomock.Any(), gomock.Any(), cacheKey, gomock.Any()).
			Times(1)

		u, err := svc.GetUserByID(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "Stored", u.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, ar, cache := newTestController(t)

		cache.EXPECT().
			GetToStruct(gomock.Any(), cacheKey, gomock.Any()).
			Return(errors.New("cache miss")).
			Times(1)
		ar.EXPECT().
			GetUserByID(gomock.Any(), uid).
			Return(nil, repo.ErrNotFound).
			Times(1)

		_, err := svc.GetUserByID(ctx, uid)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	name := "New Name"
	theme := "dark"

	t.Run("PatchesOnlyProvidedFields", func(t *testing.T) {
		svc, ar, cache := newTestController(t)

		ar.EXPECT().
			GetUserByID(gomock.Any(), uid).
			Return(
				&md.User{
					ID:          uid,
					Name:        "Old Name",
					Bio:         "keep me",
					Preferences: md.DefaultPreferences(),
				}, nil,
			).Times(1)
		ar.EXPECT().
			UpdateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(
				func(_ context.Context, u *md.User) error {
					assert.Equal(t, name, u.Name)
					assert.Equal(t, "keep me", u.Bio)
					assert.Equal(t, theme, u.Preferences.Theme)
					assert.Equal(t, "all", u.Preferences.Notifications)
					return nil
				},
			).Times(1)
		cache.EXPECT().Delete(gomock.Any(), fmt.Sprintf(userCacheKey, uid)).Times(1)

		u, err := svc.UpdateSettings(
			ctx, uid, &dto.UpdateSettingsRequest{
				Name:        &name,
				Preferences: &dto.PreferencesRequest{Theme: theme},
			},
		)
		require.NoError(t, err)
		assert.Equal(t, name, u.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, ar, _ := newTestController(t)

		ar.EXPECT().
			GetUserByID(gomock.Any(), uid).
			Return(nil, repo.ErrNotFound).
			Times(1)

		_, err := svc.UpdateSettings(ctx, uid, &dto.UpdateSettingsRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	t.Run("RevokesBeforeDeleting", func(t *testing.T) {
		svc, ar, cache := newTestController(t)

		gomock.InOrder(
			ar.EXPECT().RevokeAllTokens(gomock.Any(), uid).Return(nil),
			ar.EXPECT().DeleteUser(gomock.Any(), uid).Return(nil),
		)
		cache.EXPECT().Delete(gomock.Any(), fmt.Sprintf(userCacheKey, uid)).Times(1)

		assert.NoError(t, svc.DeleteAccount(ctx, uid))
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, ar, _ := newTestController(t)

		ar.EXPECT().RevokeAllTokens(gomock.Any(), uid).Return(nil).Times(1)
		ar.EXPECT().DeleteUser(gomock.Any(), uid).Return(repo.ErrNotFound).Times(1)

		assert.ErrorIs(t, svc.DeleteAccount(ctx, uid), ErrNotFound)
	})
}
