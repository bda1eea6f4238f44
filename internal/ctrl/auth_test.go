package ctrl

import (
	"context"
	"errors"
	"testing"

	"github.com/JMURv/taskboard/internal/auth"
	"github.com/JMURv/taskboard/internal/auth/jwt"
	"github.com/JMURv/taskboard/internal/dto"
	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/JMURv/taskboard/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegister(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	au := mocks.NewMockPort(ctrlMock)
	ar := mocks.NewMockAppRepo(ctrlMock)
	cache := mocks.NewMockCacheService(ctrlMock)
	svc := New(au, ar, cache, nil, nil)

	ctx := context.Background()
	uid := uuid.New()
	req := &dto.RegisterRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "password123",
	}

	tests := []struct {
		name        string
		setup       func()
		expectedErr error
	}{
		{
			name: "Success",
			setup: func() {
				ar.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(
						func(_ context.Context, u *md.User) (uuid.UUID, error) {
							assert.Equal(t, req.Email, u.Email)
							assert.NotEqual(t, req.Password, u.Password)
							assert.Equal(t, md.RoleUser, u.Role)
							return uid, nil
						},
					).Times(1)
				ar.EXPECT().
					GetUserByID(gomock.Any(), uid).
					Return(&md.User{ID: uid, Email: req.Email, Name: req.Name}, nil).
					Times(1)
				au.EXPECT().
					GenPair(gomock.Any(), uid).
					Return("access", "refresh", nil).
					Times(1)
				au.EXPECT().GetRefreshTime().Times(1)
				ar.EXPECT().
					CreateToken(gomock.Any(), uid, "refresh", gomock.Any()).
					Return(nil).
					Times(1)
				ar.EXPECT().
					AppendLoginEntry(gomock.Any(), uid, "127.0.0.1", "go-test").
					Return(nil).
					Times(1)
			},
			expectedErr: nil,
		},
		{
			name: "AlreadyExists",
			setup: func() {
				ar.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(uuid.Nil, repo.ErrAlreadyExists).
					Times(1)
			},
			expectedErr: ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				tt.setup()

				u, pair, err := svc.Register(ctx, req, &dto.LoginMeta{IP: "127.0.0.1", UA: "go-test"})
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
					assert.Nil(t, u)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, uid, u.ID)
				assert.Equal(t, "access", pair.Access)
				assert.Equal(t, "refresh", pair.Refresh)
			},
		)
	}
}

func TestLogin(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	au := mocks.NewMockPort(ctrlMock)
	ar := mocks.NewMockAppRepo(ctrlMock)
	cache := mocks.NewMockCacheService(ctrlMock)
	svc := New(au, ar, cache, nil, nil)

	ctx := context.Background()
	uid := uuid.New()
	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)

	tests := []struct {
		name        string
		req         *dto.EmailAndPasswordRequest
		setup       func()
		expectedErr error
	}{
		{
			name: "Success",
			req:  &dto.EmailAndPasswordRequest{Email: "john@example.com", Password: "password123"},
			setup: func() {
				ar.EXPECT().
					GetUserByEmail(gomock.Any(), "john@example.com").
					Return(&md.User{ID: uid, Email: "john@example.com", Password: hashed}, nil).
					Times(1)
				au.EXPECT().
					GenPair(gomock.Any(), uid).
					Return("access", "refresh", nil).
					Times(1)
				au.EXPECT().GetRefreshTime().Times(1)
				ar.EXPECT().
					CreateToken(gomock.Any(), uid, "refresh", gomock.Any()).
					Return(nil).
					Times(1)
			},
			expectedErr: nil,
		},
		{
			name: "UnknownEmail",
			req:  &dto.EmailAndPasswordRequest{Email: "nobody@example.com", Password: "password123"},
			setup: func() {
				ar.EXPECT().
					GetUserByEmail(gomock.Any(), "nobody@example.com").
					Return(nil, repo.ErrNotFound).
					Times(1)
			},
			expectedErr: auth.ErrInvalidCredentials,
		},
		{
			name: "WrongPassword",
			req:  &dto.EmailAndPasswordRequest{Email: "john@example.com", Password: "wrong-password"},
			setup: func() {
				ar.EXPECT().
					GetUserByEmail(gomock.Any(), "john@example.com").
					Return(&md.User{ID: uid, Email: "john@example.com", Password: hashed}, nil).
					Times(1)
			},
			expectedErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				tt.setup()

				u, pair, err := svc.Login(ctx, tt.req, nil)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
					assert.Nil(t, u)
					return
				}

				require.NoError(t, err)
				assert.Empty(t, u.Password)
				assert.Equal(t, "access", pair.Access)
				assert.Equal(t, "refresh", pair.Refresh)
			},
		)
	}
}

func TestRenewAccess(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	au := mocks.NewMockPort(ctrlMock)
	ar := mocks.NewMockAppRepo(ctrlMock)
	cache := mocks.NewMockCacheService(ctrlMock)
	svc := New(au, ar, cache, nil, nil)

	ctx := context.Background()
	uid := uuid.New()
	const refresh = "refresh-token"

	tests := []struct {
		name        string
		refresh     string
		setup       func()
		expectedErr error
	}{
		{
			name:    "Success",
			refresh: refresh,
			setup: func() {
				au.EXPECT().IsExpired(gomock.Any(), refresh).Return(false, nil).Times(1)
				ar.EXPECT().IsTokenRevoked(gomock.Any(), refresh).Return(false, nil).Times(1)
				au.EXPECT().
					ParseClaims(gomock.Any(), refresh).
					Return(jwt.Claims{UID: uid}, nil).
					Times(1)
				cache.EXPECT().
					GetToStruct(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(1)
				ar.EXPECT().
					GetUserByID(gomock.Any(), uid).
					Return(&md.User{ID: uid}, nil).
					Times(1)
				cache.EXPECT().
					Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1)
				au.EXPECT().
					NewToken(gomock.Any(), uid, gomock.Any()).
					Return("new-access", nil).
					Times(1)
			},
			expectedErr: nil,
		},
		{
			name:        "EmptyToken",
			refresh:     "",
			setup:       func() {},
			expectedErr: auth.ErrSessionExpired,
		},
		{
			name:    "Expired",
			refresh: refresh,
			setup: func() {
				au.EXPECT().IsExpired(gomock.Any(), refresh).Return(true, nil).Times(1)
			},
			expectedErr: auth.ErrSessionExpired,
		},
		{
			name:    "BadSignature",
			refresh: refresh,
			setup: func() {
				au.EXPECT().
					IsExpired(gomock.Any(), refresh).
					Return(false, jwt.ErrInvalidSignature).
					Times(1)
			},
			expectedErr: auth.ErrInvalidRefreshToken,
		},
		{
			name:    "Revoked",
			refresh: refresh,
			setup: func() {
				au.EXPECT().IsExpired(gomock.Any(), refresh).Return(false, nil).Times(1)
				ar.EXPECT().IsTokenRevoked(gomock.Any(), refresh).Return(true, nil).Times(1)
			},
			expectedErr: auth.ErrRefreshRevoked,
		},
		{
			name:    "UserGone",
			refresh: refresh,
			setup: func() {
				au.EXPECT().IsExpired(gomock.Any(), refresh).Return(false, nil).Times(1)
				ar.EXPECT().IsTokenRevoked(gomock.Any(), refresh).Return(false, nil).Times(1)
				au.EXPECT().
					ParseClaims(gomock.Any(), refresh).
					Return(jwt.Claims{UID: uid}, nil).
					Times(1)
				cache.EXPECT().
					GetToStruct(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(1)
				ar.EXPECT().
					GetUserByID(gomock.Any(), uid).
					Return(nil, repo.ErrNotFound).
					Times(1)
			},
			expectedErr: auth.ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				tt.setup()

				u, access, err := svc.RenewAccess(ctx, tt.refresh)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
					assert.Nil(t, u)
					assert.Empty(t, access)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, uid, u.ID)
				assert.Equal(t, "new-access", access)
			},
		)
	}
}

func TestLogout(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	au := mocks.NewMockPort(ctrlMock)
	ar := mocks.NewMockAppRepo(ctrlMock)
	cache := mocks.NewMockCacheService(ctrlMock)
	svc := New(au, ar, cache, nil, nil)

	ctx := context.Background()
	uid := uuid.New()

	t.Run("CurrentDevice", func(t *testing.T) {
		ar.EXPECT().RevokeToken(gomock.Any(), "refresh").Return(nil).Times(1)
		assert.NoError(t, svc.Logout(ctx, uid, "refresh", false))
	})

	t.Run("AllDevices", func(t *testing.T) {
		ar.EXPECT().RevokeAllTokens(gomock.Any(), uid).Return(nil).Times(1)
		assert.NoError(t, svc.Logout(ctx, uid, "", true))
	})

	t.Run("NoRefreshCookie", func(t *testing.T) {
		assert.NoError(t, svc.Logout(ctx, uid, "", false))
	})
}
