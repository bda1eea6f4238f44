package ctrl

import (
	"context"
	"errors"
	"strings"

	"github.com/JMURv/taskboard/internal/auth"
	"github.com/JMURv/taskboard/internal/config"
	"github.com/JMURv/taskboard/internal/dto"
	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const defaultAvatar = "https://api.dicebear.com/9.x/bottts-neutral/svg?seed=Aneka"

func (c *Controller) Register(
	ctx context.Context,
	req *dto.RegisterRequest,
	meta *dto.LoginMeta,
) (*md.User, dto.TokenPair, error) {
	const op = "auth.Register.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var pair dto.TokenPair

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, pair, err
	}

	id, err := c.repo.CreateUser(
		ctx, &md.User{
			Name:        req.Name,
			Email:       strings.ToLower(req.Email),
			Password:    hashed,
			Avatar:      defaultAvatar,
			Role:        md.RoleUser,
			Preferences: md.DefaultPreferences(),
		},
	)
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, pair, ErrAlreadyExists
		}
		return nil, pair, err
	}

	u, err := c.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, pair, err
	}

	pair, err = c.openSession(ctx, u, meta)
	if err != nil {
		return nil, pair, err
	}

	if c.email != nil {
		go func() {
			if err := c.email.SendWelcome(u.Email, u.Name); err != nil {
				zap.L().Warn(
					"failed to send welcome email",
					zap.String("email", u.Email),
					zap.Error(err),
				)
			}
		}()
	}

	return u, pair, nil
}

func (c *Controller) Login(
	ctx context.Context,
	req *dto.EmailAndPasswordRequest,
	meta *dto.LoginMeta,
) (*md.User, dto.TokenPair, error) {
	const op = "auth.Login.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var pair dto.TokenPair

	// Unknown email and wrong password collapse into one error to
	// prevent user enumeration.
	u, err := c.repo.GetUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, pair, auth.ErrInvalidCredentials
		}
		return nil, pair, err
	}

	if err = auth.ComparePasswords([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, pair, auth.ErrInvalidCredentials
	}

	u.Password = ""

	pair, err = c.openSession(ctx, u, meta)
	if err != nil {
		return nil, pair, err
	}

	return u, pair, nil
}

// openSession mints a token pair, records the refresh token in the
// ledger and appends a login-history entry.
func (c *Controller) openSession(
	ctx context.Context,
	u *md.User,
	meta *dto.LoginMeta,
) (dto.TokenPair, error) {
	const op = "auth.openSession.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var pair dto.TokenPair
	access, refresh, err := c.au.GenPair(ctx, u.ID)
	if err != nil {
		return pair, err
	}

	if err = c.repo.CreateToken(ctx, u.ID, refresh, c.au.GetRefreshTime()); err != nil {
		return pair, err
	}

	if meta != nil {
		if err = c.repo.AppendLoginEntry(ctx, u.ID, meta.IP, meta.UA); err != nil {
			zap.L().Warn(
				"failed to append login history",
				zap.String("uid", u.ID.String()),
				zap.Error(err),
			)
		}
	}

	pair.Access = access
	pair.Refresh = refresh

	return pair, nil
}

// RenewAccess exchanges a still-valid, un-revoked refresh token for a
// fresh access token. The refresh token itself is not rotated; it keeps
// its original expiry and ledger entry.
func (c *Controller) RenewAccess(ctx context.Context, refresh string) (*md.User, string, error) {
	const op = "auth.RenewAccess.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if refresh == "" {
		return nil, "", auth.ErrSessionExpired
	}

	expired, err := c.au.IsExpired(ctx, refresh)
	if err != nil {
		return nil, "", auth.ErrInvalidRefreshToken
	}

	if expired {
		return nil, "", auth.ErrSessionExpired
	}

	revoked, err := c.repo.IsTokenRevoked(ctx, refresh)
	if err != nil {
		return nil, "", err
	}

	if revoked {
		zap.L().Info("refresh token is revoked", zap.String("op", op))
		return nil, "", auth.ErrRefreshRevoked
	}

	claims, err := c.au.ParseClaims(ctx, refresh)
	if err != nil {
		return nil, "", auth.ErrInvalidRefreshToken
	}

	u, err := c.GetUserByID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", auth.ErrInvalidRefreshToken
		}
		return nil, "", err
	}

	access, err := c.au.NewToken(ctx, claims.UID, config.AccessTokenDuration)
	if err != nil {
		return nil, "", err
	}

	return u, access, nil
}

// Logout revokes the caller's current refresh token, or every token the
// Principal holds when allDevices is set. Other devices' access tokens
// stay valid until their own expiry.
func (c *Controller) Logout(
	ctx context.Context,
	uid uuid.UUID,
	refresh string,
	allDevices bool,
) error {
	const op = "auth.Logout.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if allDevices {
		return c.repo.RevokeAllTokens(ctx, uid)
	}

	if refresh != "" {
		return c.repo.RevokeToken(ctx, refresh)
	}

	return nil
}
