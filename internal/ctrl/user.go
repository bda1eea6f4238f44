package ctrl

import (
	"context"
	"errors"
	"fmt"

	"github.com/JMURv/taskboard/internal/config"
	"github.com/JMURv/taskboard/internal/dto"
	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/JMURv/taskboard/internal/repo/s3"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

const userCacheKey = "user:%v"

// GetUserByID resolves a Principal, read-through cached. The session
// guard calls this on every authenticated request.
func (c *Controller) GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := &md.User{}
	cacheKey := fmt.Sprintf(userCacheKey, userID)
	err := c.cache.GetToStruct(ctx, cacheKey, cached)
	if err == nil {
		return cached, nil
	}

	res, err := c.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bytes, err := json.Marshal(res)
	if err == nil {
		c.cache.Set(ctx, config.DefaultCacheTime, cacheKey, bytes)
	}

	return res, nil
}

func (c *Controller) UpdateSettings(
	ctx context.Context,
	uid uuid.UUID,
	req *dto.UpdateSettingsRequest,
) (*md.User, error) {
	const op = "users.UpdateSettings.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	u, err := c.repo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Website != nil {
		u.Website = *req.Website
	}
	if req.SocialLinks != nil {
		u.SocialLinks = *req.SocialLinks
	}
	if req.Preferences != nil {
		if req.Preferences.Theme != "" {
			u.Preferences.Theme = req.Preferences.Theme
		}
		if req.Preferences.Notifications != "" {
			u.Preferences.Notifications = req.Preferences.Notifications
		}
		if req.Preferences.Language != "" {
			u.Preferences.Language = req.Preferences.Language
		}
	}

	if err = c.repo.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	c.cache.Delete(ctx, fmt.Sprintf(userCacheKey, uid))

	return u, nil
}

// DeleteAccount removes the Principal and everything scoped to it. The
// ledger is revoked explicitly first so renewal dies even if the row
// delete lags behind.
func (c *Controller) DeleteAccount(ctx context.Context, uid uuid.UUID) error {
	const op = "users.DeleteAccount.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := c.repo.RevokeAllTokens(ctx, uid); err != nil {
		return err
	}

	if err := c.repo.DeleteUser(ctx, uid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	c.cache.Delete(ctx, fmt.Sprintf(userCacheKey, uid))

	return nil
}

func (c *Controller) ListLoginHistory(ctx context.Context, uid uuid.UUID) ([]md.LoginEntry, error) {
	const op = "users.ListLoginHistory.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return c.repo.ListLoginHistory(ctx, uid)
}

func (c *Controller) UploadAvatar(
	ctx context.Context,
	uid uuid.UUID,
	req *s3.UploadFileRequest,
) (*dto.UploadAvatarResponse, error) {
	const op = "users.UploadAvatar.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	url, err := c.files.Upload(ctx, req)
	if err != nil {
		return nil, err
	}

	u, err := c.repo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	u.Avatar = url
	if err = c.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	c.cache.Delete(ctx, fmt.Sprintf(userCacheKey, uid))

	return &dto.UploadAvatarResponse{Avatar: url}, nil
}
