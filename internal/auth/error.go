package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAuthenticated means no access credential was presented.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired means the refresh token itself is missing or expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrRefreshRevoked means the refresh token has no ledger entry.
	ErrRefreshRevoked = errors.New("refresh token revoked")
	// ErrInvalidRefreshToken means the refresh token failed verification.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
