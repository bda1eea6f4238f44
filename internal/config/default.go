package config

import "time"

type ctxKey string

const (
	PrincipalKey ctxKey = "principal"
	IpKey        ctxKey = "ip"
	UaKey        ctxKey = "ua"
)

const (
	DefaultCacheTime = time.Hour
	MaxMemory        = 10 << 20 // 10 MB
)

const (
	AccessCookieName     = "accessToken"
	RefreshCookieName    = "refreshToken"
	AccessTokenDuration  = time.Minute * 15
	RefreshTokenDuration = time.Hour * 24 * 7
)
