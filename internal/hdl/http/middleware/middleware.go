package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JMURv/taskboard/internal/auth"
	"github.com/JMURv/taskboard/internal/auth/cookies"
	"github.com/JMURv/taskboard/internal/auth/jwt"
	"github.com/JMURv/taskboard/internal/config"
	"github.com/JMURv/taskboard/internal/ctrl"
	"github.com/JMURv/taskboard/internal/hdl"
	"github.com/JMURv/taskboard/internal/hdl/http/utils"
	metrics "github.com/JMURv/taskboard/internal/observability/metrics/prometheus"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Auth is the per-request session guard. It resolves the Principal from
// the access cookie, transparently mints a new access token off the
// refresh cookie when the access token has expired, and rejects
// otherwise. The refresh token is never rotated here.
func Auth(au jwt.Port, ck *cookies.Core, c ctrl.AppCtrl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				access, err := ck.Read(r, config.AccessCookieName)
				if err != nil {
					utils.ErrResponse(w, http.StatusUnauthorized, auth.ErrNotAuthenticated)
					return
				}

				expired, err := au.IsExpired(r.Context(), access)
				if err == nil && !expired {
					claims, err := au.ParseClaims(r.Context(), access)
					if err == nil {
						u, err := c.GetUserByID(r.Context(), claims.UID)
						if err == nil {
							next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(r.Context(), u)))
							return
						}
					}
					// A present but unverifiable access token, or a
					// Principal that no longer resolves, still gets a
					// renewal attempt via the refresh path.
				}

				refresh, err := ck.Read(r, config.RefreshCookieName)
				if err != nil {
					utils.ErrResponse(w, http.StatusUnauthorized, auth.ErrSessionExpired)
					return
				}

				u, newAccess, err := c.RenewAccess(r.Context(), refresh)
				if err != nil {
					RespondAuthError(w, err)
					return
				}

				ck.Set(w, config.AccessCookieName, newAccess, config.AccessTokenDuration)
				next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(r.Context(), u)))
			},
		)
	}
}

// RespondAuthError maps renewal failures onto the wire: every session
// taxonomy error is a 401, anything else is a redacted 500.
func RespondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated),
		errors.Is(err, auth.ErrSessionExpired),
		errors.Is(err, auth.ErrRefreshRevoked),
		errors.Is(err, auth.ErrInvalidRefreshToken):
		utils.ErrResponse(w, http.StatusUnauthorized, err)
	default:
		zap.L().Error("session renewal failed", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
	}
}

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewLoggingResponseWriter(w http.ResponseWriter) *LoggingResponseWriter {
	return &LoggingResponseWriter{w, http.StatusOK}
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			s := time.Now()
			op := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

			lrw := NewLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)
			metrics.ObserveRequest(time.Since(s), lrw.statusCode, op)
		},
	)
}

func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				lrw := NewLoggingResponseWriter(w)
				logger.Debug(
					"-->",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote", r.RemoteAddr),
				)

				next.ServeHTTP(lrw, r)

				logger.Info(
					"<--",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", lrw.statusCode),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote", r.RemoteAddr),
				)
			},
		)
	}
}

func OT(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			span, ctx := opentracing.StartSpanFromContext(r.Context(), fmt.Sprintf("%s %s", r.Method, r.RequestURI))
			defer span.Finish()

			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}
