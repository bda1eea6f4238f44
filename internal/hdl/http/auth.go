package http

import (
	"errors"
	"net/http"

	"github.com/JMURv/taskboard/internal/auth"
	"github.com/JMURv/taskboard/internal/config"
	"github.com/JMURv/taskboard/internal/ctrl"
	"github.com/JMURv/taskboard/internal/dto"
	"github.com/JMURv/taskboard/internal/hdl"
	mid "github.com/JMURv/taskboard/internal/hdl/http/middleware"
	"github.com/JMURv/taskboard/internal/hdl/http/utils"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func (h *Handler) RegisterAuthRoutes() {
	h.Router.Post("/auth/register", h.register)
	h.Router.Post("/auth/login", h.login)
	h.Router.With(h.guard()).Post("/auth/logout", h.logout)
	h.Router.With(h.guard()).Get("/auth/check", h.check)
	h.Router.Post("/auth/silentRenew", h.silentRenew)
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, pair dto.TokenPair) {
	h.ck.Set(w, config.AccessCookieName, pair.Access, config.AccessTokenDuration)
	h.ck.Set(w, config.RefreshCookieName, pair.Refresh, config.RefreshTokenDuration)
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	h.ck.Clear(w, config.AccessCookieName)
	h.ck.Clear(w, config.RefreshCookieName)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	req := &dto.RegisterRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	u, pair, err := h.ctrl.Register(
		r.Context(), req, &dto.LoginMeta{
			IP: r.RemoteAddr,
			UA: r.UserAgent(),
		},
	)
	if err != nil {
		if errors.Is(err, ctrl.ErrAlreadyExists) {
			utils.ErrResponse(w, http.StatusBadRequest, err)
			return
		}

		zap.L().Error("failed to register user", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	h.setSessionCookies(w, pair)
	utils.SuccessResponse(w, http.StatusCreated, &dto.SessionResponse{User: u})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req := &dto.EmailAndPasswordRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	u, pair, err := h.ctrl.Login(
		r.Context(), req, &dto.LoginMeta{
			IP: r.RemoteAddr,
			UA: r.UserAgent(),
		},
	)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.ErrResponse(w, http.StatusUnauthorized, err)
			return
		}

		zap.L().Error("failed to login user", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	h.setSessionCookies(w, pair)
	utils.SuccessResponse(w, http.StatusOK, &dto.SessionResponse{User: u})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	// Body is optional; absent means current device only.
	req := &dto.LogoutRequest{}
	_ = json.NewDecoder(r.Body).Decode(req)

	refresh, err := h.ck.Read(r, config.RefreshCookieName)
	if err != nil {
		refresh = ""
	}

	if err = h.ctrl.Logout(r.Context(), u.ID, refresh, req.AllDevices); err != nil {
		zap.L().Error("failed to logout user", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	h.clearSessionCookies(w)

	msg := "Logged out successfully"
	if req.AllDevices {
		msg = "Logged out successfully from all devices"
	}

	utils.MessageResponse(w, http.StatusOK, msg)
}

// check relies entirely on the session guard; a 401 here is the
// client's expected signal to show the anonymous view.
func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, u)
}

// silentRenew exercises the refresh path on the client's timer, keeping
// the session alive while the refresh token remains valid and un-revoked.
func (h *Handler) silentRenew(w http.ResponseWriter, r *http.Request) {
	refresh, err := h.ck.Read(r, config.RefreshCookieName)
	if err != nil {
		utils.ErrResponse(w, http.StatusUnauthorized, auth.ErrSessionExpired)
		return
	}

	_, access, err := h.ctrl.RenewAccess(r.Context(), refresh)
	if err != nil {
		mid.RespondAuthError(w, err)
		return
	}

	h.ck.Set(w, config.AccessCookieName, access, config.AccessTokenDuration)
	utils.MessageResponse(w, http.StatusOK, "Session renewed")
}
