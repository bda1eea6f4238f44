package http

import (
	"errors"
	"net/http"

	"github.com/JMURv/taskboard/internal/config"
	"github.com/JMURv/taskboard/internal/ctrl"
	"github.com/JMURv/taskboard/internal/dto"
	"github.com/JMURv/taskboard/internal/hdl"
	"github.com/JMURv/taskboard/internal/hdl/http/utils"
	"github.com/JMURv/taskboard/internal/repo/s3"
	"go.uber.org/zap"
)

func (h *Handler) RegisterUserRoutes() {
	h.Router.With(h.guard()).Get("/users/settings", h.getSettings)
	h.Router.With(h.guard()).Patch("/users/settings", h.updateSettings)
	h.Router.With(h.guard()).Get("/users/loginHistory", h.loginHistory)
	h.Router.With(h.guard()).Delete("/users/deleteAccount", h.deleteAccount)
	h.Router.With(h.guard()).Post("/users/avatar", h.uploadAvatar)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, u)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	req := &dto.UpdateSettingsRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.UpdateSettings(r.Context(), u.ID, req)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		zap.L().Error("failed to update settings", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

func (h *Handler) loginHistory(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	res, err := h.ctrl.ListLoginHistory(r.Context(), u.ID)
	if err != nil {
		zap.L().Error("failed to list login history", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	if err := h.ctrl.DeleteAccount(r.Context(), u.ID); err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		zap.L().Error("failed to delete account", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	h.clearSessionCookies(w)
	utils.MessageResponse(w, http.StatusOK, "Account deleted")
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	if err := r.ParseMultipartForm(config.MaxMemory); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrNoFile)
		return
	}
	defer file.Close()

	res, err := h.ctrl.UploadAvatar(
		r.Context(), u.ID, &s3.UploadFileRequest{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      file,
		},
	)
	if err != nil {
		zap.L().Error("failed to upload avatar", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}
