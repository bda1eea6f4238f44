package http

import (
	"errors"
	"net/http"

	"github.com/JMURv/taskboard/internal/ctrl"
	"github.com/JMURv/taskboard/internal/dto"
	"github.com/JMURv/taskboard/internal/hdl"
	"github.com/JMURv/taskboard/internal/hdl/http/utils"
	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) RegisterTodoRoutes() {
	h.Router.With(h.guard()).Post("/todos", h.createTodo)
	h.Router.With(h.guard()).Get("/todos", h.listTodos)
	h.Router.With(h.guard()).Get("/todos/{id}", h.getTodo)
	h.Router.With(h.guard()).Patch("/todos/{id}", h.updateTodo)
	h.Router.With(h.guard()).Delete("/todos/{id}", h.deleteTodo)
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	req := &dto.CreateTodoRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.CreateTodo(r.Context(), u.ID, req)
	if err != nil {
		zap.L().Error("failed to create todo", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusCreated, res)
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	res, err := h.ctrl.ListTodos(r.Context(), u)
	if err != nil {
		zap.L().Error("failed to list todos", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrToRetrievePathArg)
		return
	}

	res, err := h.ctrl.GetTodo(r.Context(), id, u.ID)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		zap.L().Error("failed to get todo", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrToRetrievePathArg)
		return
	}

	req := &dto.UpdateTodoRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.UpdateTodo(r.Context(), id, u.ID, req)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		zap.L().Error("failed to update todo", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	u, ok := utils.PrincipalFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetPrincipal.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrToRetrievePathArg)
		return
	}

	if err = h.ctrl.DeleteTodo(r.Context(), id, u.ID); err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		zap.L().Error("failed to delete todo", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.MessageResponse(w, http.StatusOK, "Todo deleted successfully")
}
