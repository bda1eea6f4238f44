package ctrl

import (
	"context"
	"errors"
	"time"

	"github.com/JMURv/taskboard/internal/dto"
	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

func (c *Controller) CreateTodo(
	ctx context.Context,
	uid uuid.UUID,
	req *dto.CreateTodoRequest,
) (*md.Todo, error) {
	const op = "todos.CreateTodo.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	t := &md.Todo{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        md.Tags(req.Tags),
	}

	if t.Status == "" {
		t.Status = md.StatusPending
	}
	if t.Priority == "" {
		t.Priority = md.PriorityMedium
	}

	id, err := c.repo.CreateTodo(ctx, t)
	if err != nil {
		return nil, err
	}

	return c.repo.GetTodo(ctx, id, uid)
}

func (c *Controller) ListTodos(ctx context.Context, u *md.User) ([]md.Todo, error) {
	const op = "todos.ListTodos.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if u.Role == md.RoleAdmin {
		return c.repo.ListAllTodos(ctx)
	}

	return c.repo.ListTodos(ctx, u.ID)
}

func (c *Controller) GetTodo(ctx context.Context, id, uid uuid.UUID) (*md.Todo, error) {
	const op = "todos.GetTodo.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.GetTodo(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (c *Controller) UpdateTodo(
	ctx context.Context,
	id, uid uuid.UUID,
	req *dto.UpdateTodoRequest,
) (*md.Todo, error) {
	const op = "todos.UpdateTodo.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	t, err := c.repo.GetTodo(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Tags != nil {
		t.Tags = md.Tags(*req.Tags)
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}

	// Moving a card into the completed column marks it done; moving it
	// out clears the completion mark.
	if req.Status != nil {
		t.Completed = *req.Status == md.StatusCompleted
	}

	if t.Completed && t.CompletedAt == nil {
		now := time.Now()
		t.CompletedAt = &now
	} else if !t.Completed {
		t.CompletedAt = nil
	}

	if err = c.repo.UpdateTodo(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (c *Controller) DeleteTodo(ctx context.Context, id, uid uuid.UUID) error {
	const op = "todos.DeleteTodo.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := c.repo.DeleteTodo(ctx, id, uid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}
