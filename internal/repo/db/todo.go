package db

import (
	"context"
	"database/sql"
	"errors"

	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

func (r *Repository) CreateTodo(ctx context.Context, t *md.Todo) (uuid.UUID, error) {
	const op = "todos.CreateTodo.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var id uuid.UUID
	err := r.conn.QueryRowContext(
		ctx,
		todoCreateQ,
		t.UserID,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.Tags,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (r *Repository) ListTodos(ctx context.Context, userID uuid.UUID) ([]md.Todo, error) {
	const op = "todos.ListTodos.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := make([]md.Todo, 0)
	if err := r.conn.SelectContext(ctx, &res, todoListQ, userID); err != nil {
		return nil, err
	}

	return res, nil
}

// ListAllTodos is the admin view.
func (r *Repository) ListAllTodos(ctx context.Context) ([]md.Todo, error) {
	const op = "todos.ListAllTodos.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := make([]md.Todo, 0)
	if err := r.conn.SelectContext(ctx, &res, todoListAllQ); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *Repository) GetTodo(ctx context.Context, id, userID uuid.UUID) (*md.Todo, error) {
	const op = "todos.GetTodo.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.Todo{}
	err := r.conn.GetContext(ctx, res, todoGetQ, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *Repository) UpdateTodo(ctx context.Context, t *md.Todo) error {
	const op = "todos.UpdateTodo.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(
		ctx,
		todoUpdateQ,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.Completed,
		t.CompletedAt,
		t.Tags,
		t.ID,
		t.UserID,
	)
	if err != nil {
		return err
	}

	if aff, err := res.RowsAffected(); err == nil && aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteTodo(ctx context.Context, id, userID uuid.UUID) error {
	const op = "todos.DeleteTodo.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, todoDeleteQ, id, userID)
	if err != nil {
		return err
	}

	if aff, err := res.RowsAffected(); err == nil && aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}
