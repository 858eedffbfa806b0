package service

import (
	"context"
	"strings"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"
)

// TodoPatch carries the todo fields an update may change. Nil fields are kept.
type TodoPatch struct {
	Title       *string
	Description *string
}

type TodoService struct {
	owned *Owned[*dom.Todo]
}

func NewTodoService(store repo.Store[*dom.Todo]) *TodoService {
	return &TodoService{owned: NewOwned(store, "Todo")}
}

// CreateTodo stores a todo owned by callerID. An empty status means BACKLOG.
func (s *TodoService) CreateTodo(ctx context.Context, callerID, title, desc string, status dom.TodoStatus) (*dom.Todo, error) {
	if status == "" {
		status = dom.StatusBacklog
	}
	return s.owned.Create(ctx, &dom.Todo{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(desc),
		Status:      status,
	}, callerID)
}

func (s *TodoService) GetTodoByID(ctx context.Context, id string) (*dom.Todo, error) {
	return s.owned.GetByID(ctx, id)
}

func (s *TodoService) ListUserTodos(ctx context.Context, ownerID string, opts repo.PageOptions) (*repo.Page[*dom.Todo], error) {
	return s.owned.List(ctx, repo.Filter{"user_id": ownerID}, opts)
}

func (s *TodoService) UpdateTodo(ctx context.Context, id, callerID string, p TodoPatch) (*dom.Todo, error) {
	return s.owned.Update(ctx, id, callerID, func(t *dom.Todo) {
		if p.Title != nil {
			t.Title = strings.TrimSpace(*p.Title)
		}
		if p.Description != nil {
			t.Description = strings.TrimSpace(*p.Description)
		}
	})
}

// MarkComplete moves the todo to COMPLETED from any status. Repeating it is a no-op.
func (s *TodoService) MarkComplete(ctx context.Context, id, callerID string) (*dom.Todo, error) {
	return s.owned.Update(ctx, id, callerID, func(t *dom.Todo) {
		t.Status = dom.StatusCompleted
	})
}

func (s *TodoService) DeleteTodo(ctx context.Context, id, callerID string) (*dom.Todo, error) {
	return s.owned.Delete(ctx, id, callerID)
}
