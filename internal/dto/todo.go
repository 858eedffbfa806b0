package dto

import (
	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"
)

type CreateTodoRequest struct {
	Title       string         `json:"title" binding:"required,notblank,max=200"`
	Description string         `json:"description" binding:"required,notblank,max=2000"`
	Status      dom.TodoStatus `json:"status" binding:"omitempty,todostatus"`
}

// UpdateTodoRequest is a partial update; absent fields are left unchanged.
// Status only moves through markAsCompleted.
type UpdateTodoRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank,max=200"`
	Description *string `json:"description" binding:"omitempty,notblank,max=2000"`
}

// ListRequest is the body of the getTodo / getPost listings. UserID
// defaults to the caller; Options carries the page selection.
type ListRequest struct {
	UserID  string           `json:"userId" binding:"omitempty,uuid"`
	Options repo.PageOptions `json:"options"`
}

type TodoURI struct {
	TodoID string `uri:"todoId" binding:"required,uuid"`
}
