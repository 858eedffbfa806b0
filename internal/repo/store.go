package repo

import (
	"context"
	"errors"

	dom "Noteboard/internal/domain"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrValidation = errors.New("document validation failed")
	ErrDuplicate  = errors.New("duplicate document")
)

// Entity is anything a Store can persist: it exposes its metadata for
// stamping and validates its own required fields.
type Entity interface {
	Meta() *dom.Base
	Validate() error
}

// Filter is an exact-match predicate keyed by storage field name,
// e.g. Filter{"user_id": id}. An empty filter matches every document.
type Filter map[string]any

// Store is the persistence contract shared by every document kind.
// Implementations assign ids and timestamps on Create and refresh
// updated_at on Update.
type Store[T Entity] interface {
	Create(ctx context.Context, doc T) (T, error)
	FindByID(ctx context.Context, id string) (T, error)
	FindOne(ctx context.Context, filter Filter) (T, error)
	FindPage(ctx context.Context, filter Filter, opts PageOptions) (*Page[T], error)
	Update(ctx context.Context, doc T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Stores groups the stores the application is wired with.
type Stores struct {
	Todos    Store[*dom.Todo]
	Posts    Store[*dom.Post]
	Comments Store[*dom.Comment]
	Users    Store[*dom.User]
}
