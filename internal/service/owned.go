package service

import (
	"context"
	"strings"

	"Noteboard/internal/repo"
)

// OwnedEntity is a document whose mutations are restricted to one user.
type OwnedEntity interface {
	repo.Entity
	OwnerID() string
	SetOwner(id string)
}

// Owned is the ownership-scoped CRUD shared by every resource kind.
// Reads are open to any authenticated caller; update and delete require
// the caller to be the owner.
type Owned[T OwnedEntity] struct {
	store repo.Store[T]
	kind  string
}

// NewOwned returns an Owned service over store. kind names the resource in
// client-facing messages, e.g. "Todo not found".
func NewOwned[T OwnedEntity](store repo.Store[T], kind string) *Owned[T] {
	return &Owned[T]{store: store, kind: kind}
}

// Create persists doc with callerID as its owner, whatever doc carried.
func (s *Owned[T]) Create(ctx context.Context, doc T, callerID string) (T, error) {
	doc.SetOwner(callerID)
	created, err := s.store.Create(ctx, doc)
	if err != nil {
		var zero T
		return zero, translate(err, s.kind)
	}
	return created, nil
}

func (s *Owned[T]) GetByID(ctx context.Context, id string) (T, error) {
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		var zero T
		return zero, translate(err, s.kind)
	}
	return doc, nil
}

func (s *Owned[T]) List(ctx context.Context, filter repo.Filter, opts repo.PageOptions) (*repo.Page[T], error) {
	page, err := s.store.FindPage(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, s.kind)
	}
	return page, nil
}

// Update loads id, checks ownership, applies patch and persists the result.
// The owner field survives whatever patch does.
func (s *Owned[T]) Update(ctx context.Context, id, callerID string, patch func(T)) (T, error) {
	var zero T
	doc, err := s.owned(ctx, id, callerID)
	if err != nil {
		return zero, err
	}

	owner := doc.OwnerID()
	patch(doc)
	doc.SetOwner(owner)

	updated, err := s.store.Update(ctx, doc)
	if err != nil {
		return zero, translate(err, s.kind)
	}
	return updated, nil
}

// Delete removes id if callerID owns it and returns the document as it was.
func (s *Owned[T]) Delete(ctx context.Context, id, callerID string) (T, error) {
	var zero T
	doc, err := s.owned(ctx, id, callerID)
	if err != nil {
		return zero, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return zero, translate(err, s.kind)
	}
	return doc, nil
}

func (s *Owned[T]) owned(ctx context.Context, id, callerID string) (T, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return doc, err
	}
	if err := assertOwner(doc, callerID); err != nil {
		var zero T
		return zero, err
	}
	return doc, nil
}

func assertOwner(doc OwnedEntity, callerID string) error {
	owner := strings.TrimSpace(doc.OwnerID())
	if owner == "" || owner != strings.TrimSpace(callerID) {
		return forbidden()
	}
	return nil
}
