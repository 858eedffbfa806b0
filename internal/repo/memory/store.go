package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"Noteboard/internal/repo"

	"github.com/google/uuid"
)

// Store implements repo.Store in memory. Documents are copied on the way
// in and out, so callers never share state with the store.
type Store[T repo.Entity] struct {
	mu     sync.RWMutex
	schema repo.Schema[T]
	unique []string
	docs   map[string]T
	seq    map[string]uint64
	next   uint64
}

// New creates an empty store for schema. unique names fields that must not
// repeat across documents (e.g. "email").
func New[T repo.Entity](schema repo.Schema[T], unique ...string) *Store[T] {
	return &Store[T]{
		schema: schema,
		unique: unique,
		docs:   make(map[string]T),
		seq:    make(map[string]uint64),
	}
}

// NewStores returns a fully in-memory set of stores.
func NewStores() repo.Stores {
	return repo.Stores{
		Todos:    New(repo.TodoSchema),
		Posts:    New(repo.PostSchema),
		Comments: New(repo.CommentSchema),
		Users:    New(repo.UserSchema, "email"),
	}
}

func (s *Store[T]) Create(ctx context.Context, doc T) (T, error) {
	var zero T
	if err := doc.Validate(); err != nil {
		return zero, fmt.Errorf("%w: %v", repo.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(doc, ""); err != nil {
		return zero, err
	}

	now := time.Now().UTC()
	m := doc.Meta()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now

	s.next++
	s.seq[m.ID] = s.next
	s.docs[m.ID] = s.schema.Clone(doc)
	return doc, nil
}

func (s *Store[T]) FindByID(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		var zero T
		return zero, repo.ErrNotFound
	}
	return s.schema.Clone(doc), nil
}

func (s *Store[T]) FindOne(ctx context.Context, filter repo.Filter) (T, error) {
	var zero T
	if err := s.schema.CheckFilter(filter); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.match(filter)
	if len(matches) == 0 {
		return zero, repo.ErrNotFound
	}
	return s.schema.Clone(matches[0]), nil
}

func (s *Store[T]) FindPage(ctx context.Context, filter repo.Filter, opts repo.PageOptions) (*repo.Page[T], error) {
	if err := s.schema.CheckFilter(filter); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.match(filter)
	start := opts.Offset()
	if start < 0 {
		start = 0
	}
	if start > len(matches) {
		start = len(matches)
	}
	end := start + opts.Limit
	if end > len(matches) {
		end = len(matches)
	}

	docs := make([]T, 0, end-start)
	for _, d := range matches[start:end] {
		docs = append(docs, s.schema.Clone(d))
	}
	return repo.NewPage(docs, int64(len(matches)), opts), nil
}

func (s *Store[T]) Update(ctx context.Context, doc T) (T, error) {
	var zero T
	if err := doc.Validate(); err != nil {
		return zero, fmt.Errorf("%w: %v", repo.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := doc.Meta()
	existing, ok := s.docs[m.ID]
	if !ok {
		return zero, repo.ErrNotFound
	}
	if err := s.checkUnique(doc, m.ID); err != nil {
		return zero, err
	}

	m.CreatedAt = existing.Meta().CreatedAt
	m.UpdatedAt = time.Now().UTC()
	s.docs[m.ID] = s.schema.Clone(doc)
	return doc, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.docs, id)
	delete(s.seq, id)
	return nil
}

// match returns the documents satisfying filter in insertion order.
// Caller holds the lock.
func (s *Store[T]) match(filter repo.Filter) []T {
	out := make([]T, 0)
	for _, d := range s.docs {
		if s.schema.Match(d, filter) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.seq[out[i].Meta().ID] < s.seq[out[j].Meta().ID]
	})
	return out
}

// checkUnique rejects doc when another document (other than self) already
// holds the same value in one of the unique fields. Caller holds the lock.
func (s *Store[T]) checkUnique(doc T, self string) error {
	for _, name := range s.unique {
		want, _ := s.schema.Lookup(doc, name)
		for id, d := range s.docs {
			if id == self {
				continue
			}
			if got, _ := s.schema.Lookup(d, name); fmt.Sprint(got) == fmt.Sprint(want) {
				return fmt.Errorf("%w: %s %v", repo.ErrDuplicate, name, want)
			}
		}
	}
	return nil
}
