package repo

import (
	"fmt"

	dom "Noteboard/internal/domain"
)

// Base storage field names present on every document.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Field maps one persisted attribute of T to its storage name.
// Value reads it for writes and filtering; Addr returns a scan target.
type Field[T Entity] struct {
	Name  string
	Value func(T) any
	Addr  func(T) any
}

// Schema describes how a document kind is laid out in a backend:
// the table or collection name and its attributes beyond dom.Base.
type Schema[T Entity] struct {
	Name   string
	New    func() T
	Clone  func(T) T
	Fields []Field[T]
}

// Columns returns every storage field name, base fields first.
func (s Schema[T]) Columns() []string {
	cols := []string{FieldID, FieldCreatedAt, FieldUpdatedAt}
	for _, f := range s.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// Values returns the values of Columns for doc, in the same order.
func (s Schema[T]) Values(doc T) []any {
	m := doc.Meta()
	vals := []any{m.ID, m.CreatedAt, m.UpdatedAt}
	for _, f := range s.Fields {
		vals = append(vals, f.Value(doc))
	}
	return vals
}

// Targets returns scan destinations for Columns on doc.
func (s Schema[T]) Targets(doc T) []any {
	m := doc.Meta()
	dst := []any{&m.ID, &m.CreatedAt, &m.UpdatedAt}
	for _, f := range s.Fields {
		dst = append(dst, f.Addr(doc))
	}
	return dst
}

// Lookup returns the value of the named storage field on doc.
func (s Schema[T]) Lookup(doc T, name string) (any, bool) {
	m := doc.Meta()
	switch name {
	case FieldID:
		return m.ID, true
	case FieldCreatedAt:
		return m.CreatedAt, true
	case FieldUpdatedAt:
		return m.UpdatedAt, true
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value(doc), true
		}
	}
	return nil, false
}

// Match reports whether doc satisfies every entry of filter.
func (s Schema[T]) Match(doc T, filter Filter) bool {
	for name, want := range filter {
		got, ok := s.Lookup(doc, name)
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// CheckFilter rejects filters naming fields the schema does not have.
func (s Schema[T]) CheckFilter(filter Filter) error {
	for name := range filter {
		if !s.has(name) {
			return fmt.Errorf("%s: unknown filter field %q", s.Name, name)
		}
	}
	return nil
}

func (s Schema[T]) has(name string) bool {
	switch name {
	case FieldID, FieldCreatedAt, FieldUpdatedAt:
		return true
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

var TodoSchema = Schema[*dom.Todo]{
	Name:  "todos",
	New:   func() *dom.Todo { return &dom.Todo{} },
	Clone: (*dom.Todo).Clone,
	Fields: []Field[*dom.Todo]{
		{Name: "title", Value: func(t *dom.Todo) any { return t.Title }, Addr: func(t *dom.Todo) any { return &t.Title }},
		{Name: "description", Value: func(t *dom.Todo) any { return t.Description }, Addr: func(t *dom.Todo) any { return &t.Description }},
		{Name: "status", Value: func(t *dom.Todo) any { return string(t.Status) }, Addr: func(t *dom.Todo) any { return &t.Status }},
		{Name: "user_id", Value: func(t *dom.Todo) any { return t.UserID }, Addr: func(t *dom.Todo) any { return &t.UserID }},
	},
}

var PostSchema = Schema[*dom.Post]{
	Name:  "posts",
	New:   func() *dom.Post { return &dom.Post{} },
	Clone: (*dom.Post).Clone,
	Fields: []Field[*dom.Post]{
		{Name: "title", Value: func(p *dom.Post) any { return p.Title }, Addr: func(p *dom.Post) any { return &p.Title }},
		{Name: "body", Value: func(p *dom.Post) any { return p.Body }, Addr: func(p *dom.Post) any { return &p.Body }},
		{Name: "created_by", Value: func(p *dom.Post) any { return p.CreatedBy }, Addr: func(p *dom.Post) any { return &p.CreatedBy }},
	},
}

var CommentSchema = Schema[*dom.Comment]{
	Name:  "comments",
	New:   func() *dom.Comment { return &dom.Comment{} },
	Clone: (*dom.Comment).Clone,
	Fields: []Field[*dom.Comment]{
		{Name: "message", Value: func(c *dom.Comment) any { return c.Message }, Addr: func(c *dom.Comment) any { return &c.Message }},
		{Name: "post_id", Value: func(c *dom.Comment) any { return c.PostID }, Addr: func(c *dom.Comment) any { return &c.PostID }},
		{Name: "created_by", Value: func(c *dom.Comment) any { return c.CreatedBy }, Addr: func(c *dom.Comment) any { return &c.CreatedBy }},
	},
}

var UserSchema = Schema[*dom.User]{
	Name:  "users",
	New:   func() *dom.User { return &dom.User{} },
	Clone: (*dom.User).Clone,
	Fields: []Field[*dom.User]{
		{Name: "name", Value: func(u *dom.User) any { return u.Name }, Addr: func(u *dom.User) any { return &u.Name }},
		{Name: "email", Value: func(u *dom.User) any { return u.Email }, Addr: func(u *dom.User) any { return &u.Email }},
		{Name: "password_hash", Value: func(u *dom.User) any { return u.PasswordHash }, Addr: func(u *dom.User) any { return &u.PasswordHash }},
		{Name: "role", Value: func(u *dom.User) any { return u.Role }, Addr: func(u *dom.User) any { return &u.Role }},
	},
}
