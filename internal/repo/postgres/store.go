package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Noteboard/internal/repo"
	"Noteboard/internal/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements repo.Store on a Postgres table described by a schema.
type Store[T repo.Entity] struct {
	db     DB
	schema repo.Schema[T]
	sb     sq.StatementBuilderType
}

// New returns a Store over the table schema.Name.
func New[T repo.Entity](db DB, schema repo.Schema[T]) *Store[T] {
	return &Store[T]{
		db:     db,
		schema: schema,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// NewStores wires every document kind to its table.
func NewStores(db DB) repo.Stores {
	return repo.Stores{
		Todos:    New(db, repo.TodoSchema),
		Posts:    New(db, repo.PostSchema),
		Comments: New(db, repo.CommentSchema),
		Users:    New(db, repo.UserSchema),
	}
}

func (s *Store[T]) Create(ctx context.Context, doc T) (T, error) {
	var zero T
	if err := doc.Validate(); err != nil {
		return zero, fmt.Errorf("%w: %v", repo.ErrValidation, err)
	}

	now := timestamp()
	m := doc.Meta()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now

	query, args, err := s.insertSQL(doc)
	if err != nil {
		return zero, fmt.Errorf("build insert %s: %w", s.schema.Name, err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		if utils.IsPGUniqueViolation(err) {
			return zero, fmt.Errorf("%w: %v", repo.ErrDuplicate, err)
		}
		return zero, fmt.Errorf("insert %s: %w", s.schema.Name, err)
	}
	return doc, nil
}

func (s *Store[T]) FindByID(ctx context.Context, id string) (T, error) {
	if _, err := uuid.Parse(id); err != nil {
		var zero T
		return zero, repo.ErrNotFound
	}
	return s.FindOne(ctx, repo.Filter{repo.FieldID: id})
}

func (s *Store[T]) FindOne(ctx context.Context, filter repo.Filter) (T, error) {
	var zero T
	if err := s.schema.CheckFilter(filter); err != nil {
		return zero, err
	}
	query, args, err := s.selectSQL(filter).Limit(1).ToSql()
	if err != nil {
		return zero, fmt.Errorf("build select %s: %w", s.schema.Name, err)
	}

	doc := s.schema.New()
	err = s.db.QueryRow(ctx, query, args...).Scan(s.schema.Targets(doc)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, repo.ErrNotFound
		}
		return zero, fmt.Errorf("select %s: %w", s.schema.Name, err)
	}
	return doc, nil
}

func (s *Store[T]) FindPage(ctx context.Context, filter repo.Filter, opts repo.PageOptions) (*repo.Page[T], error) {
	if err := s.schema.CheckFilter(filter); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	countQuery, countArgs, err := s.countSQL(filter)
	if err != nil {
		return nil, fmt.Errorf("build count %s: %w", s.schema.Name, err)
	}
	var total int64
	if err := s.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", s.schema.Name, err)
	}

	query, args, err := s.pageSQL(filter, opts)
	if err != nil {
		return nil, fmt.Errorf("build page %s: %w", s.schema.Name, err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", s.schema.Name, err)
	}
	defer rows.Close()

	docs := make([]T, 0, opts.Limit)
	for rows.Next() {
		doc := s.schema.New()
		if err := rows.Scan(s.schema.Targets(doc)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.schema.Name, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("page %s: %w", s.schema.Name, err)
	}
	return repo.NewPage(docs, total, opts), nil
}

func (s *Store[T]) Update(ctx context.Context, doc T) (T, error) {
	var zero T
	if err := doc.Validate(); err != nil {
		return zero, fmt.Errorf("%w: %v", repo.ErrValidation, err)
	}

	m := doc.Meta()
	m.UpdatedAt = timestamp()

	query, args, err := s.updateSQL(doc)
	if err != nil {
		return zero, fmt.Errorf("build update %s: %w", s.schema.Name, err)
	}
	if err := s.db.QueryRow(ctx, query, args...).Scan(&m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, repo.ErrNotFound
		}
		if utils.IsPGUniqueViolation(err) {
			return zero, fmt.Errorf("%w: %v", repo.ErrDuplicate, err)
		}
		return zero, fmt.Errorf("update %s: %w", s.schema.Name, err)
	}
	return doc, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repo.ErrNotFound
	}
	query, args, err := s.sb.Delete(s.schema.Name).Where(sq.Eq{repo.FieldID: id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", s.schema.Name, err)
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.schema.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *Store[T]) insertSQL(doc T) (string, []any, error) {
	return s.sb.Insert(s.schema.Name).
		Columns(s.schema.Columns()...).
		Values(s.schema.Values(doc)...).
		ToSql()
}

func (s *Store[T]) selectSQL(filter repo.Filter) sq.SelectBuilder {
	b := s.sb.Select(s.schema.Columns()...).From(s.schema.Name)
	if len(filter) > 0 {
		b = b.Where(sq.Eq(filter))
	}
	return b
}

func (s *Store[T]) countSQL(filter repo.Filter) (string, []any, error) {
	b := s.sb.Select("COUNT(*)").From(s.schema.Name)
	if len(filter) > 0 {
		b = b.Where(sq.Eq(filter))
	}
	return b.ToSql()
}

func (s *Store[T]) pageSQL(filter repo.Filter, opts repo.PageOptions) (string, []any, error) {
	return s.selectSQL(filter).
		OrderBy(repo.FieldCreatedAt+" ASC", repo.FieldID+" ASC").
		Limit(uint64(opts.Limit)).
		Offset(uint64(opts.Offset())).
		ToSql()
}

// updateSQL rewrites every attribute column; created_at is never touched
// and is read back so the returned document is complete.
func (s *Store[T]) updateSQL(doc T) (string, []any, error) {
	set := map[string]any{repo.FieldUpdatedAt: doc.Meta().UpdatedAt}
	for _, f := range s.schema.Fields {
		set[f.Name] = f.Value(doc)
	}
	return s.sb.Update(s.schema.Name).
		SetMap(set).
		Where(sq.Eq{repo.FieldID: doc.Meta().ID}).
		Suffix("RETURNING " + repo.FieldCreatedAt).
		ToSql()
}

// timestamp matches Postgres timestamptz precision so the value handed
// back to callers equals what a later read returns.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
