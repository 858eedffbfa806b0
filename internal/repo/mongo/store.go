package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Noteboard/internal/repo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store implements repo.Store on a MongoDB collection described by a schema.
// Documents use string UUIDs as _id so ids look the same on every backend.
type Store[T repo.Entity] struct {
	coll   *mongo.Collection
	schema repo.Schema[T]
}

func New[T repo.Entity](db *mongo.Database, schema repo.Schema[T]) *Store[T] {
	return &Store[T]{coll: db.Collection(schema.Name), schema: schema}
}

// NewStores wires every document kind to its collection.
func NewStores(db *mongo.Database) repo.Stores {
	return repo.Stores{
		Todos:    New(db, repo.TodoSchema),
		Posts:    New(db, repo.PostSchema),
		Comments: New(db, repo.CommentSchema),
		Users:    New(db, repo.UserSchema),
	}
}

// EnsureIndexes creates the secondary indexes listings and login rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		repo.UserSchema.Name: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		repo.TodoSchema.Name: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: repo.FieldCreatedAt, Value: 1}}},
		},
		repo.PostSchema.Name: {
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: repo.FieldCreatedAt, Value: 1}}},
		},
		repo.CommentSchema.Name: {
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: repo.FieldCreatedAt, Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo indexes %s: %w", name, err)
		}
	}
	return nil
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

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%w: %v", repo.ErrDuplicate, err)
		}
		return zero, fmt.Errorf("insert %s: %w", s.schema.Name, err)
	}
	return doc, nil
}

func (s *Store[T]) FindByID(ctx context.Context, id string) (T, error) {
	return s.FindOne(ctx, repo.Filter{repo.FieldID: id})
}

func (s *Store[T]) FindOne(ctx context.Context, filter repo.Filter) (T, error) {
	var zero T
	q, err := s.query(filter)
	if err != nil {
		return zero, err
	}

	doc := s.schema.New()
	if err := s.coll.FindOne(ctx, q).Decode(doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, repo.ErrNotFound
		}
		return zero, fmt.Errorf("find %s: %w", s.schema.Name, err)
	}
	return doc, nil
}

func (s *Store[T]) FindPage(ctx context.Context, filter repo.Filter, opts repo.PageOptions) (*repo.Page[T], error) {
	q, err := s.query(filter)
	if err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	total, err := s.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", s.schema.Name, err)
	}

	cur, err := s.coll.Find(ctx, q, findOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.schema.Name, err)
	}
	defer cur.Close(ctx)

	docs := make([]T, 0, opts.Limit)
	for cur.Next(ctx) {
		doc := s.schema.New()
		if err := cur.Decode(doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.schema.Name, err)
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find %s: %w", s.schema.Name, err)
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

	// created_at is never rewritten; the stored value is read back instead.
	set := bson.M{repo.FieldUpdatedAt: m.UpdatedAt}
	for _, f := range s.schema.Fields {
		set[f.Name] = f.Value(doc)
	}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	stored := s.schema.New()
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": m.ID}, bson.M{"$set": set}, after).Decode(stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, repo.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%w: %v", repo.ErrDuplicate, err)
		}
		return zero, fmt.Errorf("update %s: %w", s.schema.Name, err)
	}
	return stored, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.schema.Name, err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *Store[T]) query(filter repo.Filter) (bson.M, error) {
	if err := s.schema.CheckFilter(filter); err != nil {
		return nil, err
	}
	return toBSON(filter), nil
}

// toBSON translates a storage filter; the id field lives in _id.
func toBSON(filter repo.Filter) bson.M {
	q := bson.M{}
	for k, v := range filter {
		if k == repo.FieldID {
			k = "_id"
		}
		q[k] = v
	}
	return q
}

func findOptions(opts repo.PageOptions) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: repo.FieldCreatedAt, Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(opts.Offset())).
		SetLimit(int64(opts.Limit))
}

// timestamp matches BSON datetime precision.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
