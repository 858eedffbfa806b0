package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestToBSONMapsID(t *testing.T) {
	q := toBSON(repo.Filter{repo.FieldID: "a", "user_id": "u"})
	assert.Equal(t, bson.M{"_id": "a", "user_id": "u"}, q)
	assert.Empty(t, toBSON(nil))
}

func TestFindOptions(t *testing.T) {
	o := findOptions(repo.PageOptions{Page: 3, Limit: 5})
	require.NotNil(t, o.Skip)
	require.NotNil(t, o.Limit)
	assert.EqualValues(t, 10, *o.Skip)
	assert.EqualValues(t, 5, *o.Limit)
	assert.Equal(t, bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}, o.Sort)
}

func TestTodoBSONLayout(t *testing.T) {
	todo := &dom.Todo{Title: "t", Description: "d", Status: dom.StatusBacklog, UserID: "u"}
	todo.ID = "id-1"

	raw, err := bson.Marshal(todo)
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "id-1", m["_id"])
	assert.Equal(t, "u", m["user_id"])
	assert.Contains(t, m, "created_at")
	assert.NotContains(t, m, "Base")
}

func TestStoreIntegration(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	db := client.Database("noteboard_test_" + uuid.NewString()[:8])
	defer db.Drop(context.Background())
	require.NoError(t, EnsureIndexes(ctx, db))

	stores := NewStores(db)

	post, err := stores.Posts.Create(ctx, &dom.Post{Title: "t", Body: "b", CreatedBy: "u1"})
	require.NoError(t, err)

	got, err := stores.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))

	got.Title = "changed"
	updated, err := stores.Posts.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Title)
	assert.True(t, post.CreatedAt.Equal(updated.CreatedAt))

	for i := 0; i < 3; i++ {
		_, err := stores.Comments.Create(ctx, &dom.Comment{Message: "m", PostID: post.ID, CreatedBy: "u1"})
		require.NoError(t, err)
	}
	page, err := stores.Comments.FindPage(ctx, repo.Filter{"post_id": post.ID}, repo.PageOptions{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalDocs)
	assert.Len(t, page.Docs, 1)
	assert.False(t, page.HasNextPage)

	_, err = stores.Users.Create(ctx, &dom.User{Name: "a", Email: "a@x.io", PasswordHash: "h", Role: dom.RoleUser})
	require.NoError(t, err)
	_, err = stores.Users.Create(ctx, &dom.User{Name: "b", Email: "a@x.io", PasswordHash: "h", Role: dom.RoleUser})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	require.NoError(t, stores.Posts.Delete(ctx, post.ID))
	assert.ErrorIs(t, stores.Posts.Delete(ctx, post.ID), repo.ErrNotFound)
}
