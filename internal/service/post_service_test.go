package service

import (
	"context"
	"testing"

	"Noteboard/internal/repo"
	"Noteboard/internal/repo/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_Lifecycle(t *testing.T) {
	svc := NewPostService(memory.New(repo.PostSchema))
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "title", "body")
	require.NoError(t, err)
	assert.Equal(t, alice, post.CreatedBy)

	_, err = svc.UpdatePost(ctx, post.ID, bob, PostPatch{Body: strPtr("other")})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdatePost(ctx, post.ID, alice, PostPatch{Body: strPtr(" body1 ")})
	require.NoError(t, err)
	assert.Equal(t, "title", updated.Title)
	assert.Equal(t, "body1", updated.Body)

	page, err := svc.ListUserPosts(ctx, alice, repo.PageOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalDocs)
	assert.Equal(t, repo.DefaultLimit, page.Limit)

	_, err = svc.DeletePost(ctx, post.ID, bob)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.DeletePost(ctx, post.ID, alice)
	require.NoError(t, err)

	_, err = svc.GetPostByID(ctx, post.ID)
	assert.EqualError(t, err, "Post not found")
}

func TestPostService_UpdateToBlankFails(t *testing.T) {
	svc := NewPostService(memory.New(repo.PostSchema))
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "title", "body")
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, post.ID, alice, PostPatch{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
}
