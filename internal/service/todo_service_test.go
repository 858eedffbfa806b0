package service

import (
	"context"
	"testing"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"
	"Noteboard/internal/repo/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "user-alice"
	bob   = "user-bob"
)

func newTodoService() *TodoService {
	return NewTodoService(memory.New(repo.TodoSchema))
}

func strPtr(s string) *string { return &s }

func TestTodoService_CreateOwnedByCaller(t *testing.T) {
	svc := newTodoService()

	todo, err := svc.CreateTodo(context.Background(), alice, "  title ", "desc", "")
	require.NoError(t, err)
	assert.Equal(t, alice, todo.UserID)
	assert.Equal(t, "title", todo.Title)
	assert.Equal(t, dom.StatusBacklog, todo.Status)
}

func TestTodoService_CreateRejectsBlankTitle(t *testing.T) {
	svc := newTodoService()

	_, err := svc.CreateTodo(context.Background(), alice, "   ", "desc", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "title is required", err.Error())
}

func TestTodoService_GetMissing(t *testing.T) {
	svc := newTodoService()

	_, err := svc.GetTodoByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Todo not found")
}

func TestTodoService_UpdateByOwnerMergesPresentFields(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, alice, "title", "desc", dom.StatusInProgress)
	require.NoError(t, err)

	updated, err := svc.UpdateTodo(ctx, todo.ID, alice, TodoPatch{Title: strPtr("title1")})
	require.NoError(t, err)
	assert.Equal(t, "title1", updated.Title)
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, dom.StatusInProgress, updated.Status)
	assert.Equal(t, alice, updated.UserID)
}

func TestTodoService_NonOwnerCannotMutate(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, alice, "title", "desc", "")
	require.NoError(t, err)

	_, err = svc.UpdateTodo(ctx, todo.ID, bob, TodoPatch{Title: strPtr("hijacked")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.EqualError(t, err, MsgOperationNotAllowed)

	_, err = svc.MarkComplete(ctx, todo.ID, bob)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.DeleteTodo(ctx, todo.ID, bob)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.GetTodoByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
	assert.Equal(t, dom.StatusBacklog, got.Status)
}

func TestTodoService_MarkCompleteIsIdempotent(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, alice, "title", "desc", "")
	require.NoError(t, err)

	first, err := svc.MarkComplete(ctx, todo.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, dom.StatusCompleted, first.Status)

	second, err := svc.MarkComplete(ctx, todo.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, dom.StatusCompleted, second.Status)
}

func TestTodoService_DeleteIsTerminal(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, alice, "title", "desc", "")
	require.NoError(t, err)

	deleted, err := svc.DeleteTodo(ctx, todo.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, deleted.ID)

	_, err = svc.GetTodoByID(ctx, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DeleteTodo(ctx, todo.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoService_ListUserTodos(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	_, err := svc.CreateTodo(ctx, alice, "mine", "desc", "")
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, bob, "theirs", "desc", "")
	require.NoError(t, err)

	page, err := svc.ListUserTodos(ctx, alice, repo.PageOptions{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	assert.EqualValues(t, 1, page.TotalDocs)
	assert.Equal(t, "mine", page.Docs[0].Title)
}

func TestTodoService_ListPagination(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.CreateTodo(ctx, alice, "title", "desc", "")
		require.NoError(t, err)
	}

	page, err := svc.ListUserTodos(ctx, alice, repo.PageOptions{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Docs, 5)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.HasNextPage)
	require.NotNil(t, page.PrevPage)
	assert.Equal(t, 2, *page.PrevPage)
}
