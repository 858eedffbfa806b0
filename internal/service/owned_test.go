package service

import (
	"context"
	"errors"
	"testing"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"
	"Noteboard/internal/repo/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwned_CreateOverridesSuppliedOwner(t *testing.T) {
	svc := NewOwned(memory.New(repo.PostSchema), "Post")

	post, err := svc.Create(context.Background(), &dom.Post{Title: "t", Body: "b", CreatedBy: bob}, alice)
	require.NoError(t, err)
	assert.Equal(t, alice, post.CreatedBy)
}

func TestOwned_PatchCannotChangeOwner(t *testing.T) {
	svc := NewOwned(memory.New(repo.TodoSchema), "Todo")
	ctx := context.Background()

	todo, err := svc.Create(ctx, &dom.Todo{Title: "t", Description: "d", Status: dom.StatusBacklog}, alice)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, todo.ID, alice, func(t *dom.Todo) { t.UserID = bob })
	require.NoError(t, err)
	assert.Equal(t, alice, updated.UserID)
}

func TestAssertOwner(t *testing.T) {
	cases := []struct {
		name   string
		owner  string
		caller string
		ok     bool
	}{
		{name: "same", owner: alice, caller: alice, ok: true},
		{name: "surrounding space", owner: alice, caller: " " + alice + " ", ok: true},
		{name: "other user", owner: alice, caller: bob},
		{name: "no owner", owner: "", caller: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := assertOwner(&dom.Post{CreatedBy: tc.owner}, tc.caller)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil, "Todo"))
	assert.EqualError(t, translate(repo.ErrNotFound, "Todo"), "Todo not found")
	assert.ErrorIs(t, translate(repo.ErrDuplicate, "User"), ErrConflict)

	boom := errors.New("connection reset")
	assert.Same(t, boom, translate(boom, "Todo"))
}
