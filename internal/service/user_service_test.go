package service

import (
	"context"
	"testing"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"
	"Noteboard/internal/repo/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() *UserService {
	svc := NewUserService(memory.New(repo.UserSchema, "email"))
	svc.cost = bcrypt.MinCost
	return svc
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", " Alice@Example.com ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "password1", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "ALICE@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "ALICE@example.com", "password2")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserService_ShortPassword(t *testing.T) {
	_, err := newUserService().Register(context.Background(), "Alice", "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_GetByID(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = svc.GetByID(ctx, "missing")
	assert.EqualError(t, err, "User not found")
}

var adminCaller = dom.Caller{ID: "admin-1", Role: dom.RoleAdmin}

func TestUserService_CreateUserRequiresAdmin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dom.Caller{ID: "u1", Role: dom.RoleUser}, "Bob", "bob@example.com", "password1", dom.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.EqualError(t, err, MsgForbidden)

	u, err := svc.CreateUser(ctx, adminCaller, "Root", "root@example.com", "password1", dom.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, dom.RoleAdmin, u.Role)

	_, err = svc.CreateUser(ctx, adminCaller, "X", "x@example.com", "password1", "superuser")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_ListUsers(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, adminCaller, "Root", "root@example.com", "password1", dom.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ListUsers(ctx, dom.Caller{ID: "u1", Role: dom.RoleUser}, UserFilter{}, repo.PageOptions{})
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := svc.ListUsers(ctx, adminCaller, UserFilter{}, repo.PageOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.TotalDocs)

	admins, err := svc.ListUsers(ctx, adminCaller, UserFilter{Role: dom.RoleAdmin}, repo.PageOptions{})
	require.NoError(t, err)
	require.Len(t, admins.Docs, 1)
	assert.Equal(t, "Root", admins.Docs[0].Name)
}

func TestUserService_SelfOrAdmin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	alice, err := svc.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)
	bob, err := svc.Register(ctx, "Bob", "bob@example.com", "password1")
	require.NoError(t, err)
	asAlice := dom.Caller{ID: alice.ID, Role: dom.RoleUser}

	got, err := svc.GetUser(ctx, asAlice, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = svc.GetUser(ctx, asAlice, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.UpdateUser(ctx, asAlice, bob.ID, UserPatch{Name: strPtr("Mallory")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.DeleteUser(ctx, asAlice, bob.ID), ErrForbidden)

	// Forbidden comes before the lookup, so missing ids look the same.
	_, err = svc.GetUser(ctx, asAlice, "missing")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.GetUser(ctx, adminCaller, "missing")
	assert.EqualError(t, err, "User not found")

	renamed, err := svc.UpdateUser(ctx, adminCaller, bob.ID, UserPatch{Name: strPtr("Robert")})
	require.NoError(t, err)
	assert.Equal(t, "Robert", renamed.Name)
}

func TestUserService_UpdateUser(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	alice, err := svc.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Bob", "bob@example.com", "password1")
	require.NoError(t, err)
	asAlice := dom.Caller{ID: alice.ID, Role: dom.RoleUser}

	_, err = svc.UpdateUser(ctx, asAlice, alice.ID, UserPatch{Email: strPtr("BOB@example.com")})
	assert.ErrorIs(t, err, ErrConflict)

	same, err := svc.UpdateUser(ctx, asAlice, alice.ID, UserPatch{Email: strPtr("alice@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", same.Email)

	_, err = svc.UpdateUser(ctx, asAlice, alice.ID, UserPatch{Password: strPtr("short")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateUser(ctx, asAlice, alice.ID, UserPatch{Password: strPtr("new-password1")})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "alice@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "alice@example.com", "new-password1")
	assert.NoError(t, err)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	alice, err := svc.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)
	asAlice := dom.Caller{ID: alice.ID, Role: dom.RoleUser}

	require.NoError(t, svc.DeleteUser(ctx, asAlice, alice.ID))
	assert.EqualError(t, svc.DeleteUser(ctx, adminCaller, alice.ID), "User not found")
}
