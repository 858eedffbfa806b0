package service

import (
	"context"
	"errors"
	"strings"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced by Register.
const MinPasswordLength = 8

// UserService handles accounts: registration, credential checks and the
// admin / self-service user management routes.
type UserService struct {
	store repo.Store[*dom.User]
	cost  int
}

// NewUserService returns a new UserService hashing with bcrypt.DefaultCost.
func NewUserService(store repo.Store[*dom.User]) *UserService {
	return &UserService{store: store, cost: bcrypt.DefaultCost}
}

// UserPatch lists the fields UpdateUser may change; nil means unchanged.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

// UserFilter narrows ListUsers. Empty fields match everything.
type UserFilter struct {
	Name string
	Role string
}

// Register creates a user with a hashed password. Emails are unique
// regardless of case.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*dom.User, error) {
	return s.create(ctx, name, email, password, dom.RoleUser)
}

// CreateUser lets an admin create an account with any role.
func (s *UserService) CreateUser(ctx context.Context, caller dom.Caller, name, email, password, role string) (*dom.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if role != dom.RoleUser && role != dom.RoleAdmin {
		return nil, invalid("role must be one of [user admin]")
	}
	return s.create(ctx, name, email, password, role)
}

func (s *UserService) create(ctx context.Context, name, email, password, role string) (*dom.User, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Create(ctx, &dom.User{
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, userError(err)
	}
	return u, nil
}

// Authenticate checks email and password; returns the user if valid.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*dom.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, badCredentials()
	}
	u, err := s.store.FindOne(ctx, repo.Filter{"email": email})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, badCredentials()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, badCredentials()
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*dom.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "User")
	}
	return u, nil
}

// ListUsers pages through accounts. Admin only.
func (s *UserService) ListUsers(ctx context.Context, caller dom.Caller, f UserFilter, opts repo.PageOptions) (*repo.Page[*dom.User], error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	filter := repo.Filter{}
	if name := strings.TrimSpace(f.Name); name != "" {
		filter["name"] = name
	}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	return s.store.FindPage(ctx, filter, opts)
}

// GetUser returns the account id to its owner or an admin.
func (s *UserService) GetUser(ctx context.Context, caller dom.Caller, id string) (*dom.User, error) {
	if err := requireSelfOrAdmin(caller, id); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// UpdateUser applies patch to account id. Only the account owner or an
// admin may do so; a new email must still be unique.
func (s *UserService) UpdateUser(ctx context.Context, caller dom.Caller, id string, patch UserPatch) (*dom.User, error) {
	if err := requireSelfOrAdmin(caller, id); err != nil {
		return nil, err
	}
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		u.Email = normalizeEmail(*patch.Email)
	}
	if patch.Password != nil {
		if u.PasswordHash, err = s.hash(*patch.Password); err != nil {
			return nil, err
		}
	}
	updated, err := s.store.Update(ctx, u)
	if err != nil {
		return nil, userError(err)
	}
	return updated, nil
}

// DeleteUser removes account id. Records the user created are kept.
func (s *UserService) DeleteUser(ctx context.Context, caller dom.Caller, id string) error {
	if err := requireSelfOrAdmin(caller, id); err != nil {
		return err
	}
	return translate(s.store.Delete(ctx, id), "User")
}

func (s *UserService) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", invalid("password must be at least 8 characters")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func requireAdmin(caller dom.Caller) error {
	if caller.Role != dom.RoleAdmin {
		return &Error{Kind: ErrForbidden, Message: MsgForbidden}
	}
	return nil
}

// requireSelfOrAdmin runs before any lookup, so a non-admin learns nothing
// about accounts other than its own.
func requireSelfOrAdmin(caller dom.Caller, id string) error {
	if caller.Role == dom.RoleAdmin {
		return nil
	}
	if caller.ID == "" || caller.ID != id {
		return &Error{Kind: ErrForbidden, Message: MsgForbidden}
	}
	return nil
}

func userError(err error) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return conflict("Email already taken")
	}
	return translate(err, "User")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
