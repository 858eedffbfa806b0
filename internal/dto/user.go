package dto

import (
	"time"

	dom "Noteboard/internal/domain"
)

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type AccessToken struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type TokensResponse struct {
	Access AccessToken `json:"access"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User   *dom.User      `json:"user"`
	Tokens TokensResponse `json:"tokens"`
}

// CreateUserRequest is the admin-only body for POST /users.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=user admin"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,notblank,max=120"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// ListUsersQuery filters GET /users. Paging comes from ?page=&limit=.
type ListUsersQuery struct {
	Name string `form:"name" binding:"omitempty,max=120"`
	Role string `form:"role" binding:"omitempty,oneof=user admin"`
}

type UserURI struct {
	UserID string `uri:"userId" binding:"required,uuid"`
}
