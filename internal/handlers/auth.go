package handlers

import (
	"net/http"

	"Noteboard/internal/auth"
	dom "Noteboard/internal/domain"
	"Noteboard/internal/dto"
	"Noteboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles register, login and logout.
type AuthHandler struct {
	users   *service.UserService
	tokens  *auth.Tokens
	revoked auth.Revocations
	log     logrus.FieldLogger
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(users *service.UserService, tokens *auth.Tokens, revoked auth.Revocations, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, revoked: revoked, log: log}
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Account"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.respondWithTokens(c, http.StatusCreated, user)
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.respondWithTokens(c, http.StatusOK, user)
}

// Logout godoc
// @Summary      Logout
// @Description  Revokes the bearer token used for this request.
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "Please authenticate")
		return
	}
	if err := h.revoked.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, status int, user *dom.User) {
	tok, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(status, dto.AuthResponse{
		User: user,
		Tokens: dto.TokensResponse{
			Access: dto.AccessToken{Token: tok.Token, Expires: tok.Expires},
		},
	})
}
