package handlers

import (
	"net/http"

	"Noteboard/internal/dto"
	"Noteboard/internal/repo"
	"Noteboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler serves account management. Creating and listing accounts is
// for admins; reading, updating and deleting one is for its owner or an admin.
type UserHandler struct {
	svc *service.UserService
	log logrus.FieldLogger
}

func NewUserHandler(svc *service.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Create a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateUserRequest  true  "Account"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.svc.CreateUser(c.Request.Context(), caller, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// List godoc
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        name   query     string  false  "Exact name"
// @Param        role   query     string  false  "user or admin"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  repo.Page[domain.User]
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var q dto.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	var opts repo.PageOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		abort(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	page, err := h.svc.ListUsers(c.Request.Context(), caller, service.UserFilter{Name: q.Name, Role: q.Role}, opts)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByID godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  domain.User
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /users/{userId} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.UserURI
	if !bindURI(c, &uri) {
		return
	}
	u, err := h.svc.GetUser(c.Request.Context(), caller, uri.UserID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Update godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                 true  "User ID"
// @Param        body    body      dto.UpdateUserRequest  true  "Partial update"
// @Success      200     {object}  domain.User
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /users/{userId} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.UserURI
	if !bindURI(c, &uri) {
		return
	}
	var req dto.UpdateUserRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	u, err := h.svc.UpdateUser(c.Request.Context(), caller, uri.UserID, service.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        userId  path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{userId} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.UserURI
	if !bindURI(c, &uri) {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), caller, uri.UserID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
