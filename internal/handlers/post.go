package handlers

import (
	"net/http"

	"Noteboard/internal/dto"
	"Noteboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PostHandler struct {
	svc *service.PostService
	log logrus.FieldLogger
}

func NewPostHandler(svc *service.PostService, log logrus.FieldLogger) *PostHandler {
	return &PostHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Create a post
// @Tags         post
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreatePostRequest  true  "Post body"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /post [post]
func (h *PostHandler) Create(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.CreatePost(c.Request.Context(), caller.ID, req.Title, req.Body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// List godoc
// @Summary      List a user's posts
// @Tags         post
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ListRequest  false  "Owner and page options"
// @Success      200   {object}  repo.Page[domain.Post]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /post/getPost [post]
func (h *PostHandler) List(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req dto.ListRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	owner := req.UserID
	if owner == "" {
		owner = caller.ID
	}
	page, err := h.svc.ListUserPosts(c.Request.Context(), owner, req.Options)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByID godoc
// @Summary      Get a post by ID
// @Tags         post
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post ID"
// @Success      200     {object}  domain.Post
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/getPost/{postId} [get]
func (h *PostHandler) GetByID(c *gin.Context) {
	var uri dto.PostURI
	if !bindURI(c, &uri) {
		return
	}
	p, err := h.svc.GetPostByID(c.Request.Context(), uri.PostID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update godoc
// @Summary      Update a post
// @Tags         post
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string                 true  "Post ID"
// @Param        body    body      dto.UpdatePostRequest  true  "Partial update"
// @Success      200     {object}  domain.Post
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/update/{postId} [post]
func (h *PostHandler) Update(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.PostURI
	if !bindURI(c, &uri) {
		return
	}
	var req dto.UpdatePostRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	p, err := h.svc.UpdatePost(c.Request.Context(), uri.PostID, caller.ID, service.PostPatch{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete godoc
// @Summary      Delete a post
// @Tags         post
// @Security     BearerAuth
// @Param        postId  path  string  true  "Post ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /post/delete/{postId} [post]
func (h *PostHandler) Delete(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.PostURI
	if !bindURI(c, &uri) {
		return
	}
	if _, err := h.svc.DeletePost(c.Request.Context(), uri.PostID, caller.ID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
