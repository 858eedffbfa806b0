package handlers

import (
	"net/http"

	"Noteboard/internal/dto"
	"Noteboard/internal/repo"
	"Noteboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	svc *service.CommentService
	log logrus.FieldLogger
}

func NewCommentHandler(svc *service.CommentService, log logrus.FieldLogger) *CommentHandler {
	return &CommentHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Comment on a post
// @Tags         comment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateCommentRequest  true  "Comment body"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /comment [post]
func (h *CommentHandler) Create(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	cm, err := h.svc.CreateComment(c.Request.Context(), caller.ID, req.PostID, req.Message)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

// ListByPost godoc
// @Summary      List the comments of a post
// @Description  Page options may be sent in the body or as page/limit query parameters; the query wins.
// @Tags         comment
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true   "Post ID"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  repo.Page[domain.Comment]
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /comment/getComment/{postId} [get]
func (h *CommentHandler) ListByPost(c *gin.Context) {
	var uri dto.PostURI
	if !bindURI(c, &uri) {
		return
	}
	var req dto.ListCommentsRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	var query repo.PageOptions
	if err := c.ShouldBindQuery(&query); err != nil {
		abort(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	if query.Page > 0 {
		req.Options.Page = query.Page
	}
	if query.Limit > 0 {
		req.Options.Limit = query.Limit
	}

	page, err := h.svc.ListPostComments(c.Request.Context(), uri.PostID, req.Options)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Update godoc
// @Summary      Update a comment
// @Tags         comment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string                    true  "Comment ID"
// @Param        body       body      dto.UpdateCommentRequest  true  "Partial update"
// @Success      200        {object}  domain.Comment
// @Failure      403        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /comment/update/{commentId} [post]
func (h *CommentHandler) Update(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.CommentURI
	if !bindURI(c, &uri) {
		return
	}
	var req dto.UpdateCommentRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	cm, err := h.svc.UpdateComment(c.Request.Context(), uri.CommentID, caller.ID, service.CommentPatch{Message: req.Message})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

// Delete godoc
// @Summary      Delete a comment
// @Tags         comment
// @Security     BearerAuth
// @Param        commentId  path  string  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /comment/delete/{commentId} [post]
func (h *CommentHandler) Delete(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.CommentURI
	if !bindURI(c, &uri) {
		return
	}
	if _, err := h.svc.DeleteComment(c.Request.Context(), uri.CommentID, caller.ID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
