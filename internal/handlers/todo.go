package handlers

import (
	"net/http"

	"Noteboard/internal/dto"
	"Noteboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TodoHandler struct {
	svc *service.TodoService
	log logrus.FieldLogger
}

func NewTodoHandler(svc *service.TodoService, log logrus.FieldLogger) *TodoHandler {
	return &TodoHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Create a todo
// @Description  The caller becomes the owner. Status defaults to BACKLOG.
// @Tags         todo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  domain.Todo
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /todo [post]
func (h *TodoHandler) Create(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req dto.CreateTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.svc.CreateTodo(c.Request.Context(), caller.ID, req.Title, req.Description, req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// List godoc
// @Summary      List a user's todos
// @Description  Lists the todos of userId, or of the caller when userId is omitted.
// @Tags         todo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ListRequest  false  "Owner and page options"
// @Success      200   {object}  repo.Page[domain.Todo]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /todo/getTodo [post]
func (h *TodoHandler) List(c *gin.Context) {
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

	page, err := h.svc.ListUserTodos(c.Request.Context(), owner, req.Options)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todo
// @Produce      json
// @Security     BearerAuth
// @Param        todoId  path      string  true  "Todo ID"
// @Success      200     {object}  domain.Todo
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /todo/getTodo/{todoId} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	var uri dto.TodoURI
	if !bindURI(c, &uri) {
		return
	}
	t, err := h.svc.GetTodoByID(c.Request.Context(), uri.TodoID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Update godoc
// @Summary      Update a todo
// @Description  Only fields present in the body change. Owner only.
// @Tags         todo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        todoId  path      string                 true  "Todo ID"
// @Param        body    body      dto.UpdateTodoRequest  true  "Partial update"
// @Success      200     {object}  domain.Todo
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /todo/update/{todoId} [post]
func (h *TodoHandler) Update(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.TodoURI
	if !bindURI(c, &uri) {
		return
	}
	var req dto.UpdateTodoRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	t, err := h.svc.UpdateTodo(c.Request.Context(), uri.TodoID, caller.ID, service.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// MarkAsCompleted godoc
// @Summary      Mark a todo as completed
// @Tags         todo
// @Produce      json
// @Security     BearerAuth
// @Param        todoId  path      string  true  "Todo ID"
// @Success      200     {object}  domain.Todo
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /todo/markAsCompleted/{todoId} [post]
func (h *TodoHandler) MarkAsCompleted(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.TodoURI
	if !bindURI(c, &uri) {
		return
	}
	t, err := h.svc.MarkComplete(c.Request.Context(), uri.TodoID, caller.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todo
// @Security     BearerAuth
// @Param        todoId  path  string  true  "Todo ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /todo/delete/{todoId} [post]
func (h *TodoHandler) Delete(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var uri dto.TodoURI
	if !bindURI(c, &uri) {
		return
	}
	if _, err := h.svc.DeleteTodo(c.Request.Context(), uri.TodoID, caller.ID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
