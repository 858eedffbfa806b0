package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"Noteboard/internal/auth"
	dom "Noteboard/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds a required JSON body; on failure it writes a 400.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abort(c, http.StatusBadRequest, bindingMessage(err))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON that also accepts an empty body.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		if err := c.ShouldBindQuery(req); err != nil {
			abort(c, http.StatusBadRequest, bindingMessage(err))
			return false
		}
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		abort(c, http.StatusBadRequest, bindingMessage(err))
		return false
	}
	return true
}

func bindURI(c *gin.Context, uri any) bool {
	if err := c.ShouldBindUri(uri); err != nil {
		abort(c, http.StatusBadRequest, bindingMessage(err))
		return false
	}
	return true
}

// currentCaller returns the authenticated caller or writes a 401.
func currentCaller(c *gin.Context) (dom.Caller, bool) {
	caller, ok := auth.CallerFromContext(c)
	if !ok || caller.ID == "" {
		abort(c, http.StatusUnauthorized, "Please authenticate")
		return dom.Caller{}, false
	}
	return caller, true
}

// bindingMessage turns binding errors into a short client-facing message,
// e.g. `"title" is required`.
func bindingMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, ", ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "request body must be valid JSON"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%q must be a %s", typeErr.Field, typeErr.Type.Kind())
	case errors.Is(err, io.EOF):
		return "request body is required"
	}
	return err.Error()
}

func fieldMessage(fe validator.FieldError) string {
	name := fmt.Sprintf("%q", fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "notblank":
		return name + " is not allowed to be empty"
	case "uuid":
		return name + " must be a valid id"
	case "email":
		return name + " must be a valid email"
	case "min":
		return name + " must be at least " + fe.Param()
	case "max":
		return name + " must be at most " + fe.Param()
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	case "todostatus":
		return fmt.Sprintf("%s must be one of %v", name, dom.TodoStatuses)
	}
	return name + " is invalid"
}
