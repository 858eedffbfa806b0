package handlers

import (
	"errors"
	"net/http"

	"Noteboard/internal/dto"
	"Noteboard/internal/middleware"
	"Noteboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var statusByKind = []struct {
	kind   error
	status int
}{
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
}

// writeError renders err as {code, message}. Unclassified errors are
// logged and reported as a bare 500.
func writeError(c *gin.Context, log logrus.FieldLogger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		for _, m := range statusByKind {
			if errors.Is(svcErr, m.kind) {
				abort(c, m.status, svcErr.Message)
				return
			}
		}
	}

	_ = c.Error(err)
	middleware.Logger(c, log).WithError(err).Error("unhandled error")
	abort(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Code: status, Message: message})
}
