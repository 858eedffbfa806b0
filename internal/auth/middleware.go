package auth

import (
	"net/http"
	"strings"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	contextKeyCaller = "caller"
	contextKeyClaims = "claims"

	msgPleaseAuthenticate = "Please authenticate"
)

// CallerFromContext returns the identity set by RequireAuth.
func CallerFromContext(c *gin.Context) (dom.Caller, bool) {
	v, ok := c.Get(contextKeyCaller)
	if !ok {
		return dom.Caller{}, false
	}
	caller, ok := v.(dom.Caller)
	return caller, ok
}

// ClaimsFromContext returns the verified token claims set by RequireAuth.
func ClaimsFromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// RequireAuth returns a middleware that checks for a valid, unrevoked bearer
// token and sets the caller in context. If missing or invalid, responds with 401.
func RequireAuth(tokens *Tokens, revoked Revocations, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Debug("rejected access token")
			unauthorized(c)
			return
		}
		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.WithError(err).Error("revocation lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: http.StatusText(http.StatusInternalServerError),
			})
			return
		}
		if isRevoked {
			unauthorized(c)
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Set(contextKeyCaller, dom.Caller{ID: claims.Subject, Role: claims.Role})
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: msgPleaseAuthenticate,
	})
}
