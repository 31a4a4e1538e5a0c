package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/apperr"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
)

// TokenVerifier validates a bearer credential and returns its identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Auth is the authorization gate for protected routes. A missing credential
// is rejected as unauthenticated, an invalid or expired one as forbidden.
// A valid identity is stored on both the gin and the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respond.Fail(c, apperr.New(apperr.ErrUnauthenticated, "No token provided."))
			return
		}

		id, err := verifier.Verify(token)
		if err != nil {
			respond.Fail(c, apperr.New(apperr.ErrForbidden, "Token is not valid."))
			return
		}

		c.Set(userIDKey, id.UserID)
		if id.Email != "" {
			c.Set(userEmailKey, id.Email)
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}
