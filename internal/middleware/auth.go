package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/ticket-tracker/internal/auth"
	"github.com/yukikurage/ticket-tracker/internal/constants"
	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
	"github.com/yukikurage/ticket-tracker/internal/web"
)

// LoadIdentity resolves the session into the request's identity. It never
// rejects a request.
func LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, ok := auth.IdentityFromSession(sessions.Default(c)); ok {
			c.Set(constants.ContextKeyIdentity, identity)
		}
		c.Next()
	}
}

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.CurrentIdentity(c); !ok {
			web.Fail(c, apierrors.ErrUnauthorized, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects every caller that is not an admin, logged in or not.
// The guarded handler never runs for them.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(c) {
			web.Fail(c, apierrors.ErrForbidden, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
