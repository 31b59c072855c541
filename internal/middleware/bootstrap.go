package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/ticket-tracker/internal/database"
	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
)

// EnsureSchema creates the schema on first access if startup could not.
func EnsureSchema(b *database.Bootstrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := b.Ensure(c.Request.Context()); err != nil {
			apierrors.InternalError(c, apierrors.StorageUnavailable(err))
			return
		}
		c.Next()
	}
}
