package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/ticket-tracker/internal/constants"
	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
	"github.com/yukikurage/ticket-tracker/internal/web"
)

// ErrInvalidTicketID is reported for a non-numeric :id path segment.
var ErrInvalidTicketID = apierrors.New(apierrors.ErrCodeNotFound, "Invalid ticket id.")

// RequireTicketID parses the :id path parameter
func RequireTicketID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			web.Fail(c, ErrInvalidTicketID, "/")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTicketID, id)
		c.Next()
	}
}

// TicketID returns the id parsed by RequireTicketID
func TicketID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyTicketID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
