package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/ticket-tracker/internal/database"
)

// Health reports liveness and whether the schema has been created.
func Health(b *database.Bootstrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Ticket tracker is running",
			"schema_ready": b.Ready(),
		})
	}
}
