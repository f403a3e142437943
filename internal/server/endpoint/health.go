// Package endpoint contains the HTTP handlers for the localstt service.
package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health returns the liveness handler. It reports ok unconditionally:
// it confirms the process serves HTTP, not that the engine is ready —
// use the readiness endpoint for that.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
