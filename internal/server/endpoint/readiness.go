package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/localstt/internal/transcribe"
)

// Readiness returns the readiness handler: 200 once the engine handle is
// ready, 503 with the current state otherwise.
func Readiness(handle *transcribe.Handle) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := handle.State()
		if state == transcribe.StateReady {
			c.JSON(http.StatusOK, gin.H{
				"status": "ready",
				"model":  handle.Model(),
				"device": handle.Device(),
			})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"state":  state.String(),
		})
	}
}
