package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/localstt/internal/apperr"
)

// RespondWithError maps a pipeline failure to its HTTP response: the
// status comes from the AppError and the body is {"detail": <message>}.
// Unclassified errors become a generic 500.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperr.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperr.Internal(err).ToResponse())
}

// RespondOK sends a 200 response with the given body.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}
