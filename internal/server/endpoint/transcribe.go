package endpoint

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/localstt/internal/apperr"
	"github.com/skillsenselab/localstt/internal/server"
	"github.com/skillsenselab/localstt/internal/transcribe"
)

// Transcribe returns the handler for POST /transcribe: a multipart file
// upload plus optional language and task parameters (query or form).
func Transcribe(p *transcribe.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := transcribe.Request{
			Task:     param(c, "task"),
			Language: param(c, "language"),
		}

		// A missing file part leaves the filename empty; the pipeline's
		// validator rejects it before any side effect occurs.
		if header, err := c.FormFile("file"); err == nil {
			req.Filename = header.Filename

			f, err := header.Open()
			if err != nil {
				server.RespondWithError(c, apperr.StorageFailed(err))
				return
			}
			defer f.Close()

			data, err := io.ReadAll(f)
			if err != nil {
				server.RespondWithError(c, apperr.StorageFailed(err))
				return
			}
			req.Data = data
		}

		result, err := p.Transcribe(c.Request.Context(), req)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, result)
	}
}

// param reads a request parameter from the query string, falling back to
// the multipart form.
func param(c *gin.Context, name string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return c.PostForm(name)
}
