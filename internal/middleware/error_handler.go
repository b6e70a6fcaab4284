package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/apperror"
	"github.com/stemsi/elearning-backend/internal/response"
)

// ErrorHandler is the single place failures become HTTP responses.
// Handlers attach an error with c.Error and return without writing.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "error_handler").Logger()

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperror.From(c.Errors.Last().Err)
		status := appErr.Status()

		event := log.Warn()
		if status >= 500 {
			event = log.Error().Err(appErr.Err)
		}
		event.
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Str("code", string(appErr.Code())).
			Msg(appErr.Message)

		response.FailWithMessage(c, status, appErr.Code(), appErr.Message, appErr.Fields)
	}
}

// Recovery turns a panic into the same 500 envelope the error handler writes.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "recovery").Logger()

	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str("request_id", response.RequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	})
}
