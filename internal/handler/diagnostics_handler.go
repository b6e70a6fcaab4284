package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/model"
)

// DatabaseProbe reads storage directly, without the repository.
type DatabaseProbe interface {
	Pinger
	Count(ctx context.Context) (int64, error)
	Samples(ctx context.Context) ([]model.CourseSample, error)
}

// DiagnosticsHandler exposes raw storage status for debugging.
// Unlike the course endpoints it echoes storage errors to the caller.
type DiagnosticsHandler struct {
	probe DatabaseProbe
	log   zerolog.Logger
}

func NewDiagnosticsHandler(probe DatabaseProbe, log zerolog.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		probe: probe,
		log:   log.With().Str("component", "diagnostics_handler").Logger(),
	}
}

// DatabaseStatus godoc
// @Summary  Database connectivity and course count
// @Tags     diagnostics
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Failure  500 {object} map[string]interface{}
// @Router   /api/test/database-status [get]
func (h *DiagnosticsHandler) DatabaseStatus(c *gin.Context) {
	ctx := c.Request.Context()

	canConnect := h.probe.Ping(ctx) == nil
	count, err := h.probe.Count(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Database status check failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "Database connection failed",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "Database connection successful",
		"can_connect":  canConnect,
		"course_count": count,
		"timestamp":    time.Now().UTC(),
	})
}

// SampleCourses godoc
// @Summary  Raw course rows ordered by id
// @Tags     diagnostics
// @Produce  json
// @Success  200 {array}  model.CourseSample
// @Failure  500 {object} map[string]interface{}
// @Router   /api/test/sample-courses [get]
func (h *DiagnosticsHandler) SampleCourses(c *gin.Context) {
	samples, err := h.probe.Samples(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Sample courses query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, samples)
}
