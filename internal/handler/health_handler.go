package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	StatusHealthy   = "Healthy"
	StatusUnhealthy = "Unhealthy"

	healthCheckTimeout = 3 * time.Second
)

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is one named entry in the health report.
type HealthCheck struct {
	Name        string
	Description string
	Probe       Pinger
}

// HealthEntry is the outcome of one check. Duration is in milliseconds.
type HealthEntry struct {
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
}

// HealthReport is the body of GET /api/health.
type HealthReport struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Service   string        `json:"service"`
	Checks    []HealthEntry `json:"checks"`
}

// HealthHandler reports liveness/readiness for load balancers and probes.
type HealthHandler struct {
	service string
	checks  []HealthCheck
	log     zerolog.Logger
}

func NewHealthHandler(service string, log zerolog.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		service: service,
		checks:  checks,
		log:     log.With().Str("component", "health_handler").Logger(),
	}
}

// Health godoc
// Runs every registered check; any failure makes the whole report Unhealthy (503).
// @Summary  Service health report
// @Tags     health
// @Produce  json
// @Success  200 {object} HealthReport
// @Failure  503 {object} HealthReport
// @Router   /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	report := HealthReport{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC(),
		Service:   h.service,
		Checks:    make([]HealthEntry, 0, len(h.checks)),
	}

	for _, check := range h.checks {
		start := time.Now()
		err := check.Probe.Ping(ctx)
		entry := HealthEntry{
			Name:        check.Name,
			Status:      StatusHealthy,
			Description: check.Description,
			Duration:    float64(time.Since(start).Microseconds()) / 1000,
		}
		if err != nil {
			h.log.Error().Err(err).Str("check", check.Name).Msg("Health check failed")
			entry.Status = StatusUnhealthy
			report.Status = StatusUnhealthy
		}
		report.Checks = append(report.Checks, entry)
	}

	status := http.StatusOK
	if report.Status != StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
