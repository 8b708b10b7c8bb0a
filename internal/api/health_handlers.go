package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"settings_store": s.checkSettingsStore(ctx),
		"reviews":        s.checkReviews(),
	}

	overall := "healthy"
	for _, c := range components {
		switch c.Status {
		case "unhealthy":
			overall = "unhealthy"
		case "degraded":
			if overall == "healthy" {
				overall = "degraded"
			}
		}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkSettingsStore verifies the preference store answers a quick read.
func (s *Server) checkSettingsStore(ctx context.Context) ComponentHealth {
	if s.settings == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "settings store not configured",
		}
	}

	start := time.Now()
	_, err := s.settings.PreferAudiobookCovers(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "settings read failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

func (s *Server) checkReviews() ComponentHealth {
	if s.reviews == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "review service not configured",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Message: formatReviewCount(s.reviews.Count()),
	}
}

func formatReviewCount(count int) string {
	switch count {
	case 0:
		return "no open reviews"
	case 1:
		return "1 open review"
	default:
		return strconv.Itoa(count) + " open reviews"
	}
}
