package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type HealthChecker struct {
	apiHost    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewHealthChecker creates a health handler that probes the Staffy API host.
func NewHealthChecker(apiHost string, log *slog.Logger) *HealthChecker {
	clientTO := 5
	return &HealthChecker{
		apiHost:    apiHost,
		httpClient: &http.Client{Timeout: time.Duration(clientTO) * time.Second},
		log:        log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	status := make(map[string]string)
	overallStatus := http.StatusOK

	resp, err := h.httpClient.Head(h.apiHost) //nolint:noctx // ctx is overhead for this healthcheck
	switch {
	case err != nil:
		status["api_host"] = "unreachable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(
			req.Context(),
			"Health check failed: API host unreachable",
			"host",
			h.apiHost,
			"error",
			err,
		)
	case resp.StatusCode >= http.StatusBadRequest:
		status["api_host"] = "degraded"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(
			req.Context(),
			"Health check failed: API host returned error status",
			"host",
			h.apiHost,
			"status_code",
			resp.StatusCode,
		)
	default:
		status["api_host"] = "ok"
	}
	if resp != nil {
		if err = resp.Body.Close(); err != nil {
			h.log.WarnContext(req.Context(), "Failed to close response body", "error", err)
		}
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
