package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/staffyhq/staffy-console/internal/lib/logger/sl"
)

// StartMonitoringServer serves /metrics and /healthz on the given port until
// ctx is canceled. It blocks; run it on its own goroutine.
func StartMonitoringServer(
	ctx context.Context, log *slog.Logger, reg *prometheus.Registry, port int, apiHost string,
) {
	const opn = "server.StartMonitoringServer"

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/healthz", NewHealthChecker(apiHost, log))

	headerTimeout := 5 * time.Second
	shutdownTimeout := 5 * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: headerTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown monitoring server", sl.Op(opn), sl.Err(err))
		}
	}()

	log.Info("Monitoring server listening", sl.Op(opn), slog.Int("port", port))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Monitoring server failed", sl.Op(opn), sl.Err(err))
	}
}
