package server_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/staffyhq/staffy-console/internal/server"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("api host ok", func(t *testing.T) {
		mockAPIServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer mockAPIServer.Close()

		healthChecker := server.NewHealthChecker(mockAPIServer.URL, logger)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		expectedBody := `{"api_host":"ok"}`
		require.JSONEq(t, expectedBody, rr.Body.String())
	})

	t.Run("api host degraded", func(t *testing.T) {
		mockAPIServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer mockAPIServer.Close()

		healthChecker := server.NewHealthChecker(mockAPIServer.URL, logger)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		expectedBody := `{"api_host":"degraded"}`
		require.JSONEq(t, expectedBody, rr.Body.String())
	})

	t.Run("api host unreachable", func(t *testing.T) {
		healthChecker := server.NewHealthChecker("invalid_url", logger)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		expectedBody := `{"api_host":"unreachable"}`
		require.JSONEq(t, expectedBody, rr.Body.String())
	})
}
