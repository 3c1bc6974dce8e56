package client

import (
	"log/slog"
	"net/http"
	"time"
)

// CreateHTTPClient initializes the HTTP client used for all API calls.
// The timeout bounds a full round-trip, so a hung backend surfaces as a
// transport failure instead of leaving a page loading forever.
func CreateHTTPClient(log *slog.Logger, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}
