package controller_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/staffyhq/staffy-console/internal/metrics"
)

// viewSink records every view model a controller publishes. Publications can
// arrive from fetching goroutines, so access is synchronized and assertions
// poll through wait.
type viewSink[V any] struct {
	mu    sync.Mutex
	views []V
}

func (s *viewSink[V]) publish(v V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.views = append(s.views, v)
}

// wait polls until the newest matching publication appears, failing the test
// after two seconds.
func (s *viewSink[V]) wait(t *testing.T, match func(V) bool) V {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		s.mu.Lock()
		for i := len(s.views) - 1; i >= 0; i-- {
			if match(s.views[i]) {
				v := s.views[i]
				s.mu.Unlock()

				return v
			}
		}
		s.mu.Unlock()

		select {
		case <-deadline:
			t.Fatal("expected view model was never published")
		case <-time.After(time.Millisecond):
		}
	}
}

// waitCount polls until at least n matching publications exist.
func (s *viewSink[V]) waitCount(t *testing.T, n int, match func(V) bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		matched := 0
		s.mu.Lock()
		for _, v := range s.views {
			if match(v) {
				matched++
			}
		}
		s.mu.Unlock()

		if matched >= n {
			return
		}

		select {
		case <-deadline:
			t.Fatalf("expected %d matching view models, saw %d", n, matched)
		case <-time.After(time.Millisecond):
		}
	}
}

// last returns the most recent publication.
func (s *viewSink[V]) last(t *testing.T) V {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.views) == 0 {
		t.Fatal("no view model was published")
	}

	return s.views[len(s.views)-1]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}
