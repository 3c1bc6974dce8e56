// Package fetchstate owns the lifecycle of one remote collection: the
// idle/loading/success/error state, error normalization, and the guarantee
// that out-of-order responses never clobber a newer request's result.
package fetchstate

import (
	"context"
	"sync"

	"github.com/staffyhq/staffy-console/internal/gateway"
	"github.com/staffyhq/staffy-console/internal/metrics"
)

// Status is the request lifecycle state of a container.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is an immutable view of a container at one point in time.
// Err is already normalized for display; it is set only when Status is
// StatusError.
type Snapshot[T any] struct {
	Status Status
	Data   T
	Err    string
}

// Container holds the fetch state for one remote collection of T.
//
// Responses are applied in issuance order: a Load call supersedes any load
// still in flight, and the superseded load's eventual resolution is
// discarded. Every settled fetch performs exactly one terminal transition,
// so a container is never left in StatusLoading by a finished request.
type Container[T any] struct {
	mu       sync.Mutex
	label    string
	metrics  *metrics.Metrics
	seq      uint64
	snap     Snapshot[T]
	onChange func(Snapshot[T])
}

// New creates an idle container. label names the collection in fallback
// error messages ("Failed to load <label>"). onChange, if non-nil, is
// invoked after every state transition with the new snapshot; the lock is
// not held during the call, and the call may come from the fetching
// goroutine. m may be nil in tests.
func New[T any](label string, m *metrics.Metrics, onChange func(Snapshot[T])) *Container[T] {
	return &Container[T]{
		label:    label,
		metrics:  m,
		snap:     Snapshot[T]{Status: StatusIdle},
		onChange: onChange,
	}
}

// Snapshot returns the current state.
func (c *Container[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snap
}

// Load issues a new request and runs fetch on its own goroutine. The
// container transitions to StatusLoading immediately; the terminal
// transition happens when fetch settles, unless a newer Load superseded
// this one first.
func (c *Container[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) {
	c.mu.Lock()
	c.seq++
	issued := c.seq
	c.snap = Snapshot[T]{Status: StatusLoading}
	snap := c.snap
	c.mu.Unlock()

	c.notify(snap)

	go func() {
		data, err := fetch(ctx)
		c.apply(issued, data, err)
	}()
}

// Update mutates the held data in place, outside the request lifecycle.
// It applies only when the container holds a successful result; page
// controllers use it for local removals after a confirmed delete.
func (c *Container[T]) Update(mutate func(T) T) {
	c.mu.Lock()
	if c.snap.Status != StatusSuccess {
		c.mu.Unlock()
		return
	}

	c.snap.Data = mutate(c.snap.Data)
	snap := c.snap
	c.mu.Unlock()

	c.notify(snap)
}

// Reset returns the container to idle and invalidates any in-flight load.
func (c *Container[T]) Reset() {
	c.mu.Lock()
	c.seq++
	c.snap = Snapshot[T]{Status: StatusIdle}
	snap := c.snap
	c.mu.Unlock()

	c.notify(snap)
}

// apply performs the terminal transition for the load identified by issued.
// A stale resolution, one whose sequence number no longer matches, is
// dropped so the newest request always wins.
func (c *Container[T]) apply(issued uint64, data T, err error) {
	c.mu.Lock()
	if issued != c.seq {
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.StaleResponses.Inc()
		}

		return
	}

	if err != nil {
		c.snap = Snapshot[T]{Status: StatusError, Err: Normalize(err, c.label)}
	} else {
		c.snap = Snapshot[T]{Status: StatusSuccess, Data: data}
	}
	snap := c.snap
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Container[T]) notify(snap Snapshot[T]) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}

// Normalize turns any fetch error into a display string: the server's
// human-readable detail when the API supplied one, otherwise a generic
// fallback naming the collection.
func Normalize(err error, label string) string {
	if detail, ok := gateway.Detail(err); ok {
		return detail
	}

	return "Failed to load " + label
}
