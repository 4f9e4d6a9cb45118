// Package application drives each dashboard page through fetch, normalize, derive
// and mutation cycles.
package application

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ultracare-admin/internal/apiclient"
	"ultracare-admin/internal/observability/metrics"
)

// State is a page controller state.
type State int

const (
	StateLoading State = iota
	StateError
	StateReady
	StateLoginRedirect
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	case StateLoginRedirect:
		return "login_redirect"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent read of a controller.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   string
}

// LoadFunc fetches, normalizes and derives one page's data.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Task is one load attempt. Only the most recently started task of an open
// controller may commit.
type Task struct {
	generation uint64
	done       chan struct{}
}

// Done is closed once the task has committed or been discarded.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Controller owns the rows of one page instance.
type Controller[T any] struct {
	page     string
	fallback string
	load     LoadFunc[T]
	logger   zerolog.Logger

	mu         sync.Mutex
	state      State
	data       T
	errMsg     string
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

// NewController constructs a controller in the Loading state. fallback is the
// error text shown when a failure carries no message.
func NewController[T any](page, fallback string, load LoadFunc[T], logger zerolog.Logger) *Controller[T] {
	return &Controller[T]{
		page:     page,
		fallback: fallback,
		load:     load,
		logger:   logger.With().Str("page", page).Logger(),
		state:    StateLoading,
	}
}

// Start launches a new load task and cancels the previous one. A closed
// controller or one that has redirected to login returns an already finished
// task.
func (c *Controller[T]) Start(parent context.Context) *Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	task := &Task{done: make(chan struct{})}
	if c.closed || c.state == StateLoginRedirect {
		close(task.done)
		return task
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	task.generation = c.generation
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.state = StateLoading

	go c.run(ctx, cancel, task)
	return task
}

func (c *Controller[T]) run(ctx context.Context, cancel context.CancelFunc, task *Task) {
	defer close(task.done)
	defer cancel()

	start := time.Now()
	data, err := c.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || task.generation != c.generation || ctx.Err() != nil {
		c.logger.Debug().Uint64("task", task.generation).Msg("discarding superseded load")
		metrics.ObservePageLoad(c.page, metrics.ResultCancelled, time.Since(start))
		return
	}
	c.cancel = nil

	switch {
	case err == nil:
		c.state = StateReady
		c.data = data
		c.errMsg = ""
		metrics.ObservePageLoad(c.page, metrics.OutcomeReady, time.Since(start))
	case apiclient.IsUnauthorized(err):
		c.state = StateLoginRedirect
		metrics.ObservePageLoad(c.page, metrics.OutcomeLoginRedirect, time.Since(start))
	default:
		c.state = StateError
		c.errMsg = apiclient.ErrorMessage(err, c.fallback)
		c.logger.Warn().Err(err).Msg("page load failed")
		metrics.ObservePageLoad(c.page, metrics.OutcomeError, time.Since(start))
	}
}

// Load starts a task and waits for it or for ctx.
func (c *Controller[T]) Load(ctx context.Context) Snapshot[T] {
	task := c.Start(ctx)
	select {
	case <-task.Done():
	case <-ctx.Done():
	}
	return c.Snapshot()
}

// Snapshot reads the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{State: c.state, Data: c.data, Err: c.errMsg}
}

// Close tears the controller down. In-flight work is cancelled and its result is
// never committed.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// redirectToLogin is used when a mutation write answers 401.
func (c *Controller[T]) redirectToLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state = StateLoginRedirect
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
