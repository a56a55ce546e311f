// Package events keeps callbacks that should run on an interval, for
// example to refresh a status line while a long task is running.
//
// Nothing runs by itself: the owner calls RunDue from its own loop.
package events

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for an unknown event id.
	ErrNotFound = errors.New("event not found")
	// ErrDuplicate is returned when an id is already registered.
	ErrDuplicate = errors.New("event already registered")
)

// Func is an event callback.
type Func func(ctx context.Context) error

type event struct {
	id       string
	fn       Func
	interval time.Duration
	nextRun  time.Time
}

// Registry holds events in registration order. It is not safe for
// concurrent use.
type Registry struct {
	now    func() time.Time
	events []*event
}

// New creates a registry. A nil clock means time.Now.
func New(clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	return &Registry{now: clock}
}

// Add registers fn under a new random id and returns the id.
func (r *Registry) Add(fn Func, interval time.Duration) string {
	id := uuid.NewString()
	for r.find(id) >= 0 {
		id = uuid.NewString()
	}
	_ = r.AddWithID(id, fn, interval)
	return id
}

// AddWithID registers fn under id. The first run is due one interval from
// now.
func (r *Registry) AddWithID(id string, fn Func, interval time.Duration) error {
	if r.find(id) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	r.events = append(r.events, &event{
		id:       id,
		fn:       fn,
		interval: interval,
		nextRun:  r.now().Add(interval),
	})
	return nil
}

// Remove unregisters id.
func (r *Registry) Remove(id string) error {
	i := r.find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.events = slices.Delete(r.events, i, i+1)
	return nil
}

// RemoveAll unregisters every event.
func (r *Registry) RemoveAll() {
	r.events = nil
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.events))
	for i, e := range r.events {
		ids[i] = e.id
	}
	return ids
}

// NextRun returns when id is next due.
func (r *Registry) NextRun(id string) (time.Time, error) {
	i := r.find(id)
	if i < 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.events[i].nextRun, nil
}

// Run runs id now, whether or not it is due, and schedules the next run.
func (r *Registry) Run(ctx context.Context, id string) error {
	i := r.find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.run(ctx, r.events[i])
}

// RunAll runs every event and returns the errors keyed by id. Events that
// succeeded are absent from the map.
func (r *Registry) RunAll(ctx context.Context) map[string]error {
	return r.runWhere(ctx, func(*event) bool { return true })
}

// RunDue runs the events whose next run is not in the future.
func (r *Registry) RunDue(ctx context.Context) map[string]error {
	now := r.now()
	return r.runWhere(ctx, func(e *event) bool { return !e.nextRun.After(now) })
}

func (r *Registry) runWhere(ctx context.Context, due func(*event) bool) map[string]error {
	errs := map[string]error{}
	for _, e := range slices.Clone(r.events) {
		if ctx.Err() != nil {
			errs[e.id] = ctx.Err()
			continue
		}
		if !due(e) {
			continue
		}
		if err := r.run(ctx, e); err != nil {
			errs[e.id] = err
		}
	}
	return errs
}

func (r *Registry) run(ctx context.Context, e *event) error {
	err := e.fn(ctx)
	e.nextRun = r.now().Add(e.interval)
	if err != nil {
		return fmt.Errorf("event %s: %w", e.id, err)
	}
	return nil
}

func (r *Registry) find(id string) int {
	return slices.IndexFunc(r.events, func(e *event) bool { return e.id == id })
}
