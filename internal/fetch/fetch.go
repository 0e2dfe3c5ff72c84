// Package fetch tracks the lifecycle of one remote resource.
//
// A Fetcher owns a single FetchState. Every Issue bumps a monotonically
// increasing sequence number and returns a Task; the Task performs the
// request off the event loop and yields a Result tagged with that sequence.
// Apply only accepts the Result whose sequence is the latest issued, so a
// slow earlier request can never overwrite a newer one. Nothing here locks:
// Issue and Apply must both be called from the owner's event loop.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
)

// Status is the discriminant of a FetchState.
type Status int

const (
	// Idle means no request has been issued yet.
	Idle Status = iota
	// Loading means a request is in flight.
	Loading
	// Ready means the latest request succeeded.
	Ready
	// Failed means the latest request failed.
	Failed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the FetchState of one resource.
// Value is meaningful only when Status is Ready; Err only when Failed.
type State[T any] struct {
	Status Status
	Value  T
	Err    string
}

// Pending reports whether the resource has not resolved yet.
func (s State[T]) Pending() bool {
	return s.Status == Idle || s.Status == Loading
}

// LoadFunc performs one request for a resource.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Completion is the outcome of a Task, routed back to its Fetcher by the owner.
type Completion interface {
	// ResourceName identifies the fetcher that issued the task.
	ResourceName() string
	// Sequence is the request sequence number the task was issued with.
	Sequence() uint64
}

// Result is the Completion produced by a Fetcher[T] task.
type Result[T any] struct {
	Resource string
	Seq      uint64
	Value    T
	Err      error
}

// ResourceName implements Completion.
func (r Result[T]) ResourceName() string { return r.Resource }

// Sequence implements Completion.
func (r Result[T]) Sequence() uint64 { return r.Seq }

// Task runs one request to completion. It blocks and must run off the event loop.
type Task func() Completion

// Fetcher tracks one resource's FetchState and request sequence.
type Fetcher[T any] struct {
	resource string
	seq      uint64
	state    State[T]
	last     T
	hasLast  bool
	logger   *slog.Logger
}

// New creates an Idle fetcher for the named resource.
func New[T any](resource string, logger *slog.Logger) *Fetcher[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher[T]{
		resource: resource,
		logger:   logger.With("resource", resource),
	}
}

// Resource returns the resource name.
func (f *Fetcher[T]) Resource() string {
	return f.resource
}

// State returns the current FetchState.
func (f *Fetcher[T]) State() State[T] {
	return f.state
}

// Seq returns the latest issued sequence number (0 before the first Issue).
func (f *Fetcher[T]) Seq() uint64 {
	return f.seq
}

// Last returns the most recent Ready value, which survives later Loading and
// Failed transitions. ok is false until the first success.
func (f *Fetcher[T]) Last() (value T, ok bool) {
	return f.last, f.hasLast
}

// Issue transitions to Loading and returns the task performing the request.
// Any earlier in-flight task becomes stale; it still runs but its result is
// discarded by Apply.
func (f *Fetcher[T]) Issue(ctx context.Context, load LoadFunc[T]) Task {
	f.seq++
	seq := f.seq
	f.state = State[T]{Status: Loading}
	f.logger.Debug("fetch issued", "seq", seq)

	resource := f.resource
	return func() (c Completion) {
		res := Result[T]{Resource: resource, Seq: seq}
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("load %s panicked: %v", resource, r)
				c = res
			}
		}()
		res.Value, res.Err = load(ctx)
		return res
	}
}

// Apply applies a result if it belongs to this fetcher and is the latest.
// It returns false for stale or foreign results, which leave state untouched.
func (f *Fetcher[T]) Apply(r Result[T]) bool {
	if r.Resource != f.resource {
		return false
	}
	if r.Seq != f.seq {
		f.logger.Debug("dropping stale fetch result", "seq", r.Seq, "latest", f.seq)
		return false
	}

	if r.Err != nil {
		f.state = State[T]{Status: Failed, Err: r.Err.Error()}
		f.logger.Warn("fetch failed", "seq", r.Seq, "error", r.Err)
		return true
	}

	f.state = State[T]{Status: Ready, Value: r.Value}
	f.last = r.Value
	f.hasLast = true
	f.logger.Debug("fetch ready", "seq", r.Seq)
	return true
}
