// Package dispatch runs one resource operation against the authoritative
// backend: select, execute, fall back to the file store when the remote is
// unavailable and file writes persist, and report where the data went.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/lib/logger/sl"
	"ceylon_travel/internal/metrics"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/storage/selector"
)

// Outcome tells the caller which backend served the request.
type Outcome struct {
	Backend selector.Backend `json:"storage"`
	// Degraded is set when the remote store failed and the file store took over.
	Degraded bool `json:"degraded"`
}

type Dispatcher struct {
	log *slog.Logger
	in  selector.Input
}

func New(log *slog.Logger, in selector.Input) *Dispatcher {
	return &Dispatcher{log: log, in: in}
}

// Decide exposes the selector decision, used for health reporting.
func (d *Dispatcher) Decide(kind models.Kind, op selector.Op) (selector.Decision, error) {
	return selector.Select(d.in, kind, op)
}

// FileWritable reports whether file store writes survive a restart here.
func (d *Dispatcher) FileWritable() bool {
	return !d.in.RestrictedFS
}

type Request struct {
	Kind models.Kind
	Op   selector.Op
	Name string
}

type Func[T any] func(ctx context.Context) (T, error)

// Run executes req. remote may be nil when no remote store was wired; that
// is treated like an unavailable remote.
func Run[T any](ctx context.Context, d *Dispatcher, req Request, remote, file Func[T]) (T, Outcome, error) {
	var zero T
	log := d.log.With(
		slog.String("op", "dispatch."+req.Name),
		slog.String("resource", string(req.Kind)),
	)

	dec, err := selector.Select(d.in, req.Kind, req.Op)
	if err != nil {
		log.Error("no backend can persist the write", sl.Err(err))
		record(req, selector.File, err)
		return zero, Outcome{Backend: selector.File}, err
	}

	if dec.Backend == selector.File {
		v, err := file(ctx)
		record(req, selector.File, err)
		return v, Outcome{Backend: selector.File}, err
	}

	var v T
	if remote == nil {
		err = fmt.Errorf("%w: remote store is not wired", storage.ErrBackendUnavailable)
	} else {
		v, err = remote(ctx)
	}
	record(req, selector.Remote, err)
	if err == nil {
		return v, Outcome{Backend: selector.Remote}, nil
	}

	if !errors.Is(err, storage.ErrBackendUnavailable) {
		return zero, Outcome{Backend: selector.Remote}, err
	}
	if !dec.FileWritable {
		log.Error("remote store unavailable, file store does not persist here", sl.Err(err))
		return zero, Outcome{Backend: selector.Remote}, err
	}

	log.Warn("remote store unavailable, falling back to file store", sl.Err(err))
	metrics.StorageFallbacks.WithLabelValues(string(req.Kind), req.Op.String()).Inc()

	v, err = file(ctx)
	record(req, selector.File, err)
	if err != nil {
		return zero, Outcome{Backend: selector.File, Degraded: true}, err
	}
	return v, Outcome{Backend: selector.File, Degraded: true}, nil
}

func record(req Request, backend selector.Backend, err error) {
	metrics.StorageOperations.WithLabelValues(string(req.Kind), string(backend), req.Name, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrValidation):
		return "validation"
	case errors.Is(err, storage.ErrConfiguration):
		return "configuration"
	case errors.Is(err, storage.ErrBackendUnavailable):
		return "unavailable"
	case errors.Is(err, storage.ErrSchemaDrift):
		return "drift"
	default:
		return "error"
	}
}

// Remote returns fn when a remote store is wired and nil otherwise.
func Remote[T any](wired bool, fn Func[T]) Func[T] {
	if !wired {
		return nil
	}
	return fn
}
