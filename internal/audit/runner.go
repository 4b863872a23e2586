// Package audit drives a batch of targets through a lookup service one
// item at a time. Sequential processing keeps a per-row progress view
// honest; a failure on one item is recorded on that item alone and the
// loop moves on. Listed results may spawn a concurrent follow-up fetch
// whose write-back is guarded by a batch generation counter, so a task
// surviving a reset can never leak into a newer batch.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/mailposture/mailposture/internal/input"
	"github.com/mailposture/mailposture/internal/services"
)

// Backgrounder is implemented by services whose results may warrant a
// non-blocking follow-up fetch (e.g. a blocklist removal date).
type Backgrounder interface {
	NeedsBackground(result services.Result) bool
	RunBackground(ctx context.Context, result services.Result) error
}

// ProgressFunc observes every item state transition. Called from the
// orchestrator goroutine and, for release transitions, from background
// tasks under the runner's lock.
type ProgressFunc func(item *Item)

// Runner owns the item list and its lifecycle for one service.
type Runner struct {
	svc        services.Service
	logger     *slog.Logger
	background Backgrounder
	progress   ProgressFunc

	mu         sync.Mutex
	generation uint64
	items      []*Item
	bg         sync.WaitGroup
}

// Option configures a Runner.
type Option func(*Runner)

// WithBackground enables follow-up fetches for results b elects.
func WithBackground(b Backgrounder) Option {
	return func(r *Runner) { r.background = b }
}

// WithProgress registers a transition observer.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) { r.progress = fn }
}

// NewRunner creates a batch runner for svc.
func NewRunner(svc services.Service, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{svc: svc, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Items returns the current batch.
func (r *Runner) Items() []*Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items
}

// Reset discards the current batch. In-flight background tasks keep
// running but their generation no longer matches, so their writes are
// dropped.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.items = nil
}

// WaitBackground blocks until all spawned follow-up tasks have finished,
// including stale ones whose writes were discarded.
func (r *Runner) WaitBackground() {
	r.bg.Wait()
}

// Run processes targets sequentially and returns the batch items, each
// in a terminal state. Duplicate targets are removed case-insensitively
// before any item is created. A previous batch is discarded first.
func (r *Runner) Run(ctx context.Context, targets []string) []*Item {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	deduped := input.Dedupe(targets)
	items := make([]*Item, len(deduped))
	for i, t := range deduped {
		items[i] = &Item{ID: i, Target: t, State: StatePending}
	}
	r.items = items
	r.mu.Unlock()

	for _, item := range items {
		r.transition(item, StateLoading)
		result, err := r.runOne(ctx, item.Target)
		switch {
		case err == nil:
			item.Result = result
			if nf, ok := result.(services.NotFounder); ok && nf.NotFound() {
				r.transition(item, StateNotFound)
			} else {
				r.transition(item, StateSuccess)
				r.maybeBackground(ctx, gen, item)
			}
		case errors.Is(err, services.ErrInvalidInput):
			item.Err = err
			r.transition(item, StateInvalid)
		case isTimeout(err):
			item.Err = err
			r.transition(item, StateTimeout)
		default:
			item.Err = err
			r.transition(item, StateError)
		}
	}
	return items
}

// runOne invokes the service with panic isolation: a panicking lookup
// becomes that item's error instead of taking the batch down.
func (r *Runner) runOne(ctx context.Context, target string) (result services.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("lookup panicked: %v", rec)
			r.logger.Error("audit: recovered panic", "target", target, "panic", rec)
		}
	}()
	return r.svc.Run(ctx, target)
}

func (r *Runner) maybeBackground(ctx context.Context, gen uint64, item *Item) {
	if r.background == nil || !r.background.NeedsBackground(item.Result) {
		return
	}
	item.Release = ReleasePending
	r.bg.Add(1)
	go func() {
		defer r.bg.Done()
		err := r.background.RunBackground(ctx, item.Result)

		r.mu.Lock()
		defer r.mu.Unlock()
		if gen != r.generation {
			// The batch this task belongs to was reset; its result
			// must not reach the current one.
			r.logger.Debug("audit: dropping stale background result", "target", item.Target)
			return
		}
		if err != nil {
			item.Release = ReleaseFailed
		} else {
			item.Release = ReleaseDone
		}
		if r.progress != nil {
			r.progress(item)
		}
	}()
}

func (r *Runner) transition(item *Item, next State) {
	item.State = next
	if r.progress != nil {
		r.progress(item)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
