package aggregate

import (
	"context"
	"sync"
)

// Runner serializes aggregation for one dialog. Every Do supersedes the
// run before it by cancelling its context; a run that has been superseded
// or closed reports ok=false and its result must be discarded.
type Runner struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
}

// Do runs fn under a context that is cancelled when a newer run starts or
// the runner is closed.
func (r *Runner) Do(ctx context.Context, fn func(context.Context) (Result, error)) (res Result, ok bool, err error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return Result{}, false, nil
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	res, err = fn(runCtx)

	r.mu.Lock()
	defer r.mu.Unlock()
	cancel()
	if r.closed || gen != r.gen {
		return Result{}, false, nil
	}
	r.cancel = nil
	res.Generation = gen
	return res, true, err
}

// Current reports whether gen is the latest run and the runner is open.
// Results handed across goroutines are checked again before use.
func (r *Runner) Current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed && gen == r.gen
}

// Generation returns the number of runs started so far.
func (r *Runner) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Close cancels the in-flight run. Later runs do nothing.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Closed reports whether Close has been called.
func (r *Runner) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
