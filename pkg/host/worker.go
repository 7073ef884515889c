package host

import (
	"context"
	"sync"

	"github.com/matzehuels/stc/pkg/errors"
)

// Worker is the lifecycle shim. It holds no data.
type Worker struct {
	browser *Browser

	mu          sync.Mutex
	installed   bool
	skipWaiting bool
	active      bool
}

// NewWorker registers a worker with b. Only one worker is registered at a
// time; a new registration replaces the old one.
func NewWorker(b *Browser) *Worker {
	w := &Worker{browser: b}
	b.mu.Lock()
	b.worker = w
	b.mu.Unlock()
	return w
}

// Install marks the worker installed and asks to activate immediately.
func (w *Worker) Install(context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.installed = true
	w.skipWaiting = true
	w.browser.logger.Debug("worker installed", "skipWaiting", true)
}

// Activate activates the worker and claims every open tab. It reports the
// number of tabs claimed.
func (w *Worker) Activate(context.Context) (int, error) {
	w.mu.Lock()
	if !w.installed {
		w.mu.Unlock()
		return 0, errors.New(errors.ErrCodeInternal, "worker activated before install")
	}
	w.active = true
	w.mu.Unlock()

	n := w.browser.claim()
	w.browser.logger.Debug("worker activated", "claimed", n)
	return n, nil
}

// Active reports whether the worker has been activated.
func (w *Worker) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// SkipWaiting reports whether the worker asked to take over immediately.
func (w *Worker) SkipWaiting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.skipWaiting
}

// Start creates a browser with an installed and activated worker.
func Start(ctx context.Context, opts Options) (*Browser, *Worker, error) {
	b := NewBrowser(opts)
	w := NewWorker(b)
	w.Install(ctx)
	if _, err := w.Activate(ctx); err != nil {
		return nil, nil, err
	}
	return b, w, nil
}
