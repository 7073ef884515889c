package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stc/pkg/observability"
)

// registerLogHooks routes capture, render and storage events to debug logs.
// Events carry a context, so a logger attached to it wins over l.
func registerLogHooks(l *log.Logger) {
	h := logHooks{fallback: l}
	observability.SetCaptureHooks(h)
	observability.SetRenderHooks(h)
	observability.SetStorageHooks(h)
}

type logHooks struct {
	fallback *log.Logger
}

func (h logHooks) logger(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return h.fallback
}

func (h logHooks) OnModeChange(ctx context.Context, mode string, decorated int) {
	if mode == "" {
		mode = "none"
	}
	h.logger(ctx).Debug("mode changed", "mode", mode, "decorated", decorated)
}

func (h logHooks) OnCapture(ctx context.Context, itemType string, textLen int) {
	h.logger(ctx).Debug("item captured", "type", itemType, "chars", textLen)
}

func (h logHooks) OnClear(ctx context.Context) {
	h.logger(ctx).Debug("selection cleared")
}

func (h logHooks) OnRenderStart(ctx context.Context, items int) {
	h.logger(ctx).Debug("render started", "items", items)
}

func (h logHooks) OnRenderComplete(ctx context.Context, items int, d time.Duration, err error) {
	if err != nil {
		h.logger(ctx).Debug("render failed", "items", items, "error", err)
		return
	}
	h.logger(ctx).Debug("render complete", "items", items, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnExport(ctx context.Context, size int) {
	h.logger(ctx).Debug("png encoded", "bytes", size)
}

func (h logHooks) OnRead(ctx context.Context, key string, hit bool) {
	h.logger(ctx).Debug("storage read", "key", key, "hit", hit)
}

func (h logHooks) OnWrite(ctx context.Context, key string, size int) {
	h.logger(ctx).Debug("storage write", "key", key, "bytes", size)
}
