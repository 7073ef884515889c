// Package panel implements the control panel: the five user intents that
// drive the capture agent of the active tab.
//
// The panel keeps no state. Each intent resolves the active tab afresh and
// sends a one-way command to it; when no tab is active the intent is dropped
// without error.
package panel

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stc/pkg/message"
	"github.com/matzehuels/stc/pkg/selection"
)

// TabQuerier resolves the active tab. ok is false when there is none.
type TabQuerier interface {
	ActiveTab(ctx context.Context) (id string, ok bool, err error)
}

// Messenger delivers a command to a tab's capture agent.
type Messenger interface {
	SendMessage(ctx context.Context, tabID string, cmd message.Command) error
}

// EditorOpener opens the composer in a new tab.
type EditorOpener interface {
	OpenEditor(ctx context.Context) (tabID string, err error)
}

// Host is everything the panel needs from the browser.
type Host interface {
	TabQuerier
	Messenger
	EditorOpener
}

// Panel sends intents to the active tab.
type Panel struct {
	host   Host
	logger *log.Logger
}

// New returns a panel bound to host. A nil logger discards output.
func New(host Host, logger *log.Logger) *Panel {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Panel{host: host, logger: logger}
}

// Testimonial switches the active tab to testimonial capture.
func (p *Panel) Testimonial(ctx context.Context) error {
	return p.send(ctx, message.SetMode(selection.ModeTestimonial))
}

// Member switches the active tab to member capture.
func (p *Panel) Member(ctx context.Context) error {
	return p.send(ctx, message.SetMode(selection.ModeMember))
}

// Disable turns capture off in the active tab.
func (p *Panel) Disable(ctx context.Context) error {
	return p.send(ctx, message.SetMode(selection.ModeNone))
}

// Clear empties the selection through the active tab's agent.
func (p *Panel) Clear(ctx context.Context) error {
	return p.send(ctx, message.Clear())
}

// SetMode sends an arbitrary mode; ModeNone disables capture.
func (p *Panel) SetMode(ctx context.Context, m selection.Mode) error {
	return p.send(ctx, message.SetMode(m))
}

// OpenComposer opens the composer in a new tab and returns its ID.
func (p *Panel) OpenComposer(ctx context.Context) (string, error) {
	id, err := p.host.OpenEditor(ctx)
	if err != nil {
		return "", err
	}
	p.logger.Debug("opened composer", "tab", id)
	return id, nil
}

func (p *Panel) send(ctx context.Context, cmd message.Command) error {
	tabID, ok, err := p.host.ActiveTab(ctx)
	if err != nil {
		return err
	}
	if !ok {
		p.logger.Debug("no active tab, dropping command", "type", cmd.Type)
		return nil
	}
	return p.host.SendMessage(ctx, tabID, cmd)
}
