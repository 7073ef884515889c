package capture

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/matzehuels/stc/pkg/message"
	"github.com/matzehuels/stc/pkg/observability"
	"github.com/matzehuels/stc/pkg/page"
	"github.com/matzehuels/stc/pkg/selection"
)

// State is the agent's view of the capture session. The zero value is mode
// none with an empty mirror.
type State struct {
	mu    sync.Mutex
	mode  selection.Mode
	items selection.Set
}

// Mode returns the active capture mode.
func (s *State) Mode() selection.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Items returns the mirrored selection.
func (s *State) Items() selection.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

func (s *State) setMode(m selection.Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

func (s *State) replace(items selection.Set) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// add appends item and returns the resulting mirror.
func (s *State) add(item selection.Item) selection.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items.Append(item)
	return s.items
}

// Options configures an Agent.
type Options struct {
	Selectors Selectors   // zero value uses DefaultSelectors
	Logger    *log.Logger // nil discards
}

// Agent is the capture agent of a single tab.
type Agent struct {
	doc    *page.Document
	repo   *selection.Repository
	sel    Selectors
	logger *log.Logger

	state     State
	listeners []page.ListenerID
	decorated []*html.Node
}

// New creates an agent for doc persisting through repo. The agent starts in
// mode none with an empty mirror; call Hydrate to load the stored selection.
func New(doc *page.Document, repo *selection.Repository, opts Options) *Agent {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Agent{
		doc:    doc,
		repo:   repo,
		sel:    opts.Selectors.WithDefaults(),
		logger: logger,
	}
}

// Hydrate reads the persisted selection once into the mirror. On error the
// mirror stays empty.
func (a *Agent) Hydrate(ctx context.Context) error {
	items, err := a.repo.Load(ctx)
	if err != nil {
		a.state.replace(selection.Set{})
		return err
	}
	a.state.replace(items)
	a.logger.Debug("hydrated selection", "items", len(items))
	return nil
}

// State exposes the agent's capture state for inspection.
func (a *Agent) State() *State { return &a.state }

// Document returns the page the agent is attached to.
func (a *Agent) Document() *page.Document { return a.doc }

// Decorated returns the elements currently decorated, in document order of
// first match.
func (a *Agent) Decorated() []*html.Node { return a.decorated }

// Handle applies a control message. Unknown message types are ignored.
func (a *Agent) Handle(ctx context.Context, cmd message.Command) error {
	switch cmd.Type {
	case message.TypeSetMode:
		return a.setMode(ctx, cmd.TargetMode())
	case message.TypeClearSelected:
		return a.clear(ctx)
	default:
		a.logger.Debug("ignoring unknown message", "type", cmd.Type)
		return nil
	}
}

func (a *Agent) setMode(ctx context.Context, m selection.Mode) error {
	a.undecorate()
	a.state.setMode(m)

	if m.Valid() {
		for _, n := range a.matches(m) {
			a.decorate(n)
		}
	}
	a.logger.Debug("mode changed", "mode", m, "decorated", len(a.decorated))
	observability.Capture().OnModeChange(ctx, m.String(), len(a.decorated))
	return nil
}

func (a *Agent) clear(ctx context.Context) error {
	a.state.replace(selection.Set{})
	observability.Capture().OnClear(ctx)
	return a.repo.Clear(ctx)
}

// matches returns the union of all selector matches for m, deduplicated by
// element identity. Selectors that fail to compile are skipped.
func (a *Agent) matches(m selection.Mode) []*html.Node {
	seen := make(map[*html.Node]bool)
	var out []*html.Node
	for _, sel := range a.sel.For(m) {
		nodes, err := a.doc.QueryAll(sel)
		if err != nil {
			a.logger.Warn("skipping selector", "selector", sel, "err", err)
			continue
		}
		for _, n := range nodes {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

func (a *Agent) decorate(n *html.Node) {
	a.doc.AddClass(n, HighlightClass)
	a.listeners = append(a.listeners,
		a.doc.AddListener(n, page.PointerEnter, func(context.Context, *page.Event) {
			a.doc.AddClass(n, HoverClass)
		}),
		a.doc.AddListener(n, page.PointerLeave, func(context.Context, *page.Event) {
			a.doc.RemoveClass(n, HoverClass)
		}),
		a.doc.AddListener(n, page.Click, a.onClick),
	)
	a.decorated = append(a.decorated, n)
}

// undecorate strips both classes from every element carrying them and
// removes every listener the agent registered.
func (a *Agent) undecorate() {
	for _, class := range []string{HighlightClass, HoverClass} {
		for _, n := range a.doc.ElementsWithClass(class) {
			a.doc.RemoveClass(n, class)
		}
	}
	for _, id := range a.listeners {
		a.doc.RemoveListener(id)
	}
	a.listeners = nil
	a.decorated = nil
}

func (a *Agent) onClick(ctx context.Context, ev *page.Event) {
	ev.PreventDefault()
	ev.StopPropagation()

	mode := a.state.Mode()
	if !mode.Valid() {
		return
	}
	item, ok := selection.NewItem(mode.ItemType(), page.VisibleText(ev.CurrentTarget))
	if !ok {
		return
	}

	items := a.state.add(item)
	observability.Capture().OnCapture(ctx, string(item.Type), len(item.Text))
	if err := a.repo.Save(ctx, items); err != nil {
		a.logger.Error("failed to persist selection", "err", err)
		return
	}
	a.logger.Infof("added %s entry", mode)
}
