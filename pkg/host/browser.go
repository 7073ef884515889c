package host

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/matzehuels/stc/pkg/capture"
	"github.com/matzehuels/stc/pkg/compose"
	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/httputil"
	"github.com/matzehuels/stc/pkg/message"
	"github.com/matzehuels/stc/pkg/page"
	"github.com/matzehuels/stc/pkg/panel"
	"github.com/matzehuels/stc/pkg/selection"
)

// Options configures a Browser.
type Options struct {
	Repo      *selection.Repository
	Fetcher   *httputil.Fetcher // nil uses a fetcher without snapshots
	Selectors capture.Selectors
	Canvas    compose.Canvas
	Logger    *log.Logger
}

// Browser owns the open tabs.
type Browser struct {
	repo      *selection.Repository
	fetcher   *httputil.Fetcher
	selectors capture.Selectors
	canvas    compose.Canvas
	logger    *log.Logger

	mu     sync.RWMutex
	tabs   map[string]*Tab
	order  []string
	active string
	worker *Worker
}

// NewBrowser creates a browser with no tabs.
func NewBrowser(opts Options) *Browser {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Fetcher == nil {
		opts.Fetcher = httputil.NewFetcher(nil)
	}
	return &Browser{
		repo:      opts.Repo,
		fetcher:   opts.Fetcher,
		selectors: opts.Selectors,
		canvas:    opts.Canvas,
		logger:    opts.Logger,
		tabs:      make(map[string]*Tab),
	}
}

var _ panel.Host = (*Browser)(nil)

// Open loads target (a URL or a local HTML file) into a new active tab.
func (b *Browser) Open(ctx context.Context, target string) (string, error) {
	doc, err := page.Load(ctx, b.fetcher, target)
	if err != nil {
		return "", err
	}
	url := doc.URL()
	if url == "" {
		url = target
	}
	return b.openDocument(ctx, url, doc)
}

// OpenHTML parses src into a new active tab with the given URL.
func (b *Browser) OpenHTML(ctx context.Context, url, src string) (string, error) {
	doc, err := page.Parse(strings.NewReader(src))
	if err != nil {
		return "", err
	}
	return b.openDocument(ctx, url, doc)
}

func (b *Browser) openDocument(ctx context.Context, url string, doc *page.Document) (string, error) {
	src, err := doc.HTML()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "snapshot page")
	}
	tab := &Tab{ID: uuid.NewString(), URL: url, Kind: KindPage, source: src}
	if err := b.inject(ctx, tab, doc); err != nil {
		return "", err
	}
	b.add(tab)
	b.logger.Debug("opened tab", "tab", tab.ID, "url", url)
	return tab.ID, nil
}

// inject attaches a fresh, hydrated capture agent to doc. Callers hold the
// tab lock or own the tab exclusively.
func (b *Browser) inject(ctx context.Context, tab *Tab, doc *page.Document) error {
	agent := capture.New(doc, b.repo, capture.Options{
		Selectors: b.selectors,
		Logger:    b.logger.With("tab", shortID(tab.ID)),
	})
	if err := agent.Hydrate(ctx); err != nil {
		return err
	}
	tab.doc = doc
	tab.agent = agent
	return nil
}

func (b *Browser) add(tab *Tab) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tab.controlled = b.worker != nil && b.worker.Active()
	b.tabs[tab.ID] = tab
	b.order = append(b.order, tab.ID)
	b.active = tab.ID
}

// Canvas returns the canvas size used by composer tabs.
func (b *Browser) Canvas() compose.Canvas { return b.canvas }

// OpenEditor opens a composer tab that has read the current selection.
func (b *Browser) OpenEditor(ctx context.Context) (string, error) {
	c := compose.New(b.repo, compose.Config{Canvas: b.canvas, Logger: b.logger})
	if err := c.Load(ctx); err != nil {
		return "", err
	}
	tab := &Tab{ID: uuid.NewString(), URL: EditorURL, Kind: KindEditor, composer: c}
	b.add(tab)
	b.logger.Debug("opened composer", "tab", tab.ID, "items", len(c.Items()))
	return tab.ID, nil
}

// Reload re-parses the tab's page and injects a new agent. The mode resets
// to none and the mirror is re-read from storage. Composer tabs re-read the
// selection.
func (b *Browser) Reload(ctx context.Context, id string) error {
	return b.WithTab(id, func(t *Tab) error {
		if t.Kind == KindEditor {
			return t.composer.Load(ctx)
		}
		doc, err := page.Parse(strings.NewReader(t.source))
		if err != nil {
			return err
		}
		if err := b.inject(ctx, t, doc); err != nil {
			return err
		}
		b.logger.Debug("reloaded tab", "tab", t.ID)
		return nil
	})
}

// Activate makes id the active tab.
func (b *Browser) Activate(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.tabs[id]; !ok {
		return tabNotFound(id)
	}
	b.active = id
	return nil
}

// Close removes a tab. If it was active, the most recently opened remaining
// tab becomes active.
func (b *Browser) Close(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.tabs[id]; !ok {
		return tabNotFound(id)
	}
	delete(b.tabs, id)
	b.order = slices.DeleteFunc(b.order, func(x string) bool { return x == id })
	if b.active == id {
		b.active = ""
		if n := len(b.order); n > 0 {
			b.active = b.order[n-1]
		}
	}
	return nil
}

// Tabs lists open tabs in the order they were opened.
func (b *Browser) Tabs() []Info {
	b.mu.RLock()
	tabs := make([]*Tab, 0, len(b.order))
	for _, id := range b.order {
		tabs = append(tabs, b.tabs[id])
	}
	active := b.active
	b.mu.RUnlock()

	out := make([]Info, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, t.info(t.ID == active))
	}
	return out
}

// ActiveTab implements panel.TabQuerier.
func (b *Browser) ActiveTab(context.Context) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active, b.active != "", nil
}

// SendMessage implements panel.Messenger. Messages to composer tabs and to
// tabs without an active worker are dropped.
func (b *Browser) SendMessage(ctx context.Context, id string, cmd message.Command) error {
	return b.WithTab(id, func(t *Tab) error {
		if t.Kind != KindPage {
			b.logger.Debug("dropping message for composer tab", "tab", id, "type", cmd.Type)
			return nil
		}
		if !t.controlled {
			b.logger.Debug("dropping message for uncontrolled tab", "tab", id, "type", cmd.Type)
			return nil
		}
		return t.agent.Handle(ctx, cmd)
	})
}

// WithTab runs fn with the tab's lock held.
func (b *Browser) WithTab(id string, fn func(*Tab) error) error {
	b.mu.RLock()
	t, ok := b.tabs[id]
	b.mu.RUnlock()
	if !ok {
		return tabNotFound(id)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t)
}

// Click dispatches a click on every element of tab id matching selector and
// returns how many were clicked.
func (b *Browser) Click(ctx context.Context, id, selector string) (int, error) {
	return b.dispatch(ctx, id, selector, page.Click)
}

// Hover dispatches pointerenter (or pointerleave when leave is set) on every
// element matching selector.
func (b *Browser) Hover(ctx context.Context, id, selector string, leave bool) (int, error) {
	typ := page.PointerEnter
	if leave {
		typ = page.PointerLeave
	}
	return b.dispatch(ctx, id, selector, typ)
}

func (b *Browser) dispatch(ctx context.Context, id, selector string, typ page.EventType) (int, error) {
	var n int
	err := b.WithTab(id, func(t *Tab) error {
		if t.Kind != KindPage {
			return errors.New(errors.ErrCodeInvalidInput, "tab %s has no page", id)
		}
		nodes, err := t.doc.QueryAll(selector)
		if err != nil {
			return err
		}
		for _, node := range nodes {
			t.doc.Dispatch(ctx, node, typ)
		}
		n = len(nodes)
		return nil
	})
	return n, err
}

// DispatchNode fires typ at node in tab id.
func (b *Browser) DispatchNode(ctx context.Context, id string, node *html.Node, typ page.EventType) error {
	return b.WithTab(id, func(t *Tab) error {
		if t.Kind != KindPage {
			return errors.New(errors.ErrCodeInvalidInput, "tab %s has no page", id)
		}
		t.doc.Dispatch(ctx, node, typ)
		return nil
	})
}

// Composer returns the composer of editor tab id.
func (b *Browser) Composer(id string) (*compose.Composer, error) {
	var c *compose.Composer
	err := b.WithTab(id, func(t *Tab) error {
		if t.Kind != KindEditor {
			return errors.New(errors.ErrCodeInvalidInput, "tab %s is not a composer", id)
		}
		c = t.composer
		return nil
	})
	return c, err
}

func (b *Browser) claim() int {
	b.mu.RLock()
	tabs := make([]*Tab, 0, len(b.tabs))
	for _, t := range b.tabs {
		tabs = append(tabs, t)
	}
	b.mu.RUnlock()

	for _, t := range tabs {
		t.mu.Lock()
		t.controlled = true
		t.mu.Unlock()
	}
	return len(tabs)
}

func tabNotFound(id string) error {
	return errors.New(errors.ErrCodeTabNotFound, "no tab %q", id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
