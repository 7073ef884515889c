package host

import (
	"sync"

	"github.com/matzehuels/stc/pkg/capture"
	"github.com/matzehuels/stc/pkg/compose"
	"github.com/matzehuels/stc/pkg/page"
)

// Kind distinguishes page tabs from composer tabs.
type Kind string

const (
	KindPage   Kind = "page"
	KindEditor Kind = "editor"
)

// EditorURL is the address of composer tabs.
const EditorURL = "stc://composer"

// Tab is one open tab. Its fields are only touched while its lock is held;
// use [Browser.WithTab] for access.
type Tab struct {
	ID   string
	URL  string
	Kind Kind

	mu         sync.Mutex
	source     string
	doc        *page.Document
	agent      *capture.Agent
	composer   *compose.Composer
	controlled bool
}

// Document returns the tab's page, or nil for composer tabs.
func (t *Tab) Document() *page.Document { return t.doc }

// Agent returns the tab's capture agent, or nil for composer tabs.
func (t *Tab) Agent() *capture.Agent { return t.agent }

// Composer returns the tab's composer, or nil for page tabs.
func (t *Tab) Composer() *compose.Composer { return t.composer }

// Info is a snapshot of a tab's state.
type Info struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Kind       Kind   `json:"kind"`
	Active     bool   `json:"active"`
	Controlled bool   `json:"controlled"`
	Mode       string `json:"mode,omitempty"`
	Decorated  int    `json:"decorated,omitempty"`
	Items      int    `json:"items"`
}

func (t *Tab) info(active bool) Info {
	t.mu.Lock()
	defer t.mu.Unlock()
	in := Info{ID: t.ID, URL: t.URL, Kind: t.Kind, Active: active, Controlled: t.controlled}
	switch t.Kind {
	case KindPage:
		in.Mode = t.agent.State().Mode().String()
		in.Decorated = len(t.agent.Decorated())
		in.Items = len(t.agent.State().Items())
	case KindEditor:
		in.Items = len(t.composer.Items())
	}
	return in
}
