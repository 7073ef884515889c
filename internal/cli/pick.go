package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/matzehuels/stc/pkg/host"
	"github.com/matzehuels/stc/pkg/page"
	"github.com/matzehuels/stc/pkg/panel"
	"github.com/matzehuels/stc/pkg/selection"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// snippetWidth is how many characters of an element's text the picker shows.
const snippetWidth = 60

// pickCommand creates the interactive picker command.
func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <url|file>",
		Short: "Pick posts interactively",
		Long: `Open a page in an interactive picker. Switch modes with t (testimonial),
m (member) and n (none), move between highlighted elements with the arrow
keys and press enter to capture one. c clears the selection, e opens the
composer and q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openWorkspace(ctx, false)
			if err != nil {
				return err
			}
			defer ws.Close()

			tab, err := c.openTab(ctx, ws, args[0])
			if err != nil {
				return err
			}

			model := NewPickerModel(ctx, ws.browser, ws.panel, tab)
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			m := final.(PickerModel)
			if m.Err != nil {
				return m.Err
			}

			printSuccess("Captured %d %s this session", m.Captured, plural(m.Captured, "item", "items"))
			if m.ComposeRequested {
				printNewline()
				printNextStep("Compose the graphic", "stc compose")
			}
			return nil
		},
	}
}

// =============================================================================
// PickerModel - Interactive element capture
// =============================================================================

// PickerModel is the bubbletea model for the interactive picker. It drives
// the page through the control panel and synthetic pointer events, exactly
// as a user moving the mouse would.
type PickerModel struct {
	ctx     context.Context
	browser *host.Browser
	panel   *panel.Panel
	tab     string

	Mode     selection.Mode
	Elements []*html.Node
	Cursor   int
	Offset   int
	Height   int

	Captured         int
	Status           string
	Err              error
	ComposeRequested bool
}

// NewPickerModel creates a picker for tab. The page starts in mode none.
func NewPickerModel(ctx context.Context, b *host.Browser, p *panel.Panel, tab string) PickerModel {
	return PickerModel{
		ctx:     ctx,
		browser: b,
		panel:   p,
		tab:     tab,
		Height:  12,
		Status:  "press t or m to start",
	}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.leave()
			return m, tea.Quit
		case "t":
			m.switchMode(selection.ModeTestimonial)
		case "m":
			m.switchMode(selection.ModeMember)
		case "n":
			m.switchMode(selection.ModeNone)
		case "up", "k":
			if m.Cursor > 0 {
				m.move(m.Cursor - 1)
			}
		case "down", "j":
			if m.Cursor < len(m.Elements)-1 {
				m.move(m.Cursor + 1)
			}
		case "enter":
			m.capture()
		case "c":
			if err := m.panel.Clear(m.ctx); err != nil {
				m.Status = "clear failed: " + err.Error()
			} else {
				m.Status = "selection cleared"
			}
		case "e":
			m.leave()
			m.ComposeRequested = true
			return m, tea.Quit
		}
		if m.Err != nil {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m *PickerModel) switchMode(mode selection.Mode) {
	m.leave()
	if err := m.panel.SetMode(m.ctx, mode); err != nil {
		m.Err = err
		return
	}
	m.Mode = mode
	m.Elements = nil
	m.Cursor, m.Offset = 0, 0
	err := m.browser.WithTab(m.tab, func(t *host.Tab) error {
		m.Elements = append([]*html.Node(nil), t.Agent().Decorated()...)
		return nil
	})
	if err != nil {
		m.Err = err
		return
	}
	m.Status = fmt.Sprintf("%d %s highlighted", len(m.Elements), plural(len(m.Elements), "element", "elements"))
	m.enter()
}

func (m *PickerModel) move(to int) {
	m.leave()
	m.Cursor = to
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	m.enter()
}

func (m *PickerModel) capture() {
	node := m.current()
	if node == nil {
		return
	}
	before := m.selectionSize()
	if err := m.browser.DispatchNode(m.ctx, m.tab, node, page.Click); err != nil {
		m.Err = err
		return
	}
	if after := m.selectionSize(); after > before {
		m.Captured += after - before
		m.Status = fmt.Sprintf("added %s entry (%d in selection)", m.Mode, after)
	} else {
		m.Status = "nothing captured"
	}
}

func (m *PickerModel) selectionSize() int {
	n := 0
	_ = m.browser.WithTab(m.tab, func(t *host.Tab) error {
		n = len(t.Agent().State().Items())
		return nil
	})
	return n
}

func (m *PickerModel) current() *html.Node {
	if m.Cursor < 0 || m.Cursor >= len(m.Elements) {
		return nil
	}
	return m.Elements[m.Cursor]
}

func (m *PickerModel) enter() {
	if n := m.current(); n != nil {
		_ = m.browser.DispatchNode(m.ctx, m.tab, n, page.PointerEnter)
	}
}

func (m *PickerModel) leave() {
	if n := m.current(); n != nil {
		_ = m.browser.DispatchNode(m.ctx, m.tab, n, page.PointerLeave)
	}
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pick Posts"))
	b.WriteString("  ")
	b.WriteString(StyleHighlight.Render("mode: " + m.Mode.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("t/m/n mode  ↑/↓ move  ⏎ capture  c clear  e compose  q quit"))
	b.WriteString("\n\n")

	if len(m.Elements) == 0 {
		b.WriteString(listDimStyle.Render("  no highlighted elements"))
		b.WriteString("\n\n")
		b.WriteString(listDimStyle.Render("  " + m.Status))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Elements) {
		end = len(m.Elements)
	}

	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		n := m.Elements[i]
		rows = append(rows, []string{cursor, page.Describe(n), page.Snippet(n, snippetWidth)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Element", "Text").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s", m.Cursor+1, len(m.Elements), m.Status)))

	return b.String()
}
