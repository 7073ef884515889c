package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stc/pkg/compose"
	"github.com/matzehuels/stc/pkg/selection"
)

// itemsCommand creates the selection management command.
func (c *CLI) itemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Inspect or clear the captured selection",
	}

	cmd.AddCommand(c.itemsListCommand())
	cmd.AddCommand(c.itemsClearCommand())

	return cmd
}

// itemsListCommand creates the "items list" subcommand.
func (c *CLI) itemsListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List captured items in composition order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx, false)
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := selection.NewRepository(store).Load(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			if len(items) == 0 {
				printInfo("Selection is empty")
				printNextStep("Capture posts", "stc pick <url>")
				return nil
			}
			fmt.Fprintln(out, itemsTable(items, snippetWidth))
			if len(items) > compose.MaxItems {
				printWarning("Only the first %d items are drawn on the graphic", compose.MaxItems)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON array")

	return cmd
}

// itemsClearCommand creates the "items clear" subcommand. With a page
// argument the clear is sent to that page's capture agent through the
// control panel; otherwise storage is cleared directly.
func (c *CLI) itemsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [url|file]",
		Short: "Clear the captured selection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				store, err := c.openStore(ctx, false)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := selection.NewRepository(store).Clear(ctx); err != nil {
					return err
				}
				printSuccess("Selection cleared")
				return nil
			}

			ws, err := c.openWorkspace(ctx, false)
			if err != nil {
				return err
			}
			defer ws.Close()
			if _, err := c.openTab(ctx, ws, args[0]); err != nil {
				return err
			}
			if err := ws.panel.Clear(ctx); err != nil {
				return err
			}
			printSuccess("Selection cleared")
			return nil
		},
	}
}

// itemsTable renders items as a table, the first compose.MaxItems numbered
// and the rest dimmed.
func itemsTable(items selection.Set, width int) string {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{fmt.Sprint(i + 1), string(it.Type), truncate(it.Text, width)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Type", "Text").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row >= compose.MaxItems:
				return listDimStyle
			case col == 1 && items[row].Type == selection.TypeMember:
				return StyleHighlight
			}
			return listNormalStyle
		}).
		Render()
}

// truncate flattens s to one line and cuts it to max runes.
func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); max > 0 && len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}
