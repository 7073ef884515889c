package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/selection"
)

// captureCommand creates the non-interactive capture command.
func (c *CLI) captureCommand() *cobra.Command {
	var (
		mode  string
		picks []string
	)

	cmd := &cobra.Command{
		Use:   "capture <url|file>",
		Short: "Capture posts from a page by CSS selector",
		Long: `Open a page, switch it into testimonial or member mode, and click every
highlighted element matched by each --pick selector. Elements that are not
highlighted in the chosen mode are ignored.`,
		Example: `  stc capture https://community.example.com/feed --mode testimonial --pick '#post-42'
  stc capture feed.html --mode member --pick 'div.member:nth-of-type(-n+3)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseModeFlag(mode)
			if err != nil {
				return err
			}
			if len(picks) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "at least one --pick selector is required")
			}
			for _, p := range picks {
				if err := errors.ValidateSelector(p); err != nil {
					return err
				}
			}
			return c.runCapture(cmd.Context(), args[0], m, picks)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(selection.ModeTestimonial), "capture mode: testimonial or member")
	cmd.Flags().StringArrayVarP(&picks, "pick", "p", nil, "CSS selector of elements to click (repeatable)")

	return cmd
}

func (c *CLI) runCapture(ctx context.Context, target string, m selection.Mode, picks []string) error {
	logger := loggerFromContext(ctx)
	ws, err := c.openWorkspace(ctx, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	before, err := ws.repo.Load(ctx)
	if err != nil {
		return err
	}

	tab, err := c.openTab(ctx, ws, target)
	if err != nil {
		return err
	}

	if err := ws.panel.SetMode(ctx, m); err != nil {
		return err
	}

	prog := newProgress(logger)
	clicked := 0
	for _, sel := range picks {
		n, err := ws.browser.Click(ctx, tab, sel)
		if err != nil {
			return err
		}
		logger.Debug("clicked", "selector", sel, "matches", n)
		clicked += n
	}
	if err := ws.panel.Disable(ctx); err != nil {
		return err
	}

	after, err := ws.repo.Load(ctx)
	if err != nil {
		return err
	}
	captured := len(after) - len(before)
	prog.done("clicked elements", "count", clicked, "captured", captured)

	if captured <= 0 {
		printWarning("Nothing captured; no matched element is highlighted in %s mode", m)
		return nil
	}
	printSuccess("Captured %s %s", StyleNumber.Render(fmt.Sprint(captured)), plural(captured, m.String()+" entry", m.String()+" entries"))
	printDetail("Selection now holds %d items", len(after))
	printNewline()
	printNextStep("Compose the graphic", "stc compose")
	return nil
}

// openTab loads target into a new tab, showing a spinner while it loads.
func (c *CLI) openTab(ctx context.Context, ws *workspace, target string) (string, error) {
	spinner := newSpinnerWithContext(ctx, "Loading "+target+"...")
	spinner.Start()
	tab, err := ws.browser.Open(ctx, target)
	if err != nil {
		spinner.StopWithError("Failed to load " + target)
		return "", err
	}
	spinner.Stop()
	printInfo("Opened %s", StyleLink.Render(target))
	return tab, nil
}

// parseModeFlag accepts testimonial, member or none. Anything else is an
// error here even though the capture agent itself treats it as none.
func parseModeFlag(s string) (selection.Mode, error) {
	m := selection.ParseMode(s)
	if m == selection.ModeNone && s != "none" && s != "" {
		return m, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q (must be 'testimonial', 'member' or 'none')", s)
	}
	return m, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
