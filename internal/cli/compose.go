package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stc/pkg/compose"
	"github.com/matzehuels/stc/pkg/errors"
)

// composeCommand creates the compose command.
func (c *CLI) composeCommand() *cobra.Command {
	var (
		output  string
		bg      string
		footer  string
		logo    string
		dataURL bool
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Render the selection into a PNG graphic",
		Long: `Open the composer on the current selection and render it. The first ten
items are drawn in capture order. The image is written to
skool-testimonials.png in the output directory.`,
		Example: `  stc compose
  stc compose -o ~/Pictures --bg '#fdf6e3' --footer 'Join us at example.com' --logo logo.png
  stc compose --data-url > graphic.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if bg != "" {
				if _, err := compose.ParseColor(bg); err != nil {
					return err
				}
			}
			if logo != "" {
				if err := errors.ValidatePath(logo); err != nil {
					return err
				}
			}

			ws, err := c.openWorkspace(ctx, false)
			if err != nil {
				return err
			}
			defer ws.Close()

			tab, err := ws.panel.OpenComposer(ctx)
			if err != nil {
				return err
			}
			composer, err := ws.browser.Composer(tab)
			if err != nil {
				return err
			}

			res, err := composer.Render(ctx, compose.Options{
				Background: bg,
				Footer:     footer,
				LogoPath:   logo,
			})
			if err != nil {
				return err
			}
			if res.LogoErr != nil {
				printWarning("Logo skipped: %s", errors.UserMessage(res.LogoErr))
			}

			if dataURL {
				url, err := composer.DataURL(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, url)
				return nil
			}

			path, err := composer.Download(ctx, output)
			if err != nil {
				return err
			}
			canvas := composer.Canvas()
			printSuccess("Rendered %d %s", res.Items, plural(res.Items, "item", "items"))
			printDetail("%dx%d · %s", canvas.Width, canvas.Height, res.Duration.Round(time.Millisecond))
			printFile(path)
			if total := len(composer.Items()); total > res.Items {
				printWarning("%d more %s not drawn", total-res.Items, plural(total-res.Items, "item was", "items were"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&bg, "bg", compose.DefaultBackground, "background colour (hex, rgb() or CSS name)")
	cmd.Flags().StringVar(&footer, "footer", "", "footer text")
	cmd.Flags().StringVar(&logo, "logo", "", "logo image (png, jpeg, gif, bmp or webp)")
	cmd.Flags().BoolVar(&dataURL, "data-url", false, "print a data:image/png URL instead of writing a file")

	return cmd
}
