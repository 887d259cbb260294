package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/blockies/internal/colour"
	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/render"
)

const swatchWidth = 4

// printPreview draws ic to stdout with half-block characters, one column
// per pixel.
func (a *app) printPreview(cmd *cobra.Command, ic *icon.Icon) error {
	out := cmd.OutOrStdout()

	if cols, ok := terminalWidth(out); ok && ic.Width() > cols {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Icon is %d pixels wide but the terminal has %d columns; try a smaller --scale\n", ic.Width(), cols)
	}

	surface, err := render.NewANSI(ic.Width())
	if err != nil {
		return err
	}
	if err := ic.Render(surface); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	fmt.Fprint(out, surface.String())
	return nil
}

// printColours prints a swatch for each of the icon's colours. Colours
// that cannot be painted are listed without a swatch.
func printColours(w io.Writer, ic *icon.Icon) {
	for _, c := range []struct{ label, value string }{
		{"color", ic.Color},
		{"bgcolor", ic.BgColor},
		{"spotcolor", ic.SpotColor},
	} {
		label := fmt.Sprintf("%-9s %s", c.label, c.value)

		parsed, err := colour.Parse(c.value)
		if err != nil {
			fmt.Fprintf(w, "%s  %s\n", strings.Repeat(" ", swatchWidth), label)
			continue
		}
		fmt.Fprintln(w, colour.FormatColourWithLabel(parsed, label, swatchWidth))
	}
}

// terminalWidth returns the column count of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}

	fd := int(f.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0, false
	}

	cols, _, err := term.GetSize(fd)
	if err != nil {
		return 0, false
	}
	return cols, true
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		icons    iconFlags
		seeds    seedFlags
		showSeed bool
		colours  bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print an identicon to the terminal",
		Long: `Print an identicon to the terminal using 24-bit colour half blocks.

Each pixel takes one column and half a row, so the default 8x8 icon at
scale 4 is 32 columns wide. Use --scale 1 for a compact preview.

Examples:
  blockies preview --seed alice
  blockies preview -s bob --scale 1 --size 12
  blockies preview -s carol --colours`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seedText, err := seeds.resolve(cmd, a.config.Defaults)
			if err != nil {
				return err
			}

			opts, err := icons.options(cmd, a.config.Defaults)
			if err != nil {
				return err
			}
			opts.Seed = seedText

			ic, err := icon.NewGenerator(icon.WithLogger(a.logger)).Build(opts)
			if err != nil {
				return err
			}

			if err := a.printPreview(cmd, ic); err != nil {
				return err
			}

			if colours {
				printColours(cmd.OutOrStdout(), ic)
			}
			if showSeed || seedText == nil {
				a.printf(cmd, "seed: %s\n", ic.Seed)
			}
			return nil
		},
	}

	icons.register(cmd)
	seeds.register(cmd)
	cmd.Flags().BoolVar(&showSeed, "show-seed", false, "print the seed below the icon")
	cmd.Flags().BoolVar(&colours, "colours", false, "print a swatch for each colour below the icon")

	return cmd
}
