package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/plugin/output"
	"github.com/jmylchreest/blockies/internal/plugin/output/common"
	"github.com/jmylchreest/blockies/internal/security"
)

// maxSeedListSize caps how much of a seed list batch will read.
const maxSeedListSize = 16 << 20

// readSeeds returns one seed per line. Surrounding whitespace is trimmed
// and blank lines are skipped.
func readSeeds(r io.Reader) ([]string, error) {
	var seeds []string

	scanner := bufio.NewScanner(security.NewLimitedReader(r, maxSeedListSize))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		seeds = append(seeds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seeds: %w", err)
	}

	return seeds, nil
}

// buildIcons builds one icon per seed on up to jobs goroutines. Results keep
// the order of seeds. The first failure cancels the remaining builds.
func buildIcons(ctx context.Context, gen *icon.Generator, opts icon.Options, seeds []string, jobs int) ([]*icon.Icon, error) {
	icons := make([]*icon.Icon, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, s := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			o := opts
			o.Seed = icon.Seed(s)

			ic, err := gen.Build(o)
			if err != nil {
				return fmt.Errorf("seed %q: %w", s, err)
			}
			icons[i] = ic
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return icons, nil
}

// baseNames derives a distinct file name stem from every seed.
func baseNames(seeds []string) []string {
	names := make([]string, len(seeds))
	seen := make(map[string]bool, len(seeds))
	next := make(map[string]int)

	for i, s := range seeds {
		base := common.SanitiseBaseName(s, fmt.Sprintf("%s-%d", output.DefaultBaseName, i+1))

		name := base
		if seen[name] {
			n := max(next[base], 2)
			for ; seen[name]; n++ {
				name = fmt.Sprintf("%s-%d", base, n)
			}
			next[base] = n
		}

		seen[name] = true
		names[i] = name
	}

	return names
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		icons   iconFlags
		outputs outputFlags
		jobs    int
	)

	cmd := &cobra.Command{
		Use:   "batch <seed-file>",
		Short: "Generate identicons for many seeds",
		Long: `Generate one identicon per line of a seed file ("-" reads standard input).

Icons are built concurrently and then written by the selected output
plugins. Each icon's files are named after its seed, with characters that
are not safe in file names replaced by "-".

Examples:
  blockies batch users.txt -o png --png.output-dir ./avatars
  cut -d, -f1 users.csv | blockies batch - --jobs 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs <= 0 {
				return fmt.Errorf("--jobs must be positive: %d", jobs)
			}

			seeds, err := a.loadSeeds(cmd, args[0])
			if err != nil {
				return err
			}
			if len(seeds) == 0 {
				return errors.New("no seeds found")
			}

			plugins, err := a.prepareOutputs(cmd, &outputs)
			if err != nil {
				return err
			}

			a.logger.Debug("building icons", "count", len(seeds), "jobs", jobs)

			gen := icon.NewGenerator(icon.WithLogger(a.logger))
			opts, err := icons.options(cmd, a.config.Defaults)
			if err != nil {
				return err
			}

			built, err := buildIcons(cmd.Context(), gen, opts, seeds, jobs)
			if err != nil {
				return err
			}

			// Plugins hold the base name, so rendering stays sequential.
			names := baseNames(seeds)
			failed := 0
			for i, ic := range built {
				a.printf(cmd, "✓ %s\n", names[i])

				succeeded, err := a.runOutputs(cmd, plugins, ic, names[i], outputs.dryRun)
				if err != nil {
					return err
				}
				if succeeded == 0 {
					failed++
				}
			}

			if failed == len(built) {
				return errors.New("no output plugins succeeded")
			}
			if !outputs.dryRun {
				a.printf(cmd, "✓ Done! Generated %d icon(s)\n", len(built)-failed)
			}
			return nil
		},
	}

	icons.register(cmd)
	outputs.register(cmd)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of icons built concurrently")

	for _, p := range a.manager.AllOutputPlugins() {
		p.RegisterFlags(cmd)
	}

	return cmd
}

// loadSeeds reads seeds from path, or from standard input for "-".
func (a *app) loadSeeds(cmd *cobra.Command, path string) ([]string, error) {
	if path == "-" {
		return readSeeds(cmd.InOrStdin())
	}

	f, err := os.Open(path) // #nosec G304 -- user-specified seed file
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return readSeeds(f)
}
