package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timelane/pkg/config"
	"github.com/matzehuels/timelane/pkg/errors"
	"github.com/matzehuels/timelane/pkg/io"
	"github.com/matzehuels/timelane/pkg/pipeline"
)

// layoutOpts holds flags for the layout command.
type layoutOpts struct {
	output         string
	noCache        bool
	refresh        bool
	watch          bool
	maxRelocations int
	pixelsPerUnit  float64
}

func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{}

	cmd := &cobra.Command{
		Use:   "layout <items.json|items.yaml>",
		Short: "Compute a layout document from an item document",
		Long: `Compute row and label placements for every item in the input document.

The layout document is written next to the input as <name>.layout.json
unless -o is given. Results are cached by content; --refresh recomputes.
With --watch the layout is recomputed whenever the input file changes.`,
		Example: `  timelane layout composers.yaml
  timelane layout events.json -o out/events.layout.json --refresh
  timelane layout composers.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-relocations") {
				cfg.Layout.MaxRelocations = opts.maxRelocations
			}
			if cmd.Flags().Changed("pixels-per-unit") {
				cfg.Layout.PixelsPerUnit = opts.pixelsPerUnit
			}
			return c.runLayout(cmd.Context(), cfg, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "recompute when the input changes")
	cmd.Flags().IntVar(&opts.maxRelocations, "max-relocations", 0, "override the relocation budget")
	cmd.Flags().Float64Var(&opts.pixelsPerUnit, "pixels-per-unit", 0, "override the pixel to axis unit scale")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, cfg *config.Config, input string, opts layoutOpts) error {
	if err := errors.ValidateInputPath(input); err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = defaultOutputPath(input)
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	run := func(ctx context.Context) error {
		return c.layoutOnce(ctx, runner, cfg, input, output, opts.refresh)
	}
	if err := run(ctx); err != nil {
		return err
	}
	if !opts.watch {
		printNewline()
		printNextStep("Inspect", "timelane inspect "+output)
		return nil
	}

	printInfo("Watching %s (Ctrl-C to stop)", input)
	return watchFile(ctx, input, watchDebounce, c.Logger, run)
}

func (c *CLI) layoutOnce(ctx context.Context, runner *pipeline.Runner, cfg *config.Config, input, output string, refresh bool) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	res, err := runner.LayoutFile(ctx, input, cfg.Layout, pipeline.Options{
		Refresh: refresh,
		TTL:     cfg.Cache.TTL.Duration,
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	if err := io.ExportLayout(res.Document, output); err != nil {
		spinner.StopWithError("Write failed")
		return err
	}

	prog.done("layout written", "file", output)
	spinner.StopWithSuccess("Layout written")
	printFile(output)
	if len(res.Excluded) > 0 {
		printDetail("excluded: %s", strings.Join(res.Excluded, ", "))
	}
	fmt.Println(statsLine(res.Stats(), len(res.Excluded)) + StyleDim.Render(" · ") + cacheTag(res.CacheHit))
	return nil
}

// defaultOutputPath maps "dir/items.yaml" to "dir/items.layout.json".
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
