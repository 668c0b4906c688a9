package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursepath/coursepath/pkg/layout"
	"github.com/coursepath/coursepath/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single format) or base path (multiple)
	vizType  string // "grid" or "radial"
	formats  string // comma-separated output formats
	record   string // student record file for availability coloring
	future   bool   // one-step lookahead classification
	detailed bool   // include course titles in node labels
	entry    string // entry course codes (radial)
	noCache  bool   // disable caching
	refresh  bool   // recompute even on cache hits
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{vizType: layout.VizTypeGrid}

	cmd := &cobra.Command{
		Use:   "render [catalog.json]",
		Short: "Render a catalog as SVG, PNG, DOT, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization type: grid (default), radial")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.record, "record", "r", "", "student record file for availability coloring")
	cmd.Flags().BoolVar(&opts.future, "future", false, "also mark courses that unlock after one more term")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include course titles in node labels")
	cmd.Flags().StringVar(&opts.entry, "entry", "", "entry course codes, comma-separated (radial)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even on cache hits")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	runner, err := c.newRunner(cmd.Context(), opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pOpts := pipeline.Options{
		CatalogPath:  input,
		VizType:      opts.vizType,
		Formats:      parseFormats(opts.formats),
		RecordPath:   opts.record,
		FutureMode:   opts.future || c.Config.Plan.FutureMode,
		Detailed:     opts.detailed,
		EntryCourses: parseEntryCourses(opts.entry),
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	}
	c.Config.applyLayoutConfig(&pOpts)

	spinner := newSpinnerWithContext(cmd.Context(), "rendering")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), pOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s view", pOpts.VizType)
	printStats(result.Stats.CourseCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	if result.Stats.Unresolved > 0 {
		printWarning("%d courses form prerequisite cycles", result.Stats.Unresolved)
	}

	base := basePath(opts.output, input)
	for _, format := range pOpts.Formats {
		path := base + "." + format
		if len(pOpts.Formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// A format extension on the output path is stripped so multiple formats can
// share the base.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
