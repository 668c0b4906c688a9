package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursepath/coursepath/pkg/layout"
	"github.com/coursepath/coursepath/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output      string  // output file path
	vizType     string  // "grid" or "radial"
	hSpacing    float64 // horizontal node spacing
	vSpacing    float64 // vertical level spacing
	baseRadius  float64 // innermost ring radius (radial)
	ringSpacing float64 // spacing between rings (radial)
	entry       string  // comma-separated entry course codes (radial)
	noCache     bool    // disable the layout cache
	refresh     bool    // recompute even on a cache hit
}

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{vizType: layout.VizTypeGrid}

	cmd := &cobra.Command{
		Use:   "layout [catalog.json]",
		Short: "Compute node positions for a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <catalog>_layout.json)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization type: grid (default), radial")
	cmd.Flags().Float64Var(&opts.hSpacing, "h-spacing", 0, "horizontal node spacing")
	cmd.Flags().Float64Var(&opts.vSpacing, "v-spacing", 0, "vertical level spacing")
	cmd.Flags().Float64Var(&opts.baseRadius, "base-radius", 0, "innermost ring radius (radial)")
	cmd.Flags().Float64Var(&opts.ringSpacing, "ring-spacing", 0, "spacing between rings (radial)")
	cmd.Flags().StringVar(&opts.entry, "entry", "", "entry course codes, comma-separated (radial)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even on a cache hit")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input string, opts *layoutOpts) error {
	runner, err := c.newRunner(cmd.Context(), opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pOpts := pipeline.Options{
		CatalogPath:  input,
		VizType:      opts.vizType,
		HSpacing:     opts.hSpacing,
		VSpacing:     opts.vSpacing,
		BaseRadius:   opts.baseRadius,
		RingSpacing:  opts.ringSpacing,
		EntryCourses: parseEntryCourses(opts.entry),
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	}
	c.Config.applyLayoutConfig(&pOpts)
	pOpts.SetLayoutDefaults()

	if err := pipeline.ValidateVizType(pOpts.VizType); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(cmd.Context(), "computing layout")
	spinner.Start()

	idx, hash, err := runner.LoadIndex(cmd.Context(), pOpts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}

	l, hit, err := runner.ComputeLayoutWithCacheInfo(cmd.Context(), idx, hash, pOpts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	output := opts.output
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		output = base + "_layout.json"
	}
	if err := layout.WriteLayoutFile(l, output); err != nil {
		return err
	}

	printSuccess("Computed %s layout", pOpts.VizType)
	printStats(len(l.Nodes), len(l.Edges), hit)
	if len(l.Unresolved) > 0 {
		printWarning("%d courses form prerequisite cycles: %s",
			len(l.Unresolved), strings.Join(l.Unresolved, ", "))
	}
	printFile(output)

	printNewline()
	printNextStep("Render it", fmt.Sprintf("coursepath render %s -f svg", input))
	return nil
}
