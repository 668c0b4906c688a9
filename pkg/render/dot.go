// Package render turns computed layouts into visual artifacts.
//
// The pipeline is DOT first: [ToDOT] serializes a layout to Graphviz DOT
// with pinned node positions, and [RenderSVG] / [RenderPNG] rasterize that
// DOT through Graphviz. Availability states from a student record color the
// nodes when provided.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/coursepath/coursepath/pkg/layout"
	"github.com/coursepath/coursepath/pkg/progress"
)

// Options configures DOT generation.
type Options struct {
	// States colors nodes by availability. Nil renders all nodes neutral.
	States map[string]progress.State

	// Detailed adds course titles to node labels when available.
	Detailed bool

	// Titles maps course IDs to display titles, used with Detailed.
	Titles map[string]string
}

// Node fill colors per availability state.
const (
	colorNeutral   = "#FFFFFF"
	colorLocked    = "#E8E8E8"
	colorAvailable = "#A8D8EA"
	colorFuture    = "#FCE38A"
	colorCompleted = "#95E1A4"
)

// ToDOT converts a layout to Graphviz DOT. Node positions are pinned from
// the layout coordinates, so rendering must use a position-honoring engine
// (see [RenderSVG]). Graphviz points grow upward while layout Y grows
// downward, so Y is negated.
func ToDOT(l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph courses {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.7, color=\"#666666\"];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		attrs := nodeAttrs(n, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n layout.Node, opts Options) []string {
	label := n.Code
	if label == "" {
		label = n.ID
	}
	if opts.Detailed {
		if title := opts.Titles[n.ID]; title != "" {
			label += "\n" + title
		}
	}

	// Layout Y grows downward, graphviz points grow upward. Normalize
	// IEEE negative zero so the origin row renders as "0.00".
	y := -n.Y
	if y == 0 {
		y = 0
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X, y),
		fmt.Sprintf("fillcolor=%q", fillColor(n.ID, opts.States)),
	}
	return attrs
}

func fillColor(id string, states map[string]progress.State) string {
	if states == nil {
		return colorNeutral
	}
	switch states[id] {
	case progress.Completed:
		return colorCompleted
	case progress.Available:
		return colorAvailable
	case progress.FutureAvailable:
		return colorFuture
	default:
		return colorLocked
	}
}
