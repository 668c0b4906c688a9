package layout

import (
	"github.com/coursepath/coursepath/pkg/catalog"
)

// Visualization types.
const (
	VizTypeGrid   = "grid"
	VizTypeRadial = "radial"
)

// Node is a positioned course in a layout. X and Y are position hints in
// abstract pixel units; Depth is the level (grid) or ring (radial) index.
type Node struct {
	ID    string  `json:"id" bson:"id"`
	Code  string  `json:"code,omitempty" bson:"code,omitempty"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Depth int     `json:"depth" bson:"depth"`
}

// Edge is a directed prerequisite edge: Source must be taken before (or, for
// corequisites, alongside) Target.
type Edge struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Layout is the serialization format for a computed course graph.
// Check VizType to determine which strategy produced it.
type Layout struct {
	VizType string  `json:"viz_type" bson:"viz_type"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`

	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges,omitempty" bson:"edges,omitempty"`

	// Levels maps each level (grid) or ring (radial) index to the course IDs
	// assigned to it, in placement order.
	Levels map[int][]string `json:"levels,omitempty" bson:"levels,omitempty"`

	// Unresolved lists courses whose level could not be determined because
	// the catalog contains a prerequisite cycle. They still appear in Nodes.
	Unresolved []string `json:"unresolved,omitempty" bson:"unresolved,omitempty"`

	index map[string]int // node ID -> position in Nodes
}

// Node returns the positioned node with the given course ID.
func (l *Layout) Node(id string) (*Node, bool) {
	if l.index == nil {
		l.index = make(map[string]int, len(l.Nodes))
		for i, n := range l.Nodes {
			l.index[n.ID] = i
		}
	}
	i, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return &l.Nodes[i], true
}

// Endpoints resolves an edge to its positioned endpoint nodes, so a renderer
// can read coordinates directly instead of re-resolving IDs.
func (l *Layout) Endpoints(e Edge) (src, dst *Node, ok bool) {
	src, okS := l.Node(e.Source)
	dst, okD := l.Node(e.Target)
	if !okS || !okD {
		return nil, nil, false
	}
	return src, dst, true
}

// Options configures both layout strategies. The zero value is not usable;
// start from [DefaultOptions].
type Options struct {
	// HSpacing is the horizontal gap between adjacent courses in a grid row.
	HSpacing float64
	// VSpacing is the vertical gap between grid levels.
	VSpacing float64
	// BaseRadius is the radius of the innermost radial ring.
	BaseRadius float64
	// RingSpacing is the radial gap between consecutive rings.
	RingSpacing float64
	// EntryCourses lists course codes treated as true introductory courses:
	// prerequisite-free courses in this set get radial depth 0, all other
	// prerequisite-free courses get depth 1. This models catalogs where many
	// courses list no prerequisite without being introductory. Membership is
	// institution policy, so it is supplied by the caller (typically from
	// config) rather than baked in here.
	EntryCourses []string
}

// DefaultOptions returns the spacing defaults shared by CLI and server.
func DefaultOptions() Options {
	return Options{
		HSpacing:    160,
		VSpacing:    120,
		BaseRadius:  120,
		RingSpacing: 110,
	}
}

// entrySet normalizes the entry-course codes for lookup.
func (o Options) entrySet() map[string]bool {
	if len(o.EntryCourses) == 0 {
		return nil
	}
	set := make(map[string]bool, len(o.EntryCourses))
	for _, code := range o.EntryCourses {
		set[catalog.NormalizeCode(code)] = true
	}
	return set
}

// prereqEdges builds one edge per resolved (prerequisite, dependent) pair,
// in catalog order. Both strategies emit the same edge list.
func prereqEdges(idx *catalog.Index) []Edge {
	var edges []Edge
	for _, c := range idx.Courses() {
		for _, prereqID := range idx.Prerequisites(c.ID) {
			edges = append(edges, Edge{Source: prereqID, Target: c.ID})
		}
	}
	return edges
}
