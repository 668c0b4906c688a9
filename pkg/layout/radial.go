package layout

import (
	"math"

	"github.com/coursepath/coursepath/pkg/catalog"
)

// Radial computes a ring layout for the catalog.
//
// Each course is assigned a depth by memoized recursive descent over its
// resolved prerequisites: a prerequisite-free course gets depth 0 when its
// code appears in opts.EntryCourses and depth 1 otherwise, and any other
// course gets one more than the deepest of its prerequisites. Courses in the
// same depth group are placed evenly around a circle of radius
// BaseRadius + depth*RingSpacing, starting at the top (-π/2), so rings grow
// outward as requirements deepen. The layout is centered on the origin.
//
// On malformed cyclic data a course revisited mid-computation is treated as
// depth 0 rather than recursing again. That keeps the descent terminating;
// it is a degenerate-data safeguard, not a meaningful cycle resolution.
func Radial(idx *catalog.Index, opts Options) Layout {
	courses := idx.Courses()
	r := &radialDepths{
		idx:   idx,
		entry: opts.entrySet(),
		memo:  make(map[string]int, len(courses)),
	}

	maxDepth := 0
	for _, c := range courses {
		if d := r.depth(c.ID, make(map[string]bool)); d > maxDepth {
			maxDepth = d
		}
	}

	// Group by depth in catalog order.
	rings := make(map[int][]string)
	for _, c := range courses {
		d := r.memo[c.ID]
		rings[d] = append(rings[d], c.ID)
	}

	maxRadius := 0.0
	nodes := make([]Node, 0, len(courses))
	for d := 0; d <= maxDepth; d++ {
		ids := rings[d]
		if len(ids) == 0 {
			continue
		}
		radius := opts.BaseRadius + float64(d)*opts.RingSpacing
		if radius > maxRadius {
			maxRadius = radius
		}
		step := 2 * math.Pi / float64(len(ids))
		for i, id := range ids {
			c, _ := idx.Course(id)
			angle := -math.Pi/2 + float64(i)*step
			nodes = append(nodes, Node{
				ID:    id,
				Code:  c.Code,
				X:     radius * math.Cos(angle),
				Y:     radius * math.Sin(angle),
				Depth: d,
			})
		}
	}

	return Layout{
		VizType: VizTypeRadial,
		Width:   2 * maxRadius,
		Height:  2 * maxRadius,
		Nodes:   nodes,
		Edges:   prereqEdges(idx),
		Levels:  rings,
	}
}

// radialDepths memoizes the recursive depth computation.
type radialDepths struct {
	idx   *catalog.Index
	entry map[string]bool
	memo  map[string]int
}

// depth computes the prerequisite depth of a course. The visiting set is
// threaded explicitly through the recursion; a course found in it is part of
// a cycle and resolves to 0.
func (r *radialDepths) depth(id string, visiting map[string]bool) int {
	if d, ok := r.memo[id]; ok {
		return d
	}
	if visiting[id] {
		return 0
	}
	visiting[id] = true

	var d int
	prereqs := r.idx.Prerequisites(id)
	if len(prereqs) == 0 {
		d = 1
		if c, ok := r.idx.Course(id); ok && r.entry[catalog.NormalizeCode(c.Code)] {
			d = 0
		}
	} else {
		for _, prereqID := range prereqs {
			if pd := r.depth(prereqID, visiting) + 1; pd > d {
				d = pd
			}
		}
	}

	delete(visiting, id)
	r.memo[id] = d
	return d
}
