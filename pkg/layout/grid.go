package layout

import (
	"github.com/coursepath/coursepath/pkg/catalog"
)

// Grid computes a leveled grid layout for the catalog.
//
// Levels are assigned by longest-path topological leveling (Kahn's
// algorithm): a course's level is one more than the maximum level of any of
// its prerequisites, so every edge points from a strictly lower level to a
// strictly higher one. Isolated courses (no prerequisites and unlocking
// nothing) form their own top row above the dependency tree; all connected
// courses are shifted down one level to make room.
//
// Within a level, courses are placed left to right at fixed spacing in
// catalog order, and each row is centered against the widest row. The result
// is deterministic for a given catalog ordering.
//
// If the catalog contains a prerequisite cycle, the affected courses never
// reach in-degree zero. They are parked in a dedicated row below the deepest
// resolved level and reported in Layout.Unresolved instead of being dropped
// or looping the algorithm.
func Grid(idx *catalog.Index, opts Options) Layout {
	courses := idx.Courses()

	// Kahn leveling with longest-path tie-break.
	inDegree := make(map[string]int, len(courses))
	level := make(map[string]int, len(courses))
	queue := make([]string, 0, len(courses))
	for _, c := range courses {
		deg := idx.InDegree(c.ID)
		inDegree[c.ID] = deg
		if deg == 0 {
			queue = append(queue, c.ID)
		}
	}

	processed := make(map[string]bool, len(courses))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		processed[curr] = true

		for _, dep := range idx.Dependents(curr) {
			if lv := level[curr] + 1; lv > level[dep] {
				level[dep] = lv
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	// Partition: isolated courses keep level 0 as their own top row,
	// connected courses shift down one, and cycle residue goes to a
	// dedicated bottom row.
	maxLevel := 0
	var unresolved []string
	for _, c := range courses {
		switch {
		case idx.IsIsolated(c.ID):
			level[c.ID] = 0
		case !processed[c.ID]:
			unresolved = append(unresolved, c.ID)
		default:
			level[c.ID]++
			if level[c.ID] > maxLevel {
				maxLevel = level[c.ID]
			}
		}
	}
	if len(unresolved) > 0 {
		maxLevel++
		for _, id := range unresolved {
			level[id] = maxLevel
		}
	}

	// Group by level in catalog order.
	levels := make(map[int][]string)
	for _, c := range courses {
		lv := level[c.ID]
		levels[lv] = append(levels[lv], c.ID)
	}

	// Rows centered against the widest row.
	maxRowWidth := 0.0
	for _, ids := range levels {
		if w := rowWidth(len(ids), opts.HSpacing); w > maxRowWidth {
			maxRowWidth = w
		}
	}

	nodes := make([]Node, 0, len(courses))
	for lv := 0; lv <= maxLevel; lv++ {
		ids := levels[lv]
		offset := (maxRowWidth - rowWidth(len(ids), opts.HSpacing)) / 2
		for i, id := range ids {
			c, _ := idx.Course(id)
			nodes = append(nodes, Node{
				ID:    id,
				Code:  c.Code,
				X:     offset + float64(i)*opts.HSpacing,
				Y:     float64(lv) * opts.VSpacing,
				Depth: lv,
			})
		}
	}

	return Layout{
		VizType:    VizTypeGrid,
		Width:      maxRowWidth,
		Height:     float64(maxLevel) * opts.VSpacing,
		Nodes:      nodes,
		Edges:      prereqEdges(idx),
		Levels:     levels,
		Unresolved: unresolved,
	}
}

// rowWidth is the horizontal extent of n nodes at the given spacing.
func rowWidth(n int, spacing float64) float64 {
	if n <= 1 {
		return 0
	}
	return float64(n-1) * spacing
}
