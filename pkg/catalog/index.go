package catalog

import (
	"github.com/coursepath/coursepath/pkg/errors"
)

// Index holds the derived lookup structures for a catalog: ID and code maps
// plus the prerequisite adjacency list. It is built once per catalog snapshot
// with [BuildIndex] and treated as immutable afterwards; rebuild it when the
// course list changes.
//
// Adjacency edges run from prerequisite to dependent: if CSE 214 lists
// CSE 114 as a prerequisite, Dependents("uuid-cse114") contains
// "uuid-cse214". Only leaves that resolve to real catalog entries produce
// edges; dangling references are dropped (see package doc on partial
// catalogs).
type Index struct {
	courses    []Course
	byID       map[string]*Course
	byCode     map[string]*Course
	dependents map[string][]string // prereqID -> dependent course IDs, catalog order
	prereqs    map[string][]string // courseID -> resolved prereq IDs, leaf order, deduped
}

// BuildIndex derives an Index from a flat course list.
//
// The course list must have unique IDs; duplicates indicate a malformed
// catalog and return an INVALID_CATALOG error. An empty list yields an empty
// index. Input order is preserved and used as the deterministic tie-break by
// the layout engine.
func BuildIndex(courses []Course) (*Index, error) {
	idx := &Index{
		courses:    courses,
		byID:       make(map[string]*Course, len(courses)),
		byCode:     make(map[string]*Course, len(courses)),
		dependents: make(map[string][]string),
		prereqs:    make(map[string][]string),
	}

	for i := range idx.courses {
		c := &idx.courses[i]
		if err := errors.ValidateCourseID(c.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "course %d", i)
		}
		if _, exists := idx.byID[c.ID]; exists {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate course id: %s", c.ID)
		}
		idx.byID[c.ID] = c
		if c.Code != "" {
			idx.byCode[NormalizeCode(c.Code)] = c
		}
	}

	// Cross-listed codes ("Also offered as") resolve to the same course.
	// Registered after all primary codes so a primary code always wins over
	// another course's alias.
	for i := range idx.courses {
		c := &idx.courses[i]
		for _, alias := range c.Aliases {
			key := NormalizeCode(alias)
			if _, taken := idx.byCode[key]; !taken {
				idx.byCode[key] = c
			}
		}
	}

	// Scan requirement trees for COURSE leaves and record prereq -> dependent
	// edges. Iterating courses in catalog order keeps adjacency lists (and
	// therefore layouts) deterministic across rebuilds.
	for i := range idx.courses {
		c := &idx.courses[i]
		seen := make(map[string]bool)
		for _, prereqID := range c.Prerequisites.CourseLeaves() {
			if seen[prereqID] {
				continue
			}
			seen[prereqID] = true
			if _, ok := idx.byID[prereqID]; !ok {
				continue // dangling reference, no edge
			}
			idx.prereqs[c.ID] = append(idx.prereqs[c.ID], prereqID)
			idx.dependents[prereqID] = append(idx.dependents[prereqID], c.ID)
		}
	}

	return idx, nil
}

// Course returns the course with the given ID.
func (idx *Index) Course(id string) (*Course, bool) {
	c, ok := idx.byID[id]
	return c, ok
}

// CourseByCode returns the course with the given human-readable code.
// The code is normalized first, so "CSE 214" and "cse214" both match.
func (idx *Index) CourseByCode(code string) (*Course, bool) {
	c, ok := idx.byCode[NormalizeCode(code)]
	return c, ok
}

// Courses returns all courses in catalog order.
// The returned slice is the index's backing storage; treat it as read-only.
func (idx *Index) Courses() []Course { return idx.courses }

// Len returns the number of courses in the catalog.
func (idx *Index) Len() int { return len(idx.courses) }

// Dependents returns the IDs of courses that list the given course as a
// prerequisite, in catalog order. Returns nil for unknown IDs or courses
// that unlock nothing.
func (idx *Index) Dependents(id string) []string { return idx.dependents[id] }

// Prerequisites returns the resolved prerequisite course IDs of the given
// course: COURSE leaves of its requirement tree that exist in the catalog,
// deduplicated, in leaf order. Returns nil if the course has none.
func (idx *Index) Prerequisites(id string) []string { return idx.prereqs[id] }

// InDegree returns the number of resolved prerequisite edges into the course.
func (idx *Index) InDegree(id string) int { return len(idx.prereqs[id]) }

// OutDegree returns the number of courses this course unlocks.
func (idx *Index) OutDegree(id string) int { return len(idx.dependents[id]) }

// IsIsolated reports whether the course participates in no prerequisite
// edges at all: nothing unlocks it and it unlocks nothing. The grid layout
// places isolated courses ("free electives") in their own top row.
func (idx *Index) IsIsolated(id string) bool {
	return len(idx.prereqs[id]) == 0 && len(idx.dependents[id]) == 0
}

// ResolveExternal maps external course codes (transfer or other-department
// credit, tracked by code rather than ID) onto catalog course IDs. Codes with
// no catalog equivalent are dropped; they cannot satisfy any COURSE leaf.
func (idx *Index) ResolveExternal(codes []string) []string {
	var ids []string
	for _, code := range codes {
		if c, ok := idx.byCode[NormalizeCode(code)]; ok {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
