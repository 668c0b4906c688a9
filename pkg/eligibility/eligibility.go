// Package eligibility decides whether a student may take a course.
//
// The package is a pure function library over immutable inputs: a requirement
// tree, sets of completed and in-progress course IDs, and a class standing.
// Same inputs always give the same output, so results are safe to memoize per
// student-record snapshot.
//
// The one subtlety is the prerequisite/corequisite asymmetry: a corequisite
// may be satisfied by concurrent enrollment, a true prerequisite may not.
// [Evaluate] takes an explicit [Mode] so the COURSE-leaf rule is chosen by the
// caller, and [CanTake] applies the correct mode to each of a course's trees.
package eligibility

import "github.com/coursepath/coursepath/pkg/catalog"

// Mode selects how COURSE leaves are satisfied.
type Mode int

const (
	// Prereq mode: a COURSE leaf is satisfied only by completed coursework.
	Prereq Mode = iota
	// Coreq mode: a COURSE leaf is also satisfied by concurrent enrollment.
	Coreq
)

// Set is a set of course IDs.
type Set map[string]bool

// NewSet builds a Set from the given IDs.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Union returns a new set containing the members of s and the given IDs.
// The receiver is not modified.
func (s Set) Union(ids ...string) Set {
	out := make(Set, len(s)+len(ids))
	for id := range s {
		out[id] = true
	}
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// Evaluate reports whether a requirement tree is satisfied by the given
// academic record. takingNow is consulted only for COURSE leaves in Coreq
// mode. A nil node is vacuously satisfied.
//
// Evaluate is total over well-formed trees: AND over an empty child list is
// true, OR over an empty list is false (standard quantifier semantics), and a
// COURSE leaf whose ID is absent from both sets is simply false, which is how
// dangling references in partial catalogs degrade to "permanently
// unsatisfied". Recursion depth is bounded by the tree's own depth; trees are
// static catalog data and shallow in practice.
func Evaluate(node *catalog.ReqNode, completed, takingNow Set, standing catalog.Standing, mode Mode) bool {
	if node == nil {
		return true
	}

	switch node.Kind {
	case catalog.ReqTrue:
		return true

	case catalog.ReqCourse:
		if completed[node.CourseID] {
			return true
		}
		return mode == Coreq && takingNow[node.CourseID]

	case catalog.ReqStanding:
		return standing >= node.MinStanding

	case catalog.ReqAnd:
		for _, child := range node.Nodes {
			if !Evaluate(child, completed, takingNow, standing, mode) {
				return false
			}
		}
		return true

	case catalog.ReqOr:
		for _, child := range node.Nodes {
			if Evaluate(child, completed, takingNow, standing, mode) {
				return true
			}
		}
		return false
	}

	// Unreachable for well-formed trees; fail closed on corrupt kinds.
	return false
}

// CanTake reports whether a student may enroll in the course.
//
// Inactive courses are never takeable regardless of requirements. Otherwise
// the prerequisite tree is evaluated in Prereq mode, where takingNow is
// deliberately ignored, and the corequisite tree in Coreq mode. Nil trees are
// vacuously satisfied. Both must hold.
func CanTake(course *catalog.Course, completed, takingNow Set, standing catalog.Standing) bool {
	if course == nil || !course.Active {
		return false
	}

	if !Evaluate(course.Prerequisites, completed, nil, standing, Prereq) {
		return false
	}
	return Evaluate(course.Corequisites, completed, takingNow, standing, Coreq)
}
