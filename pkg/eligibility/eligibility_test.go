package eligibility

import (
	"testing"

	"github.com/coursepath/coursepath/pkg/catalog"
)

func TestEvaluate_True(t *testing.T) {
	if !Evaluate(catalog.True(), nil, nil, 0, Prereq) {
		t.Error("TRUE should always be satisfied")
	}
}

func TestEvaluate_NilNode(t *testing.T) {
	if !Evaluate(nil, nil, nil, 0, Prereq) {
		t.Error("nil tree should be vacuously satisfied")
	}
}

func TestEvaluate_CourseLeaf(t *testing.T) {
	node := catalog.CourseReq("x")

	if Evaluate(node, nil, nil, 0, Prereq) {
		t.Error("COURSE leaf should be false with empty record")
	}
	if !Evaluate(node, NewSet("x"), nil, 0, Prereq) {
		t.Error("COURSE leaf should be true when completed")
	}
}

func TestEvaluate_PrereqCoreqAsymmetry(t *testing.T) {
	// completed = {}, takingNow = {x}: concurrent enrollment satisfies a
	// corequisite but never a prerequisite.
	node := catalog.CourseReq("x")
	taking := NewSet("x")

	if Evaluate(node, nil, taking, 0, Prereq) {
		t.Error("takingNow must not satisfy a COURSE leaf in Prereq mode")
	}
	if !Evaluate(node, nil, taking, 0, Coreq) {
		t.Error("takingNow must satisfy a COURSE leaf in Coreq mode")
	}
}

func TestEvaluate_Standing(t *testing.T) {
	node := catalog.StandingAtLeast(catalog.Junior)

	tests := []struct {
		standing catalog.Standing
		want     bool
	}{
		{catalog.Freshman, false},
		{catalog.Sophomore, false},
		{catalog.Junior, true},
		{catalog.Senior, true},
		{catalog.Graduate, true},
	}

	for _, tt := range tests {
		if got := Evaluate(node, nil, nil, tt.standing, Prereq); got != tt.want {
			t.Errorf("standing %v: got %v, want %v", tt.standing, got, tt.want)
		}
	}
}

func TestEvaluate_AndOr(t *testing.T) {
	and := catalog.And(catalog.CourseReq("a"), catalog.CourseReq("b"))
	or := catalog.Or(catalog.CourseReq("a"), catalog.CourseReq("b"))

	onlyA := NewSet("a")
	both := NewSet("a", "b")

	if Evaluate(and, onlyA, nil, 0, Prereq) {
		t.Error("AND should fail with one of two satisfied")
	}
	if !Evaluate(and, both, nil, 0, Prereq) {
		t.Error("AND should pass with both satisfied")
	}
	if !Evaluate(or, onlyA, nil, 0, Prereq) {
		t.Error("OR should pass with one satisfied")
	}
	if Evaluate(or, nil, nil, 0, Prereq) {
		t.Error("OR should fail with none satisfied")
	}
}

func TestEvaluate_EmptyChildLists(t *testing.T) {
	// Degenerate trees: AND([]) is vacuously true, OR([]) vacuously false.
	if !Evaluate(catalog.And(), nil, nil, 0, Prereq) {
		t.Error("AND over empty list should be true")
	}
	if Evaluate(catalog.Or(), nil, nil, 0, Prereq) {
		t.Error("OR over empty list should be false")
	}
}

func TestEvaluate_NestedTree(t *testing.T) {
	// (a AND (b OR standing>=Senior))
	tree := catalog.And(
		catalog.CourseReq("a"),
		catalog.Or(catalog.CourseReq("b"), catalog.StandingAtLeast(catalog.Senior)),
	)

	if Evaluate(tree, NewSet("a"), nil, catalog.Freshman, Prereq) {
		t.Error("inner OR unsatisfied: should fail")
	}
	if !Evaluate(tree, NewSet("a"), nil, catalog.Senior, Prereq) {
		t.Error("standing branch should satisfy inner OR")
	}
	if !Evaluate(tree, NewSet("a", "b"), nil, catalog.Freshman, Prereq) {
		t.Error("course branch should satisfy inner OR")
	}
}

func TestCanTake_InactiveGate(t *testing.T) {
	course := &catalog.Course{ID: "x", Active: false}

	if CanTake(course, NewSet("anything"), nil, catalog.Graduate) {
		t.Error("inactive course must never be takeable")
	}
}

func TestCanTake_NilTrees(t *testing.T) {
	course := &catalog.Course{ID: "x", Active: true}

	if !CanTake(course, nil, nil, 0) {
		t.Error("course with no requirements should be takeable")
	}
}

func TestCanTake_PrereqIgnoresTakingNow(t *testing.T) {
	course := &catalog.Course{
		ID:            "b",
		Active:        true,
		Prerequisites: catalog.CourseReq("a"),
	}

	if CanTake(course, nil, NewSet("a"), 0) {
		t.Error("concurrent enrollment must not satisfy a prerequisite")
	}
	if !CanTake(course, NewSet("a"), nil, 0) {
		t.Error("completed prerequisite should allow enrollment")
	}
}

func TestCanTake_CoreqSatisfiedByTakingNow(t *testing.T) {
	course := &catalog.Course{
		ID:           "b",
		Active:       true,
		Corequisites: catalog.CourseReq("a"),
	}

	if !CanTake(course, nil, NewSet("a"), 0) {
		t.Error("concurrent enrollment should satisfy a corequisite")
	}
	if !CanTake(course, NewSet("a"), nil, 0) {
		t.Error("completed coursework should satisfy a corequisite")
	}
	if CanTake(course, nil, nil, 0) {
		t.Error("unmet corequisite should block enrollment")
	}
}

func TestCanTake_BothTreesMustHold(t *testing.T) {
	course := &catalog.Course{
		ID:            "c",
		Active:        true,
		Prerequisites: catalog.CourseReq("a"),
		Corequisites:  catalog.CourseReq("b"),
	}

	if CanTake(course, NewSet("a"), nil, 0) {
		t.Error("satisfied prereq with unmet coreq should block")
	}
	if !CanTake(course, NewSet("a"), NewSet("b"), 0) {
		t.Error("satisfied prereq and coreq should allow")
	}
}

func TestSetUnion(t *testing.T) {
	s := NewSet("a")
	u := s.Union("b", "c")

	if len(s) != 1 {
		t.Error("Union must not modify the receiver")
	}
	for _, id := range []string{"a", "b", "c"} {
		if !u[id] {
			t.Errorf("union missing %q", id)
		}
	}
}
