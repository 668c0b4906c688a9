package render

import (
	"strings"
	"testing"

	"github.com/coursepath/coursepath/pkg/layout"
	"github.com/coursepath/coursepath/pkg/progress"
)

func testLayout() layout.Layout {
	return layout.Layout{
		VizType: layout.VizTypeGrid,
		Nodes: []layout.Node{
			{ID: "a", Code: "CSE 114", X: 0, Y: 0, Depth: 0},
			{ID: "b", Code: "CSE 214", X: 0, Y: 120, Depth: 1},
		},
		Edges: []layout.Edge{
			{Source: "a", Target: "b"},
		},
	}
}

func TestToDOT_Structure(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	if !strings.HasPrefix(dot, "digraph courses {") {
		t.Errorf("DOT should open a digraph, got: %s", dot[:30])
	}
	for _, want := range []string{`"a" [`, `"b" [`, `"a" -> "b";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_PinnedPositions(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	// Layout Y grows downward, graphviz points grow upward.
	if !strings.Contains(dot, `pos="0.00,0.00!"`) {
		t.Errorf("DOT missing pinned position for a:\n%s", dot)
	}
	if !strings.Contains(dot, `pos="0.00,-120.00!"`) {
		t.Errorf("DOT missing negated position for b:\n%s", dot)
	}
}

func TestToDOT_Labels(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})
	if !strings.Contains(dot, `label="CSE 114"`) {
		t.Errorf("node label should be the course code:\n%s", dot)
	}

	detailed := ToDOT(testLayout(), Options{
		Detailed: true,
		Titles:   map[string]string{"a": "Introduction to Object-Oriented Programming"},
	})
	if !strings.Contains(detailed, "Introduction to Object-Oriented Programming") {
		t.Errorf("detailed label should include the title:\n%s", detailed)
	}
}

func TestToDOT_StateColors(t *testing.T) {
	states := map[string]progress.State{
		"a": progress.Completed,
		"b": progress.Available,
	}
	dot := ToDOT(testLayout(), Options{States: states})

	if !strings.Contains(dot, colorCompleted) {
		t.Errorf("completed color missing:\n%s", dot)
	}
	if !strings.Contains(dot, colorAvailable) {
		t.Errorf("available color missing:\n%s", dot)
	}

	// Without states every node is neutral.
	plain := ToDOT(testLayout(), Options{})
	if !strings.Contains(plain, colorNeutral) || strings.Contains(plain, colorCompleted) {
		t.Errorf("stateless render should be neutral:\n%s", plain)
	}
}

func TestToDOT_MissingStateIsLocked(t *testing.T) {
	// A node absent from a non-nil state map renders locked, not neutral.
	dot := ToDOT(testLayout(), Options{States: map[string]progress.State{}})
	if !strings.Contains(dot, colorLocked) {
		t.Errorf("unknown state should render locked:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="8pt" height="6pt" viewBox="10.00 20.00 300.00 200.00">body</svg>`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 300.00 200.00"`) {
		t.Errorf("viewBox not normalized: %s", got)
	}
	if !strings.Contains(got, `width="300" height="200"`) {
		t.Errorf("dimensions not set: %s", got)
	}

	// SVG without a viewBox passes through untouched.
	plain := []byte(`<svg>body</svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
