package cli

import (
	"testing"

	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/progress"
)

func TestGroupByState(t *testing.T) {
	idx, err := catalog.BuildIndex([]catalog.Course{
		{ID: "b", Code: "CSE 214", Title: "Data Structures", Active: true},
		{ID: "a", Code: "CSE 114", Title: "Intro Programming", Active: true},
		{ID: "c", Code: "CSE 320", Title: "Systems", Active: true},
	})
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}
	states := map[string]progress.State{
		"a": progress.Available,
		"b": progress.Available,
		"c": progress.Locked,
	}

	group := groupByState(idx, states, progress.Available)
	if len(group) != 2 {
		t.Fatalf("len(group) = %d, want 2", len(group))
	}
	if group[0].ID != "a" || group[1].ID != "b" {
		t.Errorf("group order = %s, %s, want a, b", group[0].ID, group[1].ID)
	}

	if got := groupByState(idx, states, progress.FutureAvailable); got != nil {
		t.Errorf("empty state group = %v, want nil", got)
	}
}

func TestGroupByStateSharedCode(t *testing.T) {
	// Cross-listed catalogs can carry two records with the same display
	// code; both must keep their own entry.
	idx, err := catalog.BuildIndex([]catalog.Course{
		{ID: "ise305", Code: "CSE 305", Title: "Databases (ISE section)", Active: true},
		{ID: "cse305", Code: "CSE 305", Title: "Databases", Active: true},
	})
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}
	states := map[string]progress.State{
		"cse305": progress.Available,
		"ise305": progress.Available,
	}

	group := groupByState(idx, states, progress.Available)
	if len(group) != 2 {
		t.Fatalf("len(group) = %d, want both cross-listed courses", len(group))
	}
	if group[0].ID != "cse305" || group[1].ID != "ise305" {
		t.Errorf("group order = %s, %s, want cse305, ise305", group[0].ID, group[1].ID)
	}
}
