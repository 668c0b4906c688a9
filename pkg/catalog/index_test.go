package catalog

import (
	"reflect"
	"testing"

	"github.com/coursepath/coursepath/pkg/errors"
)

// testCatalog builds the small chain used across index tests:
// 114 has no prerequisite, 214 requires 114, 310 requires 114 AND 214,
// and "wrt102" is isolated.
func testCatalog() []Course {
	return []Course{
		{ID: "uuid-cse114", Code: "CSE 114", Title: "Intro to Programming", Active: true},
		{ID: "uuid-cse214", Code: "CSE 214", Title: "Data Structures", Active: true,
			Prerequisites: CourseReq("uuid-cse114")},
		{ID: "uuid-cse310", Code: "CSE 310", Title: "Networks", Active: true,
			Prerequisites: And(CourseReq("uuid-cse114"), CourseReq("uuid-cse214"))},
		{ID: "uuid-wrt102", Code: "WRT 102", Title: "Writing", Active: true},
	}
}

func TestBuildIndex(t *testing.T) {
	idx, err := BuildIndex(testCatalog())
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	if idx.Len() != 4 {
		t.Errorf("Len() = %d, want 4", idx.Len())
	}

	if got := idx.Dependents("uuid-cse114"); !reflect.DeepEqual(got, []string{"uuid-cse214", "uuid-cse310"}) {
		t.Errorf("Dependents(cse114) = %v", got)
	}
	if got := idx.Prerequisites("uuid-cse310"); !reflect.DeepEqual(got, []string{"uuid-cse114", "uuid-cse214"}) {
		t.Errorf("Prerequisites(cse310) = %v", got)
	}
	if idx.InDegree("uuid-cse310") != 2 {
		t.Errorf("InDegree(cse310) = %d, want 2", idx.InDegree("uuid-cse310"))
	}
	if idx.OutDegree("uuid-cse114") != 2 {
		t.Errorf("OutDegree(cse114) = %d, want 2", idx.OutDegree("uuid-cse114"))
	}
}

func TestBuildIndex_EmptyCatalog(t *testing.T) {
	idx, err := BuildIndex(nil)
	if err != nil {
		t.Fatalf("BuildIndex(nil) error: %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestBuildIndex_DuplicateID(t *testing.T) {
	courses := []Course{
		{ID: "uuid-cse114", Code: "CSE 114", Active: true},
		{ID: "uuid-cse114", Code: "CSE 114", Active: true},
	}
	_, err := BuildIndex(courses)
	if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
		t.Errorf("duplicate ID error = %v, want INVALID_CATALOG", err)
	}
}

func TestBuildIndex_DanglingReference(t *testing.T) {
	courses := []Course{
		{ID: "uuid-cse214", Code: "CSE 214", Active: true,
			Prerequisites: CourseReq("uuid-missing")},
	}
	idx, err := BuildIndex(courses)
	if err != nil {
		t.Fatalf("dangling reference should not error: %v", err)
	}
	if got := idx.Prerequisites("uuid-cse214"); got != nil {
		t.Errorf("Prerequisites = %v, want nil (dangling leaf dropped)", got)
	}
	if got := idx.Dependents("uuid-missing"); got != nil {
		t.Errorf("Dependents(missing) = %v, want nil", got)
	}
}

func TestBuildIndex_DuplicateLeavesSingleEdge(t *testing.T) {
	// A tree mentioning the same prerequisite twice (e.g. in both branches of
	// an OR) must produce one adjacency edge, not two.
	courses := []Course{
		{ID: "a", Code: "CSE 114", Active: true},
		{ID: "b", Code: "CSE 214", Active: true,
			Prerequisites: Or(CourseReq("a"), And(CourseReq("a"), StandingAtLeast(Junior)))},
	}
	idx, err := BuildIndex(courses)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}
	if got := idx.Dependents("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Dependents(a) = %v, want [b]", got)
	}
}

func TestCourseByCode(t *testing.T) {
	idx, err := BuildIndex(testCatalog())
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	for _, code := range []string{"CSE 214", "CSE214", "cse 214"} {
		c, ok := idx.CourseByCode(code)
		if !ok || c.ID != "uuid-cse214" {
			t.Errorf("CourseByCode(%q) = %v, %v", code, c, ok)
		}
	}

	if _, ok := idx.CourseByCode("CSE 999"); ok {
		t.Error("CourseByCode should miss for unknown codes")
	}
}

func TestIsIsolated(t *testing.T) {
	idx, err := BuildIndex(testCatalog())
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	if !idx.IsIsolated("uuid-wrt102") {
		t.Error("wrt102 should be isolated")
	}
	if idx.IsIsolated("uuid-cse114") {
		t.Error("cse114 unlocks courses, not isolated")
	}
	if idx.IsIsolated("uuid-cse310") {
		t.Error("cse310 has prerequisites, not isolated")
	}
}

func TestResolveExternal(t *testing.T) {
	idx, err := BuildIndex(testCatalog())
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	got := idx.ResolveExternal([]string{"WRT102", "MAT 131", "cse 114"})
	want := []string{"uuid-wrt102", "uuid-cse114"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveExternal = %v, want %v", got, want)
	}
}

func TestCourseByCode_Alias(t *testing.T) {
	idx, err := BuildIndex([]Course{
		{ID: "a", Code: "CSE 305", Aliases: []string{"ISE 305"}, Active: true},
		{ID: "b", Code: "ISE 300", Active: true},
		{ID: "c", Code: "AMS 310", Aliases: []string{"ISE 300"}, Active: true},
	})
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	if c, ok := idx.CourseByCode("ise 305"); !ok || c.ID != "a" {
		t.Errorf("CourseByCode(alias) = %v, %v, want course a", c, ok)
	}

	// A primary code beats a colliding alias regardless of catalog order.
	if c, ok := idx.CourseByCode("ISE 300"); !ok || c.ID != "b" {
		t.Errorf("CourseByCode(contested code) = %v, %v, want course b", c, ok)
	}

	got := idx.ResolveExternal([]string{"ISE 305"})
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ResolveExternal(alias) = %v, want [a]", got)
	}
}
