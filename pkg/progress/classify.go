package progress

import (
	"encoding/json"
	"fmt"

	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/eligibility"
)

// State is the availability of a single course for a given record.
type State int

const (
	// Locked means requirements are not met.
	Locked State = iota
	// Available means the course can be taken now.
	Available
	// FutureAvailable means the course unlocks after one more term of
	// currently available courses. Only produced in future mode.
	FutureAvailable
	// Completed means the course is in the record's completed set.
	Completed
)

var stateNames = map[State]string{
	Locked:          "LOCKED",
	Available:       "AVAILABLE",
	FutureAvailable: "FUTURE_AVAILABLE",
	Completed:       "COMPLETED",
}

// String returns the canonical uppercase name of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "LOCKED"
}

// MarshalJSON encodes the state as its canonical name.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a state from its canonical name.
func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for state, n := range stateNames {
		if n == name {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown state: %q", name)
}

// Classifier computes course availability states for one student record
// against one catalog index. The external course codes on the record are
// resolved to catalog IDs once at construction.
type Classifier struct {
	idx       *catalog.Index
	rec       *Record
	completed eligibility.Set
	taking    eligibility.Set
	credit    eligibility.Set // completed plus resolved external courses
}

// NewClassifier builds a classifier for the record. External course codes
// that match no catalog course are ignored.
func NewClassifier(idx *catalog.Index, rec *Record) *Classifier {
	completed := rec.CompletedSet()
	credit := completed.Union(idx.ResolveExternal(rec.ExternalCourses)...)
	return &Classifier{
		idx:       idx,
		rec:       rec,
		completed: completed,
		taking:    rec.TakingSet(),
		credit:    credit,
	}
}

// Classify returns the state of a single course.
//
// A course is Completed only when its own ID is in the record's completed
// set; external credit counts toward requirements of other courses but never
// marks a catalog course itself completed. With futureMode set, a locked
// course whose requirements would be met after taking every currently
// available course is reported FutureAvailable instead of Locked.
func (c *Classifier) Classify(course *catalog.Course, futureMode bool) State {
	if course == nil {
		return Locked
	}
	if c.completed[course.ID] {
		return Completed
	}
	if eligibility.CanTake(course, c.credit, c.taking, c.rec.Standing) {
		return Available
	}
	if futureMode && c.futureAvailable(course) {
		return FutureAvailable
	}
	return Locked
}

// futureAvailable reports whether the course unlocks after one hypothetical
// term in which every currently available course is completed. The lookahead
// is a single step: courses that need two or more terms stay Locked.
func (c *Classifier) futureAvailable(course *catalog.Course) bool {
	next := c.credit.Union()
	courses := c.idx.Courses()
	for i := range courses {
		other := &courses[i]
		if other.ID == course.ID || c.completed[other.ID] {
			continue
		}
		if eligibility.CanTake(other, c.credit, c.taking, c.rec.Standing) {
			next[other.ID] = true
		}
	}
	return eligibility.CanTake(course, next, c.taking, c.rec.Standing)
}

// ClassifyAll returns the state of every course in the catalog, keyed by
// course ID.
func (c *Classifier) ClassifyAll(futureMode bool) map[string]State {
	states := make(map[string]State, c.idx.Len())
	courses := c.idx.Courses()
	for i := range courses {
		states[courses[i].ID] = c.Classify(&courses[i], futureMode)
	}
	return states
}

// Classify is a convenience wrapper for one-off checks.
func Classify(idx *catalog.Index, rec *Record, course *catalog.Course, futureMode bool) State {
	return NewClassifier(idx, rec).Classify(course, futureMode)
}

// ClassifyAll computes the state of every catalog course for the record.
func ClassifyAll(idx *catalog.Index, rec *Record, futureMode bool) map[string]State {
	return NewClassifier(idx, rec).ClassifyAll(futureMode)
}
