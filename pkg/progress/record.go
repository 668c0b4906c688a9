// Package progress tracks a student's academic record and derives the
// display state of every course from it.
//
// The engine treats a [Record] as a read-only snapshot: classification is a
// pure function recomputed wholesale from the record and the catalog index on
// every change. Records are mutated only by whoever owns persistence, either
// the [Store] implementations here or an external caller pushing new
// snapshots in.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/eligibility"
)

// Record is a student's academic record.
//
// CompletedCourses and TakingNow hold catalog course IDs; TakingNow is the
// current term and matters only for corequisite checks. ExternalCourses
// holds course *codes* from outside the catalog (transfer or
// other-department credit); they are resolved to catalog IDs through the
// index at classification time.
type Record struct {
	ID               string           `json:"id" bson:"_id"`
	CompletedCourses []string         `json:"completedCourses" bson:"completed_courses"`
	TakingNow        []string         `json:"takingNow,omitempty" bson:"taking_now,omitempty"`
	Standing         catalog.Standing `json:"standing" bson:"standing"`
	ExternalCourses  []string         `json:"externalCourses,omitempty" bson:"external_courses,omitempty"`
	UpdatedAt        time.Time        `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// NewRecord creates an empty freshman record with a generated ID.
func NewRecord() *Record {
	return &Record{
		ID:        uuid.NewString(),
		Standing:  catalog.Freshman,
		UpdatedAt: time.Now().UTC(),
	}
}

// CompletedSet returns the completed course IDs as a set.
func (r *Record) CompletedSet() eligibility.Set {
	return eligibility.NewSet(r.CompletedCourses...)
}

// TakingSet returns the current-term course IDs as a set.
func (r *Record) TakingSet() eligibility.Set {
	return eligibility.NewSet(r.TakingNow...)
}

// HasCompleted reports whether the course ID is in the completed set.
func (r *Record) HasCompleted(courseID string) bool {
	for _, id := range r.CompletedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// ReadRecordFile reads a student record from a JSON file.
func ReadRecordFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &r, nil
}

// WriteRecordFile writes a student record to a JSON file.
func WriteRecordFile(r *Record, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
