package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Standing is an ordinal class level used as a requirement threshold.
// Higher values outrank lower ones: Freshman < Sophomore < Junior <
// Senior < Graduate.
type Standing int

// Class standings in ascending rank order.
// The zero value means "no standing" and satisfies no standing requirement.
const (
	Freshman Standing = iota + 1
	Sophomore
	Junior
	Senior
	Graduate
)

// standingNames maps each standing to its canonical name.
var standingNames = map[Standing]string{
	Freshman:  "FRESHMAN",
	Sophomore: "SOPHOMORE",
	Junior:    "JUNIOR",
	Senior:    "SENIOR",
	Graduate:  "GRADUATE",
}

// String returns the canonical uppercase name of the standing.
func (s Standing) String() string {
	if name, ok := standingNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Standing(%d)", int(s))
}

// MarshalJSON encodes the standing as its canonical name.
func (s Standing) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a standing from its name (case-insensitive) or its
// ordinal value.
func (s *Standing) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseStanding(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var ord int
	if err := json.Unmarshal(data, &ord); err != nil {
		return fmt.Errorf("standing must be a name or ordinal: %s", data)
	}
	if ord < int(Freshman) || ord > int(Graduate) {
		return fmt.Errorf("standing ordinal out of range: %d", ord)
	}
	*s = Standing(ord)
	return nil
}

// ParseStanding converts a standing name to its ordinal value.
// Matching is case-insensitive. Returns an error for unknown names.
func ParseStanding(name string) (Standing, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range standingNames {
		if n == upper {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown standing: %q", name)
}

// Course is an immutable catalog record. Courses are loaded once and owned by
// the catalog index for the lifetime of a session; the engine never mutates
// them.
//
// Prerequisites and Corequisites are optional requirement trees. A nil tree
// means the course has no requirement of that kind.
type Course struct {
	ID            string   `json:"id" bson:"id"`
	Code          string   `json:"code" bson:"code"` // Human-readable, e.g. "CSE 214"
	DeptCode      string   `json:"deptCode,omitempty" bson:"dept_code,omitempty"`
	Number        string   `json:"number,omitempty" bson:"number,omitempty"`
	Title         string   `json:"title" bson:"title"`
	Aliases       []string `json:"aliases,omitempty" bson:"aliases,omitempty"` // cross-listed codes, e.g. "ISE 305"
	Description   string   `json:"description,omitempty" bson:"description,omitempty"`
	Credits       int      `json:"credits,omitempty" bson:"credits,omitempty"`
	Active        bool     `json:"active" bson:"active"`
	Prerequisites *ReqNode `json:"prerequisites,omitempty" bson:"prerequisites,omitempty"`
	Corequisites  *ReqNode `json:"corequisites,omitempty" bson:"corequisites,omitempty"`
	AdvisorNotes  string   `json:"advisorNotes,omitempty" bson:"advisor_notes,omitempty"`
}

// NormalizeCode canonicalizes a course code by removing internal spaces and
// uppercasing, so "cse 214" and "CSE214" compare equal. Codes are indexed in
// normalized form; the display form on the Course record is left untouched.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(code, " ", ""))
}
