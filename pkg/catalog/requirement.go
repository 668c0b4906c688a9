package catalog

import (
	"encoding/json"
	"fmt"
)

// ReqKind discriminates the variants of a requirement tree node.
type ReqKind int

// Requirement node kinds. The set is closed: every consumer switches
// exhaustively over these five values.
const (
	// ReqTrue is always satisfied (no requirement).
	ReqTrue ReqKind = iota
	// ReqCourse is a leaf referencing another course by ID.
	ReqCourse
	// ReqStanding is satisfied when the student's standing meets a minimum.
	ReqStanding
	// ReqAnd is satisfied when every child is satisfied.
	ReqAnd
	// ReqOr is satisfied when at least one child is satisfied.
	ReqOr
)

// String returns the wire name of the kind.
func (k ReqKind) String() string {
	switch k {
	case ReqTrue:
		return "TRUE"
	case ReqCourse:
		return "COURSE"
	case ReqStanding:
		return "STANDING_AT_LEAST"
	case ReqAnd:
		return "AND"
	case ReqOr:
		return "OR"
	}
	return fmt.Sprintf("ReqKind(%d)", int(k))
}

// ReqNode is a node in a requirement expression tree.
//
// The tree is static catalog data: finite, acyclic in structure, and
// hand-authored or scraper-derived. Only the fields relevant to Kind are
// populated; CourseID for COURSE leaves, MinStanding for STANDING_AT_LEAST,
// Nodes for AND/OR. An empty Nodes list on AND is vacuously true and on OR
// vacuously false, matching standard quantifier semantics.
//
// ReqNode values are never mutated after construction.
type ReqNode struct {
	Kind        ReqKind
	CourseID    string
	MinStanding Standing
	Nodes       []*ReqNode
}

// True returns the always-satisfied requirement.
func True() *ReqNode { return &ReqNode{Kind: ReqTrue} }

// CourseReq returns a leaf requirement on the course with the given ID.
func CourseReq(courseID string) *ReqNode {
	return &ReqNode{Kind: ReqCourse, CourseID: courseID}
}

// StandingAtLeast returns a requirement on minimum class standing.
func StandingAtLeast(min Standing) *ReqNode {
	return &ReqNode{Kind: ReqStanding, MinStanding: min}
}

// And returns a conjunction of the given requirements.
func And(nodes ...*ReqNode) *ReqNode {
	return &ReqNode{Kind: ReqAnd, Nodes: nodes}
}

// Or returns a disjunction of the given requirements.
func Or(nodes ...*ReqNode) *ReqNode {
	return &ReqNode{Kind: ReqOr, Nodes: nodes}
}

// CourseLeaves returns the IDs of every COURSE leaf in the tree, in
// depth-first order. Duplicates are preserved; callers that need a set
// should dedupe. Returns nil for a nil node.
func (n *ReqNode) CourseLeaves() []string {
	if n == nil {
		return nil
	}
	var ids []string
	n.walkLeaves(&ids)
	return ids
}

func (n *ReqNode) walkLeaves(ids *[]string) {
	switch n.Kind {
	case ReqCourse:
		*ids = append(*ids, n.CourseID)
	case ReqAnd, ReqOr:
		for _, child := range n.Nodes {
			child.walkLeaves(ids)
		}
	case ReqTrue, ReqStanding:
	}
}

// =============================================================================
// JSON Wire Format
// =============================================================================

// reqNodeJSON is the kind-tagged wire representation produced by the catalog
// scraper: {"kind":"COURSE","courseId":"..."}, {"kind":"AND","nodes":[...]},
// {"kind":"STANDING_AT_LEAST","minStanding":"JUNIOR"}.
type reqNodeJSON struct {
	Kind        string        `json:"kind" bson:"kind"`
	CourseID    string        `json:"courseId,omitempty" bson:"course_id,omitempty"`
	MinStanding string        `json:"minStanding,omitempty" bson:"min_standing,omitempty"`
	Nodes       []reqNodeJSON `json:"nodes,omitempty" bson:"nodes,omitempty"`
}

// MarshalJSON encodes the node in the kind-tagged wire format.
func (n *ReqNode) MarshalJSON() ([]byte, error) {
	wire, err := n.toWire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

func (n *ReqNode) toWire() (reqNodeJSON, error) {
	wire := reqNodeJSON{Kind: n.Kind.String()}
	switch n.Kind {
	case ReqTrue:
	case ReqCourse:
		wire.CourseID = n.CourseID
	case ReqStanding:
		wire.MinStanding = n.MinStanding.String()
	case ReqAnd, ReqOr:
		wire.Nodes = make([]reqNodeJSON, len(n.Nodes))
		for i, child := range n.Nodes {
			cw, err := child.toWire()
			if err != nil {
				return reqNodeJSON{}, err
			}
			wire.Nodes[i] = cw
		}
	default:
		return reqNodeJSON{}, fmt.Errorf("unknown requirement kind: %d", n.Kind)
	}
	return wire, nil
}

// UnmarshalJSON decodes the kind-tagged wire format.
// Unknown kinds are rejected so malformed catalog data fails loudly at load
// time rather than silently evaluating wrong.
func (n *ReqNode) UnmarshalJSON(data []byte) error {
	var wire reqNodeJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	decoded, err := fromWire(wire)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

func fromWire(wire reqNodeJSON) (*ReqNode, error) {
	switch wire.Kind {
	case "TRUE":
		return True(), nil
	case "COURSE":
		if wire.CourseID == "" {
			return nil, fmt.Errorf("COURSE node missing courseId")
		}
		return CourseReq(wire.CourseID), nil
	case "STANDING_AT_LEAST":
		min, err := ParseStanding(wire.MinStanding)
		if err != nil {
			return nil, fmt.Errorf("STANDING_AT_LEAST node: %w", err)
		}
		return StandingAtLeast(min), nil
	case "AND", "OR":
		nodes := make([]*ReqNode, len(wire.Nodes))
		for i, cw := range wire.Nodes {
			child, err := fromWire(cw)
			if err != nil {
				return nil, err
			}
			nodes[i] = child
		}
		if wire.Kind == "AND" {
			return And(nodes...), nil
		}
		return Or(nodes...), nil
	default:
		return nil, fmt.Errorf("unknown requirement kind: %q", wire.Kind)
	}
}
