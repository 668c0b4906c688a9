// Package layout converts a catalog index into positioned course graphs.
//
// Two independent strategies share the index:
//
//   - [Grid] assigns each course a level via longest-path topological
//     leveling (Kahn's algorithm) and lays levels out as centered rows.
//   - [Radial] assigns each course a recursive prerequisite depth and places
//     each depth group evenly around a ring.
//
// Both produce a [Layout]: nodes with explicit position hints plus the
// prerequisite edges. Positions are computed once per request and are not
// authoritative state; a rendering collaborator may relax them further (force
// simulation, drag).
//
// # Malformed Data
//
// Prerequisite cycles are possible only in malformed catalog data. Neither
// strategy loops or drops nodes on cycles: Grid parks the affected courses in
// a dedicated bottom row and reports them in Layout.Unresolved, and Radial
// resolves revisited courses to depth 0. This is a data-quality signal for
// the caller to log, not an error.
package layout
