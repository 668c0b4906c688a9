// Package catalog defines the course data model and the derived lookup index.
//
// A catalog is a flat list of [Course] records produced by an external scraper
// or bundled as static data. Courses reference each other only through opaque
// stable IDs embedded in requirement trees ([ReqNode]); no live object
// references are stored, which keeps the structures serializable and free of
// reference cycles.
//
// [BuildIndex] derives the lookup structures used by the rest of the engine:
// ID and code maps plus a prerequisite adjacency list built by scanning every
// course's requirement tree for COURSE leaves. The index is rebuilt wholesale
// whenever the course list changes; it is never mutated in place.
//
// # Partial Catalogs
//
// Scraped catalogs are commonly incomplete. A COURSE leaf that references an
// ID absent from the catalog is not an error: the adjacency edge is skipped
// and the leaf evaluates as permanently unsatisfied, producing a usable (if
// pessimistic) graph.
package catalog
