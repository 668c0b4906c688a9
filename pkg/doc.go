// Package pkg provides the core libraries for coursepath prerequisite analysis.
//
// # Overview
//
// Coursepath turns a course catalog into a prerequisite dependency graph,
// positions every course on a grid or radial canvas, and classifies course
// availability against a student record. The pkg directory is organized into
// a few main areas:
//
//  1. [catalog] - Course data, requirement trees, and the catalog index
//  2. [eligibility] - Requirement evaluation against a credit set
//  3. [layout] - Grid and radial layout engines
//  4. [progress] - Student records, availability classification, record stores
//  5. [render] - DOT generation and SVG/PNG rendering
//  6. [pipeline] - Orchestration (index → layout → classify → render)
//  7. [cache] - Content-addressed caching of layouts and artifacts
//
// # Architecture
//
// The typical data flow through coursepath:
//
//	Catalog JSON
//	     ↓
//	catalog.BuildIndex
//	     ↓
//	layout.Grid / layout.Radial
//	     ↓
//	progress.ClassifyAll (optional, with a student record)
//	     ↓
//	render.ToDOT → render.RenderSVG / render.RenderPNG
//
// The pipeline package wires these stages together behind a single Runner
// with caching at the layout and artifact stages.
package pkg
