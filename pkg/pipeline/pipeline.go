// Package pipeline runs the index → layout → render flow with caching.
//
// The CLI and the server both execute catalogs through this package so
// caching and defaults behave identically at every entry point.
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    CatalogPath: "catalog.json",
//	    VizType:     "grid",
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Stages can also run individually:
//
//	idx, hash, err := runner.LoadIndex(ctx, opts)
//	l, err := runner.ComputeLayout(ctx, idx, hash, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coursepath/coursepath/pkg/cache"
	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/errors"
	"github.com/coursepath/coursepath/pkg/layout"
	"github.com/coursepath/coursepath/pkg/progress"
)

// Output format constants.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	layout.VizTypeGrid:   true,
	layout.VizTypeRadial: true,
}

// Options contains all configuration for a pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Index options
	CatalogPath string `json:"catalog_path,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"`

	// Layout options
	VizType      string   `json:"viz_type,omitempty"`
	HSpacing     float64  `json:"h_spacing,omitempty"`
	VSpacing     float64  `json:"v_spacing,omitempty"`
	BaseRadius   float64  `json:"base_radius,omitempty"`
	RingSpacing  float64  `json:"ring_spacing,omitempty"`
	EntryCourses []string `json:"entry_courses,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	RecordPath string   `json:"record_path,omitempty"`
	FutureMode bool     `json:"future_mode,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Record *progress.Record `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Index is the built catalog index.
	Index *catalog.Index

	// CatalogHash is the content hash of the catalog file.
	CatalogHash string

	// Layout holds the computed node positions.
	Layout layout.Layout

	// States holds per-course availability when a record was supplied.
	States map[string]progress.State

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CourseCount int
	EdgeCount   int
	Unresolved  int
	IndexTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: grid, radial)", vizType)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.CatalogPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "catalog_path is required")
	}
	if err := errors.ValidateCatalogPath(o.CatalogPath); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills unset layout fields from the engine defaults.
func (o *Options) SetLayoutDefaults() {
	defaults := layout.DefaultOptions()
	if o.VizType == "" {
		o.VizType = layout.VizTypeGrid
	}
	if o.HSpacing == 0 {
		o.HSpacing = defaults.HSpacing
	}
	if o.VSpacing == 0 {
		o.VSpacing = defaults.VSpacing
	}
	if o.BaseRadius == 0 {
		o.BaseRadius = defaults.BaseRadius
	}
	if o.RingSpacing == 0 {
		o.RingSpacing = defaults.RingSpacing
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills unset render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions converts pipeline options to engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		HSpacing:     o.HSpacing,
		VSpacing:     o.VSpacing,
		BaseRadius:   o.BaseRadius,
		RingSpacing:  o.RingSpacing,
		EntryCourses: o.EntryCourses,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:      o.VizType,
		HSpacing:     o.HSpacing,
		VSpacing:     o.VSpacing,
		BaseRadius:   o.BaseRadius,
		RingSpacing:  o.RingSpacing,
		EntryCourses: o.EntryCourses,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}
