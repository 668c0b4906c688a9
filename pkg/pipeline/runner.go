package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coursepath/coursepath/pkg/cache"
	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/errors"
	"github.com/coursepath/coursepath/pkg/layout"
	"github.com/coursepath/coursepath/pkg/observability"
	"github.com/coursepath/coursepath/pkg/progress"
	"github.com/coursepath/coursepath/pkg/render"
)

// Runner executes the pipeline with caching. It is stateless apart from the
// cache and logger, so one Runner can serve concurrent requests with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default keyer, a nil logger uses the global default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete index → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Index
	indexStart := time.Now()
	idx, hash, err := r.LoadIndex(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Index = idx
	result.CatalogHash = hash
	result.Stats.IndexTime = time.Since(indexStart)
	result.Stats.CourseCount = idx.Len()

	r.Logger.Info("indexed catalog",
		"courses", idx.Len(),
		"duration", result.Stats.IndexTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, idx, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EdgeCount = len(l.Edges)
	result.Stats.Unresolved = len(l.Unresolved)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"viz_type", opts.VizType,
		"nodes", len(l.Nodes),
		"unresolved", len(l.Unresolved),
		"duration", result.Stats.LayoutTime)

	// Classify against a student record when one was supplied.
	states, err := r.classify(ctx, idx, opts)
	if err != nil {
		return nil, err
	}
	result.States = states

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, states, idx, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadIndex reads the catalog file and builds its index. The returned hash
// is the content hash of the raw file, used as the cache key root for the
// later stages.
func (r *Runner) LoadIndex(ctx context.Context, opts Options) (*catalog.Index, string, error) {
	observability.Pipeline().OnIndexStart(ctx, opts.CatalogPath)
	start := time.Now()

	data, err := os.ReadFile(opts.CatalogPath)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeFileNotFound, err, "read catalog %s", opts.CatalogPath)
		observability.Pipeline().OnIndexComplete(ctx, opts.CatalogPath, 0, time.Since(start), err)
		return nil, "", err
	}

	courses, err := catalog.UnmarshalCatalog(data)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog %s", opts.CatalogPath)
		observability.Pipeline().OnIndexComplete(ctx, opts.CatalogPath, 0, time.Since(start), err)
		return nil, "", err
	}

	idx, err := catalog.BuildIndex(courses)
	if err != nil {
		observability.Pipeline().OnIndexComplete(ctx, opts.CatalogPath, 0, time.Since(start), err)
		return nil, "", err
	}

	observability.Pipeline().OnIndexComplete(ctx, opts.CatalogPath, idx.Len(), time.Since(start), nil)
	return idx, cache.Hash(data), nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and reports
// whether the result came from cache.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, idx *catalog.Index, catalogHash string, opts Options) (layout.Layout, bool, error) {
	opts.SetLayoutDefaults()
	if err := ValidateVizType(opts.VizType); err != nil {
		return layout.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(catalogHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Corrupt entry: fall through and recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.VizType, idx.Len())
	start := time.Now()

	var l layout.Layout
	switch opts.VizType {
	case layout.VizTypeRadial:
		l = layout.Radial(idx, opts.LayoutOptions())
	default:
		l = layout.Grid(idx, opts.LayoutOptions())
	}

	observability.Pipeline().OnLayoutComplete(ctx, opts.VizType, len(l.Unresolved), time.Since(start), nil)

	if data, err := layout.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, idx *catalog.Index, catalogHash string, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, idx, catalogHash, opts)
	return l, err
}

// classify loads the student record if needed and computes per-course
// states. Returns nil when no record was supplied.
func (r *Runner) classify(ctx context.Context, idx *catalog.Index, opts Options) (map[string]progress.State, error) {
	rec := opts.Record
	if rec == nil && opts.RecordPath != "" {
		loaded, err := progress.ReadRecordFile(opts.RecordPath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "load record %s", opts.RecordPath)
		}
		rec = loaded
	}
	if rec == nil {
		return nil, nil
	}

	start := time.Now()
	states := progress.ClassifyAll(idx, rec, opts.FutureMode)
	observability.Classify().OnClassify(ctx, rec.ID, idx.Len(), opts.FutureMode, time.Since(start))
	return states, nil
}

// RenderWithCacheInfo renders all requested formats with per-artifact
// caching. State maps feed the artifact key so colored and neutral renders
// cache independently.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, states map[string]progress.State, idx *catalog.Index, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	layoutData, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	keyInput := layoutData
	if states != nil {
		if stateData, err := json.Marshal(states); err == nil {
			keyInput = append(append([]byte{}, layoutData...), stateData...)
		}
	}
	artifactHash := cache.Hash(keyInput)

	// Try all formats from cache first.
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(artifactHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := r.renderFormats(ctx, l, layoutData, states, idx, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(artifactHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, states map[string]progress.State, idx *catalog.Index, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, states, idx, opts)
	return artifacts, err
}

func (r *Runner) renderFormats(ctx context.Context, l layout.Layout, layoutData []byte, states map[string]progress.State, idx *catalog.Index, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	needDOT := false
	for _, f := range opts.Formats {
		if f == FormatDOT || f == FormatSVG || f == FormatPNG {
			needDOT = true
		}
	}
	if needDOT {
		dot = render.ToDOT(l, render.Options{
			States:   states,
			Detailed: opts.Detailed,
			Titles:   courseTitles(idx),
		})
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			artifacts[format] = layoutData
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatSVG:
			svg, err := render.RenderSVG(ctx, dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
			}
			artifacts[format] = svg
		case FormatPNG:
			png, err := render.RenderPNG(ctx, dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
			}
			artifacts[format] = png
		}
	}
	return artifacts, nil
}

func courseTitles(idx *catalog.Index) map[string]string {
	if idx == nil {
		return nil
	}
	titles := make(map[string]string, idx.Len())
	for _, c := range idx.Courses() {
		titles[c.ID] = c.Title
	}
	return titles
}

// Close releases resources held by the runner, primarily the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
