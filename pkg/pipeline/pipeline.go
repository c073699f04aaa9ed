// Package pipeline provides the core flowchart pipeline for codeflow.
//
// This package implements the complete load → parse → layout → render
// pipeline used by the CLI and the HTTP server. Keeping it in one place
// gives both entry points the same defaults, caching and error codes.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read a Python file, a JSON/TOML definition or a built-in sample
//  2. Parse: turn Python source into a construct graph (cached by source hash)
//  3. Layout: map constructs to shapes and place them (shapes renderer only)
//  4. Render: produce PNG, SVG or PDF bytes (cached by graph hash and options)
//
// # Usage
//
//	runner := pipeline.NewRunner(afero.NewOsFs(), cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "script.py",
//	    Format: pipeline.FormatSVG,
//	})
//
// Run individual stages:
//
//	fc, err := pipeline.Parse(ctx, src)
//	fc = pipeline.Prepare(fc, opts)
//	data, err := pipeline.Render(ctx, fc, opts)
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codeflow/pkg/cache"
	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/render/styles"
)

// Renderers.
const (
	// RendererShapes draws start/end ellipses, process rectangles, decision
	// diamonds and input/output parallelograms at computed positions.
	RendererShapes = "shapes"
	// RendererGraph draws the construct graph with Graphviz.
	RendererGraph = "graph"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// Defaults shared by the CLI and server.
const (
	DefaultRenderer = RendererShapes
	DefaultFormat   = FormatPNG
	DefaultScale    = 2.0

	// MaxScale bounds the PNG pixel density multiplier.
	MaxScale = 8.0
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatPDF: true,
}

// ValidRenderers is the set of supported renderers.
var ValidRenderers = map[string]bool{
	RendererShapes: true,
	RendererGraph:  true,
}

// Options contains all configuration for one pipeline run. Exactly one of
// Input, Sample or Source names what to draw.
type Options struct {
	// Input is a Python file, or a .json/.toml definition file.
	Input string `json:"input,omitempty"`
	// Sample names a built-in chart.
	Sample string `json:"sample,omitempty"`
	// Source is Python code supplied directly, as in an API request.
	Source []byte `json:"-"`

	// Output is the file to write. Empty derives a name from the input;
	// see [DefaultOutputPath].
	Output string `json:"output,omitempty"`

	Renderer string  `json:"renderer,omitempty"`
	Format   string  `json:"format,omitempty"`
	Theme    string  `json:"theme,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Title    string  `json:"title,omitempty"`

	// Refresh bypasses cached graphs and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Flowchart is the chart that was drawn, after layout.
	Flowchart *flowchart.Flowchart

	// GraphHash is the content hash of the chart before layout.
	GraphHash string

	// Artifact is the rendered image.
	Artifact []byte

	// Output is the path written, empty when nothing was written.
	Output string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	DecisionCount int
	Complex       bool
	ParseTime     time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return cferrors.New(cferrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, pdf)", format)
	}
	return nil
}

// ValidateRenderer checks that a renderer is valid.
func ValidateRenderer(renderer string) error {
	if !ValidRenderers[renderer] {
		return cferrors.New(cferrors.ErrCodeInvalidRenderer, "invalid renderer: %q (must be one of: shapes, graph)", renderer)
	}
	return nil
}

// ValidateTheme checks theme against the palettes of renderer: colour
// schemes for shapes and themes for graph. Empty selects the default.
func ValidateTheme(renderer, theme string) error {
	if theme == "" {
		return nil
	}
	switch renderer {
	case RendererGraph:
		if !styles.IsTheme(theme) {
			return cferrors.New(cferrors.ErrCodeInvalidTheme, "invalid theme %q for the graph renderer (must be one of: %v)", theme, styles.ThemeNames)
		}
	default:
		if !styles.IsScheme(theme) {
			return cferrors.New(cferrors.ErrCodeInvalidTheme, "invalid theme %q for the shapes renderer (must be one of: %v)", theme, styles.SchemeNames)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateScale checks that scale is a finite number in (0, MaxScale].
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > MaxScale {
		return cferrors.New(cferrors.ErrCodeInvalidInput, "scale must be greater than 0 and at most %g, got %g", MaxScale, scale)
	}
	return nil
}

// ValidateAndSetDefaults checks the render options and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateTheme(o.Renderer, o.Theme); err != nil {
		return err
	}
	if err := cferrors.ValidateOutputPath(o.Output, o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// IsShapes reports whether the shapes renderer is selected.
func (o *Options) IsShapes() bool {
	return o.Renderer == "" || o.Renderer == RendererShapes
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Renderer: o.Renderer,
		Format:   o.Format,
		Theme:    o.Theme,
		Scale:    o.Scale,
		Title:    o.Title,
	}
}
