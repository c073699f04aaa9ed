package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/matzehuels/codeflow/pkg/cache"
	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/observability"
	"github.com/matzehuels/codeflow/pkg/samples"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that caching and file handling live in one place.
//
// The Runner is stateless except for the filesystem, cache and logger.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Fs     afero.Fs
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner.
// A nil fs uses the OS filesystem, a nil cache disables caching, and a nil
// keyer uses [cache.NewDefaultKeyer].
func NewRunner(fs afero.Fs, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fs: fs, Cache: c, Keyer: keyer, Logger: logger}
}

// Execute loads the chart named by opts, renders it and writes the image.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	output, err := r.outputPath(opts)
	if err != nil {
		return nil, err
	}

	result, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := WriteFile(r.Fs, output, result.Artifact); err != nil {
		return nil, err
	}
	result.Output = output
	r.Logger.Info("wrote flowchart", "path", output, "bytes", len(result.Artifact))
	return result, nil
}

// Build loads, lays out and renders the chart named by opts without writing
// anything.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	parseStart := time.Now()
	fc, hit, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.CacheInfo.ParseHit = hit
	result.GraphHash = graphHash(fc)
	r.Logger.Debug("loaded flowchart",
		"nodes", fc.NodeCount(),
		"edges", fc.EdgeCount(),
		"cached", hit,
		"duration", result.Stats.ParseTime)

	layoutStart := time.Now()
	prepared := prepare(ctx, fc, opts)
	result.Flowchart = prepared
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = prepared.NodeCount()
	result.Stats.EdgeCount = prepared.EdgeCount()
	result.Stats.DecisionCount = prepared.DecisionCount()
	result.Stats.Complex = prepared.IsComplex()

	renderStart := time.Now()
	data, hit, err := r.RenderWithCacheInfo(ctx, prepared, result.GraphHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = data
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)
	r.Logger.Debug("rendered flowchart",
		"renderer", opts.Renderer,
		"format", opts.Format,
		"bytes", len(data),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the chart named by opts: a built-in sample, Python source
// supplied inline, a definition file or a Python file. The boolean reports
// whether a parsed graph came from the cache.
func (r *Runner) Load(ctx context.Context, opts Options) (*flowchart.Flowchart, bool, error) {
	switch {
	case opts.Sample != "":
		fc, err := samples.Get(opts.Sample)
		return fc, false, err
	case opts.Source != nil:
		return r.ParseWithCacheInfo(ctx, "<source>", opts.Source, opts.Refresh)
	case opts.Input == "":
		return nil, false, cferrors.New(cferrors.ErrCodeInvalidInput, "no input: give a Python file, a definition file or a sample")
	}

	src, err := ReadSource(r.Fs, opts.Input)
	if err != nil {
		return nil, false, err
	}
	if format, err := flowchart.FormatFromPath(opts.Input); err == nil {
		fc, err := flowchart.Decode(src, format)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", opts.Input, err)
		}
		return fc, false, nil
	}
	if !cferrors.IsPythonFile(opts.Input) {
		r.Logger.Warn("input does not end in .py, parsing as Python anyway", "path", opts.Input)
	}
	return r.ParseWithCacheInfo(ctx, opts.Input, src, opts.Refresh)
}

// ParseWithCacheInfo parses src, consulting the graph cache first unless
// refresh is set.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, name string, src []byte, refresh bool) (*flowchart.Flowchart, bool, error) {
	key := r.Keyer.GraphKey(cache.Hash(src), cache.GraphKeyOpts{Language: "python"})

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var fc flowchart.Flowchart
			if err := json.Unmarshal(data, &fc); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return &fc, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("graph cache unavailable", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	fc, err := parseNamed(ctx, name, src)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := flowchart.WriteJSON(&buf, fc); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.GraphTTL); err != nil {
			r.Logger.Warn("cache graph", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", buf.Len())
		}
	}
	return fc, false, nil
}

// RenderWithCacheInfo renders a prepared chart, consulting the artifact
// cache first. graphHash identifies the chart; an empty hash is computed.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, fc *flowchart.Flowchart, hash string, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if hash == "" {
		hash = graphHash(fc)
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := Render(ctx, fc, opts)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Warn("cache artifact", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// outputPath resolves where Execute writes.
func (r *Runner) outputPath(opts Options) (string, error) {
	switch {
	case opts.Output != "":
		return opts.Output, nil
	case opts.Sample != "":
		s, err := samples.Lookup(opts.Sample)
		if err != nil {
			return "", err
		}
		return s.Output + "." + opts.Format, nil
	case opts.Input != "":
		return DefaultOutputPath(opts.Input, opts.Format), nil
	}
	return filepath.Join(".", "flowchart."+opts.Format), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// graphHash hashes the JSON encoding of fc.
func graphHash(fc *flowchart.Flowchart) string {
	var buf bytes.Buffer
	if err := flowchart.WriteJSON(&buf, fc); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}
