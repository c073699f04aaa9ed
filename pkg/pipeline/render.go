package pipeline

import (
	"context"
	"time"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/observability"
	"github.com/matzehuels/codeflow/pkg/render/diagram"
	"github.com/matzehuels/codeflow/pkg/render/nodelink"
	"github.com/matzehuels/codeflow/pkg/render/sink"
	"github.com/matzehuels/codeflow/pkg/render/styles"
)

// Render draws a prepared chart in opts.Format. Call [Prepare] first when
// using the shapes renderer.
func Render(ctx context.Context, fc *flowchart.Flowchart, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Renderer, opts.Format)
	start := time.Now()

	var (
		data []byte
		err  error
	)
	if opts.IsShapes() {
		data, err = renderShapes(ctx, fc, opts)
	} else {
		data, err = renderGraph(ctx, fc, opts)
	}

	hooks.OnRenderComplete(ctx, opts.Renderer, opts.Format, len(data), time.Since(start), err)
	return data, err
}

func renderShapes(ctx context.Context, fc *flowchart.Flowchart, opts Options) ([]byte, error) {
	scheme, err := styles.LookupScheme(opts.Theme)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidTheme, err, "select colour scheme")
	}
	sc, err := diagram.Build(fc, scheme)
	if err != nil {
		return nil, err
	}

	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	switch opts.Format {
	case FormatSVG:
		return sink.RenderSVG(sc, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(sc, sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, sc, svgOpts...)
	}
	return nil, cferrors.New(cferrors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
}

func renderGraph(ctx context.Context, fc *flowchart.Flowchart, opts Options) ([]byte, error) {
	theme, err := styles.LookupTheme(opts.Theme)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidTheme, err, "select theme")
	}
	dot := nodelink.ToDOT(fc, nodelink.Options{Theme: theme})
	opts.Logger.Debug("generated DOT", "bytes", len(dot))

	switch opts.Format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	}
	return nil, cferrors.New(cferrors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
}
