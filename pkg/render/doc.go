// Package render provides format conversion shared by the flowchart
// renderers.
//
// # Overview
//
// Flowcharts are drawn by two renderers:
//
//   - Geometric flowcharts (in [sink], from a [diagram] scene): ellipses,
//     rectangles, diamonds and parallelograms with routed connectors
//   - Syntax graphs (in [nodelink]): one box per construct, laid out by
//     Graphviz
//
// Both produce SVG first. PDF output converts that SVG with the external
// rsvg-convert tool (from librsvg). Geometric PNGs are rasterized natively;
// syntax graphs use rsvg-convert for PNG when it is installed:
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [sink]: github.com/matzehuels/codeflow/pkg/render/sink
// [diagram]: github.com/matzehuels/codeflow/pkg/render/diagram
// [nodelink]: github.com/matzehuels/codeflow/pkg/render/nodelink
package render
