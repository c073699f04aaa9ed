// Package nodelink renders the syntax-derived flowchart as a node-link
// diagram.
//
// # Overview
//
// The parser's output is a tree of constructs: modules, functions, tests,
// loops, handlers and statements. This package draws it as Graphviz boxes
// connected by arrows, coloured by a [styles.Theme]: one fill per construct
// type and one colour per edge kind. Branches are labelled True, False and
// Exception.
//
// # Usage
//
// Convert a flowchart to DOT format, then render to SVG:
//
//	th, _ := styles.LookupTheme("dark")
//	dot := nodelink.ToDOT(fc, nodelink.Options{Theme: th})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// [styles.Theme]: github.com/matzehuels/codeflow/pkg/render/styles
package nodelink
