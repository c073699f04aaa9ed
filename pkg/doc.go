// Package pkg provides the core libraries for codeflow.
//
// # Overview
//
// Codeflow turns Python source into flowcharts. The pkg directory is
// organized by pipeline stage:
//
//  1. [parser/python] - Python source to a construct graph (tree-sitter)
//  2. [flowchart] - The node/edge graph, its codecs and shape mapping
//  3. [layout] - Positions for charts that carry none
//  4. [render] - Shape geometry, connector routing and the SVG/PNG/PDF sinks
//  5. [pipeline] - Orchestration (load → parse → layout → render) with caching
//
// Supporting packages: [cache], [config], [errors], [observability],
// [samples], [fonts] and [buildinfo].
//
// # Architecture
//
//	Python file / JSON or TOML definition / built-in sample
//	         ↓
//	    [parser/python] (construct graph)
//	         ↓
//	    [flowchart] Adapt (construct types → shapes)
//	         ↓
//	    [layout] Place
//	         ↓
//	    [render/diagram] (shapes + routed connectors)
//	         ↓
//	    [render/sink] SVG/PNG/PDF
//
// The graph renderer skips shape mapping and layout and hands the construct
// graph to Graphviz ([render/nodelink]).
//
// # Quick Start
//
//	fc, err := python.Parse(ctx, src)
//	fc = layout.Place(flowchart.Adapt(fc))
//	scheme, _ := styles.LookupScheme("standard")
//	scene, err := diagram.Build(fc, scheme)
//	svg := sink.RenderSVG(scene)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(afero.NewOsFs(), cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "script.py", Format: "svg"})
//
// [parser/python]: github.com/matzehuels/codeflow/pkg/parser/python
// [flowchart]: github.com/matzehuels/codeflow/pkg/flowchart
// [layout]: github.com/matzehuels/codeflow/pkg/layout
// [render]: github.com/matzehuels/codeflow/pkg/render
// [render/diagram]: github.com/matzehuels/codeflow/pkg/render/diagram
// [render/sink]: github.com/matzehuels/codeflow/pkg/render/sink
// [render/nodelink]: github.com/matzehuels/codeflow/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/codeflow/pkg/pipeline
// [cache]: github.com/matzehuels/codeflow/pkg/cache
// [config]: github.com/matzehuels/codeflow/pkg/config
// [errors]: github.com/matzehuels/codeflow/pkg/errors
// [observability]: github.com/matzehuels/codeflow/pkg/observability
// [samples]: github.com/matzehuels/codeflow/pkg/samples
// [fonts]: github.com/matzehuels/codeflow/pkg/fonts
// [buildinfo]: github.com/matzehuels/codeflow/pkg/buildinfo
package pkg
