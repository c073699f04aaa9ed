package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/layout"
	"github.com/matzehuels/codeflow/pkg/observability"
)

// Prepare readies a chart for the selected renderer. The shapes renderer
// gets the chart with construct types mapped to shapes and every node
// placed; charts that already carry positions keep them. The graph renderer
// takes the chart as is.
func Prepare(fc *flowchart.Flowchart, opts Options) *flowchart.Flowchart {
	return prepare(context.Background(), fc, opts)
}

func prepare(ctx context.Context, fc *flowchart.Flowchart, opts Options) *flowchart.Flowchart {
	if !opts.IsShapes() {
		return fc
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, RendererShapes, fc.NodeCount())
	start := time.Now()

	out := layout.Place(flowchart.Adapt(fc))

	hooks.OnLayoutComplete(ctx, RendererShapes, time.Since(start), nil)
	return out
}
