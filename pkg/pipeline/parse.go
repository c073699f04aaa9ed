package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/observability"
	"github.com/matzehuels/codeflow/pkg/parser/python"
)

// Parse converts Python source into a construct graph.
func Parse(ctx context.Context, src []byte) (*flowchart.Flowchart, error) {
	return parseNamed(ctx, "<source>", src)
}

func parseNamed(ctx context.Context, name string, src []byte) (*flowchart.Flowchart, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, name)
	start := time.Now()

	fc, err := python.Parse(ctx, src)

	nodes := 0
	if fc != nil {
		nodes = fc.NodeCount()
	}
	hooks.OnParseComplete(ctx, name, nodes, time.Since(start), err)
	return fc, err
}
