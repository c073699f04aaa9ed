package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/render"
	"github.com/matzehuels/codeflow/pkg/render/styles"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Theme colours nodes by construct and edges by kind. The zero value
	// uses the default theme.
	Theme styles.Theme
	// Detailed prefixes each label with the node id and construct type.
	Detailed bool
}

// ToDOT converts a flowchart to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Positions are ignored; Graphviz lays the graph out top to bottom. Edges
// are drawn in their kind's colour and classified edges without text are
// labelled True, False or Exception.
func ToDOT(fc *flowchart.Flowchart, opts Options) string {
	th := opts.Theme
	if th.Name == "" {
		th, _ = styles.LookupTheme(styles.DefaultTheme)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", th.Background)
	fmt.Fprintf(&buf, "  node [shape=%s, style=\"rounded,filled\", fontsize=%g, fontcolor=%q, margin=\"0.2,0.1\"];\n",
		th.Shape, th.FontSize, th.Font)
	fmt.Fprintf(&buf, "  edge [fontsize=%g, fontcolor=%q];\n", th.FontSize, th.Font)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range fc.Nodes {
		fmt.Fprintf(&buf, "  \"%d\" [label=%q, fillcolor=%q];\n", n.ID, fmtLabel(n, opts.Detailed), th.NodeColor(n.Type))
	}

	buf.WriteString("\n")
	for _, e := range fc.Edges {
		attrs := []string{fmt.Sprintf("color=%q", th.EdgeColor(e.Kind))}
		if text := flowchart.EdgeText(e); text != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", text))
		}
		fmt.Fprintf(&buf, "  \"%d\" -> \"%d\" [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n flowchart.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return fmt.Sprintf("#%d %s\n%s", n.ID, n.Type, n.Label)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format, buf *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return cferrors.Wrap(cferrors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return cferrors.Wrap(cferrors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeRender, err, "render %s", format)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG. When rsvg-convert is available the
// SVG is converted at the given scale; otherwise Graphviz rasterises the
// graph itself at its native size.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	if !render.ConverterAvailable() {
		var buf bytes.Buffer
		if err := renderDOT(ctx, dot, graphviz.PNG, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
