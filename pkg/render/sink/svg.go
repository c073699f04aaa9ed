package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/fonts"
	"github.com/matzehuels/codeflow/pkg/render/diagram"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	title      string
	fontFamily string
}

// WithSVGScale multiplies the pixel size of the output.
func WithSVGScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithFontFamily overrides the CSS font family of all text.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(sc *diagram.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1, fontFamily: fonts.FontFamily}
	for _, opt := range opts {
		opt(&r)
	}
	f := newFrame(sc, r.scale)
	s := sc.Scheme

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.width, f.height, f.width, f.height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", f.width, f.height, s.Background)
	fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", escapeXML(r.fontFamily))

	for _, b := range sc.Boxes {
		renderBoxSVG(&buf, f, b, s.Outline)
		renderBoxTextSVG(&buf, f, b, sc.FontSize, s.Text)
	}
	for _, a := range sc.Arrows {
		renderArrowSVG(&buf, f, a, s.Arrow)
	}
	for _, l := range sc.Labels {
		renderLabelSVG(&buf, f, l, sc.LabelSize)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderBoxSVG(buf *bytes.Buffer, f frame, b diagram.Box, stroke string) {
	if b.Shape.Family == diagram.Ellipse {
		cx, cy := f.pt(b.Shape.Center)
		fmt.Fprintf(buf, `    <ellipse id="node-%d" cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s" fill-opacity="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			b.ID, cx, cy, f.w(b.Shape.Width/2), f.h(b.Shape.Height/2), b.Fill, shapeAlpha, stroke, strokeWidth*f.scale)
		return
	}
	fmt.Fprintf(buf, `    <polygon id="node-%d" points="%s" fill="%s" fill-opacity="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		b.ID, svgPoints(f, b.Shape.Points), b.Fill, shapeAlpha, stroke, strokeWidth*f.scale)
}

func renderBoxTextSVG(buf *bytes.Buffer, f frame, b diagram.Box, size float64, fill string) {
	px := f.font(size)
	lines := wrapLabel(b.Label, lineChars(f.w(b.Shape.Width), px))
	cx, cy := f.pt(b.Shape.Center)
	top := cy - float64(len(lines)-1)*px*0.6

	fmt.Fprintf(buf, `    <text text-anchor="middle" dominant-baseline="central" font-size="%.1f" fill="%s">`, px, fill)
	for i, line := range lines {
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f">%s</tspan>`, cx, top+float64(i)*px*1.2, escapeXML(line))
	}
	buf.WriteString("</text>\n")
}

func renderArrowSVG(buf *bytes.Buffer, f frame, a diagram.Arrow, stroke string) {
	fmt.Fprintf(buf, `    <polyline class="edge" data-from="%d" data-to="%d" points="%s" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		a.From, a.To, svgPoints(f, a.Route.Points), stroke, strokeWidth*f.scale)
	head := f.arrowHead(a.Route.Points)
	fmt.Fprintf(buf, `    <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
		head[0][0], head[0][1], head[1][0], head[1][1], head[2][0], head[2][1], stroke)
}

func renderLabelSVG(buf *bytes.Buffer, f frame, l diagram.Label, size float64) {
	px := f.font(size)
	x, y := f.pt(l.At)
	w := float64(len([]rune(l.Text)))*px*0.6 + 2*f.scale
	h := px + 2*f.scale
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="white" fill-opacity="%.1f"/>`+"\n",
		x-w/2, y-h/2, w, h, labelAlpha)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-size="%.1f" font-weight="bold" fill="%s">%s</text>`+"\n",
		x, y, px, l.Color, escapeXML(l.Text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func svgPoints(f frame, pts []flowchart.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		x, y := f.pt(p)
		parts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
	}
	return strings.Join(parts, " ")
}
