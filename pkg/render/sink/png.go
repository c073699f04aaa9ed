package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/fonts"
	"github.com/matzehuels/codeflow/pkg/render/diagram"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterises the scene. It needs no external tools.
func RenderPNG(sc *diagram.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	f := newFrame(sc, r.scale)
	width, height, err := f.rasterSize()
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidInput, err, "render PNG")
	}
	p, err := newPalette(sc.Scheme.Background, sc.Scheme.Outline, sc.Scheme.Text, sc.Scheme.Arrow)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeRender, err, "render PNG")
	}

	text, err := fonts.Face(f.font(sc.FontSize))
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeRender, err, "load font")
	}
	defer text.Close()
	bold, err := fonts.BoldFace(f.font(sc.LabelSize))
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeRender, err, "load font")
	}
	defer bold.Close()

	dc := gg.NewContext(width, height)
	dc.SetColor(p.background)
	dc.Clear()
	dc.SetLineWidth(strokeWidth * f.scale)

	for _, b := range sc.Boxes {
		fill, err := parseColor(b.Fill)
		if err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeRender, err, "node %d", b.ID)
		}
		drawBox(dc, f, b, withAlpha(fill, shapeAlpha), p.outline)
		drawBoxText(dc, f, b, text, p.text)
	}
	for _, a := range sc.Arrows {
		drawArrow(dc, f, a, p.arrow)
	}
	for _, l := range sc.Labels {
		c, err := parseColor(l.Color)
		if err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeRender, err, "label %q", l.Text)
		}
		drawLabel(dc, f, l, bold, c)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeRender, err, "encode PNG")
	}
	return buf.Bytes(), nil
}

type palette struct {
	background, outline, text, arrow color.NRGBA
}

func newPalette(background, outline, text, arrow string) (palette, error) {
	var p palette
	for _, c := range []struct {
		dst  *color.NRGBA
		name string
	}{
		{&p.background, background},
		{&p.outline, outline},
		{&p.text, text},
		{&p.arrow, arrow},
	} {
		v, err := parseColor(c.name)
		if err != nil {
			return palette{}, fmt.Errorf("scheme: %w", err)
		}
		*c.dst = v
	}
	return p, nil
}

func drawBox(dc *gg.Context, f frame, b diagram.Box, fill, outline color.Color) {
	if b.Shape.Family == diagram.Ellipse {
		cx, cy := f.pt(b.Shape.Center)
		dc.DrawEllipse(cx, cy, f.w(b.Shape.Width/2), f.h(b.Shape.Height/2))
	} else {
		tracePolygon(dc, f, b.Shape.Points)
	}
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.Stroke()
}

func drawBoxText(dc *gg.Context, f frame, b diagram.Box, face font.Face, c color.Color) {
	dc.SetFontFace(face)
	dc.SetColor(c)
	lines := dc.WordWrap(b.Label, f.w(b.Shape.Width))
	_, lineH := dc.MeasureString("Mg")
	cx, cy := f.pt(b.Shape.Center)
	top := cy - float64(len(lines)-1)*lineH*0.6
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, top+float64(i)*lineH*1.2, 0.5, 0.5)
	}
}

func drawArrow(dc *gg.Context, f frame, a diagram.Arrow, c color.Color) {
	pts := a.Route.Points
	dc.SetColor(c)
	x, y := f.pt(pts[0])
	dc.MoveTo(x, y)
	for _, p := range pts[1:] {
		dc.LineTo(f.pt(p))
	}
	dc.Stroke()

	head := f.arrowHead(pts)
	dc.MoveTo(head[0][0], head[0][1])
	dc.LineTo(head[1][0], head[1][1])
	dc.LineTo(head[2][0], head[2][1])
	dc.ClosePath()
	dc.Fill()
}

func drawLabel(dc *gg.Context, f frame, l diagram.Label, face font.Face, c color.Color) {
	dc.SetFontFace(face)
	w, h := dc.MeasureString(l.Text)
	pad := 2 * f.scale
	x, y := f.pt(l.At)

	dc.SetColor(color.NRGBA{0xFF, 0xFF, 0xFF, labelAlphaByte})
	dc.DrawRectangle(x-w/2-pad, y-h/2-pad, w+2*pad, h+2*pad)
	dc.Fill()

	dc.SetColor(c)
	dc.DrawStringAnchored(l.Text, x, y, 0.5, 0.5)
}

func tracePolygon(dc *gg.Context, f frame, pts []flowchart.Point) {
	dc.NewSubPath()
	for i, p := range pts {
		x, y := f.pt(p)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	dc.ClosePath()
}
