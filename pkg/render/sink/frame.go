package sink

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/render/diagram"
)

const (
	pxPerUnitX  = 800.0
	pxPerUnitY  = 960.0
	pxPerPoint  = pxPerUnitX / (10 * 72)
	strokeWidth = 1.5
	arrowLength = 9.0
	arrowWidth  = 4.5
	shapeAlpha  = 0.9
	labelAlpha  = 0.7

	// labelAlphaByte is labelAlpha on the 0-255 scale, rounded.
	labelAlphaByte = 179

	// maxPixels bounds the area of a raster image.
	maxPixels = 1 << 26
)

// frame maps diagram units to pixels.
type frame struct {
	scale  float64
	width  float64
	height float64
	canvas flowchart.Canvas
}

func newFrame(sc *diagram.Scene, scale float64) frame {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	return frame{
		scale:  scale,
		width:  math.Ceil(sc.Canvas.Width * pxPerUnitX * scale),
		height: math.Ceil(sc.Canvas.Height * pxPerUnitY * scale),
		canvas: sc.Canvas,
	}
}

// rasterSize returns the pixel size of the frame, or an error when it is
// not a drawable image or would exceed maxPixels.
func (f frame) rasterSize() (int, int, error) {
	w, h := f.width, f.height
	if !(w >= 1 && h >= 1) || math.IsInf(w, 0) || math.IsInf(h, 0) || w*h > maxPixels {
		return 0, 0, fmt.Errorf("image of %.0fx%.0f px exceeds the %d px limit", w, h, maxPixels)
	}
	return int(w), int(h), nil
}

func (f frame) x(v float64) float64 { return v * pxPerUnitX * f.scale }

func (f frame) y(v float64) float64 { return (f.canvas.Height - v) * pxPerUnitY * f.scale }

func (f frame) pt(p flowchart.Point) (float64, float64) { return f.x(p.X), f.y(p.Y) }

func (f frame) w(v float64) float64 { return v * pxPerUnitX * f.scale }

func (f frame) h(v float64) float64 { return v * pxPerUnitY * f.scale }

func (f frame) font(points float64) float64 { return points * pxPerPoint * f.scale }

// arrowHead returns the three corners of an arrow head ending at the last
// point of pts.
func (f frame) arrowHead(pts []flowchart.Point) [3][2]float64 {
	x1, y1 := f.pt(pts[len(pts)-2])
	x2, y2 := f.pt(pts[len(pts)-1])
	dx, dy := x2-x1, y2-y1
	n := math.Hypot(dx, dy)
	if n == 0 {
		dx, dy, n = 0, 1, 1
	}
	ux, uy := dx/n, dy/n
	l, w := arrowLength*f.scale, arrowWidth*f.scale
	bx, by := x2-ux*l, y2-uy*l
	return [3][2]float64{
		{x2, y2},
		{bx - uy*w, by + ux*w},
		{bx + uy*w, by - ux*w},
	}
}

// wrapLabel breaks text into lines of at most maxChars runes at spaces.
// Words longer than the limit are kept whole.
func wrapLabel(text string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	var (
		lines []string
		cur   string
	)
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case len([]rune(cur))+1+len([]rune(w)) <= maxChars:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	return append(lines, cur)
}

// lineChars estimates how many characters fit across a shape.
func lineChars(shapeWidthPx, fontPx float64) int {
	return int(shapeWidthPx / (fontPx * 0.55))
}
