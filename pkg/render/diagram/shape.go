package diagram

import (
	"math"

	"github.com/matzehuels/codeflow/pkg/flowchart"
)

// Preset holds the shape dimensions for one complexity level.
type Preset struct {
	Width   float64 // ellipse, rectangle and parallelogram width
	Height  float64 // ellipse, rectangle and parallelogram height
	Diamond float64 // distance from a diamond's centre to each vertex
}

var (
	// Normal is used for simple charts.
	Normal = Preset{Width: 0.16, Height: 0.08, Diamond: 0.08}
	// Compact is used for complex charts.
	Compact = Preset{Width: 0.12, Height: 0.06, Diamond: 0.06}
)

// PresetFor returns [Compact] for complex charts and [Normal] otherwise.
func PresetFor(isComplex bool) Preset {
	if isComplex {
		return Compact
	}
	return Normal
}

// Family is the geometric kind of a shape.
type Family string

const (
	Ellipse       Family = "ellipse"
	Rectangle     Family = "rectangle"
	Diamond       Family = "diamond"
	Parallelogram Family = "parallelogram"
)

// Shape is the outline of one node. Width and Height describe the bounding
// box; Points holds the vertices of polygon families in drawing order and is
// nil for ellipses.
type Shape struct {
	Family Family
	Center flowchart.Point
	Width  float64
	Height float64
	Points []flowchart.Point
}

// ShapeFor builds the shape for a node of type t centred at c.
func ShapeFor(t flowchart.NodeType, c flowchart.Point, isComplex bool) Shape {
	p := PresetFor(isComplex)
	w, h := p.Width, p.Height
	x, y := c.X-w/2, c.Y-h/2

	switch t {
	case flowchart.TypeStartEnd:
		return Shape{Family: Ellipse, Center: c, Width: w, Height: h}
	case flowchart.TypeDecision:
		s := p.Diamond
		return Shape{
			Family: Diamond,
			Center: c,
			Width:  2 * s,
			Height: 2 * s,
			Points: []flowchart.Point{
				{X: c.X, Y: c.Y + s},
				{X: c.X + s, Y: c.Y},
				{X: c.X, Y: c.Y - s},
				{X: c.X - s, Y: c.Y},
			},
		}
	case flowchart.TypeInputOutput:
		off := w / 6
		return Shape{
			Family: Parallelogram,
			Center: c,
			Width:  w + off,
			Height: h,
			Points: []flowchart.Point{
				{X: x + off, Y: y},
				{X: x + w + off, Y: y},
				{X: x + w, Y: y + h},
				{X: x, Y: y + h},
			},
		}
	default:
		return Shape{
			Family: Rectangle,
			Center: c,
			Width:  w,
			Height: h,
			Points: []flowchart.Point{
				{X: x, Y: y},
				{X: x + w, Y: y},
				{X: x + w, Y: y + h},
				{X: x, Y: y + h},
			},
		}
	}
}

const ellipseSegments = 48

// Outline returns the closed outline of the shape as a polygon. Ellipses are
// approximated with evenly spaced points.
func (s Shape) Outline() []flowchart.Point {
	if s.Family != Ellipse {
		return append([]flowchart.Point(nil), s.Points...)
	}
	out := make([]flowchart.Point, ellipseSegments)
	rx, ry := s.Width/2, s.Height/2
	for i := range out {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		out[i] = flowchart.Point{X: s.Center.X + rx*math.Cos(a), Y: s.Center.Y + ry*math.Sin(a)}
	}
	return out
}

// Bounds returns the lower-left and upper-right corners of the outline.
func (s Shape) Bounds() (min, max flowchart.Point) {
	pts := s.Outline()
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
		max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
	}
	return min, max
}
