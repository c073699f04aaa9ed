package diagram

import (
	"math"

	"github.com/matzehuels/codeflow/pkg/flowchart"
)

const (
	alignTolerance  = 0.05 // offsets below this count as aligned
	attachNear      = 0.04 // vertical clearance for ellipses, boxes and parallelograms
	attachFar       = 0.08 // vertical clearance for diamonds, horizontal clearance for all
	loopDrop        = 0.05 // how far a loop-back drops below its start before turning
	loopColumnSlack = 0.1  // loop sources must sit this far right of the centre column
	columnEpsilon   = 1e-9
)

// RouteKind names the rule that produced a route.
type RouteKind string

const (
	RouteVertical   RouteKind = "vertical"
	RouteHorizontal RouteKind = "horizontal"
	RouteLoopBack   RouteKind = "loop_back"
	RouteDiagonal   RouteKind = "diagonal"
)

// Endpoint is the type and centre of one end of a connector.
type Endpoint struct {
	Type   flowchart.NodeType
	Center flowchart.Point
}

// Route is a polyline from the source attach point to the arrow head.
type Route struct {
	Kind   RouteKind
	Points []flowchart.Point
}

// Start returns the first point of the route.
func (r Route) Start() flowchart.Point { return r.Points[0] }

// End returns the arrow head position.
func (r Route) End() flowchart.Point { return r.Points[len(r.Points)-1] }

// Midpoint returns the point halfway between the start and the end.
func (r Route) Midpoint() flowchart.Point {
	s, e := r.Start(), r.End()
	return flowchart.Point{X: (s.X + e.X) / 2, Y: (s.Y + e.Y) / 2}
}

func verticalClearance(t flowchart.NodeType) float64 {
	if t == flowchart.TypeDecision {
		return attachFar
	}
	return attachNear
}

// Connect routes an arrow from src to dst on the given canvas.
func Connect(src, dst Endpoint, canvas flowchart.Canvas) Route {
	s, t := src.Center, dst.Center
	dx, dy := math.Abs(t.X-s.X), math.Abs(t.Y-s.Y)
	vertical := dy > dx

	switch {
	case vertical && dx < alignTolerance:
		cs, ct := verticalClearance(src.Type), verticalClearance(dst.Type)
		if s.Y > t.Y {
			cs, ct = -cs, -ct
		}
		return Route{Kind: RouteVertical, Points: []flowchart.Point{
			{X: s.X, Y: s.Y + cs},
			{X: t.X, Y: t.Y - ct},
		}}

	case !vertical && dy < alignTolerance:
		c := attachFar
		if s.X > t.X {
			c = -c
		}
		return Route{Kind: RouteHorizontal, Points: []flowchart.Point{
			{X: s.X + c, Y: s.Y},
			{X: t.X - c, Y: t.Y},
		}}

	case isLoopBack(s, t, canvas):
		start := flowchart.Point{X: s.X, Y: s.Y - attachNear}
		turn := start.Y - loopDrop
		return Route{Kind: RouteLoopBack, Points: []flowchart.Point{
			start,
			{X: s.X, Y: turn},
			{X: t.X, Y: turn},
			{X: t.X, Y: t.Y - attachFar},
		}}

	case src.Type == flowchart.TypeDecision && t.X > s.X:
		return Route{Kind: RouteDiagonal, Points: []flowchart.Point{
			{X: s.X + attachFar, Y: s.Y},
			{X: t.X - attachFar, Y: t.Y},
		}}

	case src.Type == flowchart.TypeDecision && t.X < s.X:
		return Route{Kind: RouteDiagonal, Points: []flowchart.Point{
			{X: s.X - attachFar, Y: s.Y},
			{X: t.X + attachFar, Y: t.Y},
		}}

	default:
		return Route{Kind: RouteDiagonal, Points: []flowchart.Point{s, t}}
	}
}

// isLoopBack reports whether an edge returns from a right-hand branch to a
// node higher up on the centre column.
func isLoopBack(s, t flowchart.Point, canvas flowchart.Canvas) bool {
	centre := canvas.Center()
	return s.X > centre+loopColumnSlack &&
		math.Abs(t.X-centre) < columnEpsilon &&
		s.Y < t.Y
}
