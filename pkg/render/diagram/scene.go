package diagram

import (
	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/render/styles"
)

const (
	labelLift     = 0.02
	labelFontSize = 9
)

// Box is a node ready to draw.
type Box struct {
	ID    int
	Type  flowchart.NodeType
	Label string
	Shape Shape
	Fill  string
}

// Arrow is an edge ready to draw.
type Arrow struct {
	From, To int
	Route    Route
}

// Label is edge text placed next to its arrow.
type Label struct {
	Text  string
	At    flowchart.Point
	Color string
}

// Scene is the complete geometry of one chart.
type Scene struct {
	Canvas    flowchart.Canvas
	Complex   bool
	FontSize  float64 // node text
	LabelSize float64 // edge labels
	Scheme    styles.Scheme
	Boxes     []Box
	Arrows    []Arrow
	Labels    []Label
}

// Build lays out shapes, routes and labels for a placed chart. The chart is
// validated first; a chart with unplaced nodes is rejected with
// [flowchart.ErrUnplaced].
func Build(fc *flowchart.Flowchart, scheme styles.Scheme) (*Scene, error) {
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	if !fc.Placed() {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidFlowchart, flowchart.ErrUnplaced, "cannot draw flowchart")
	}

	isComplex := fc.IsComplex()
	sc := &Scene{
		Canvas:    fc.Canvas,
		Complex:   isComplex,
		FontSize:  10,
		LabelSize: labelFontSize,
		Scheme:    scheme,
		Boxes:     make([]Box, 0, len(fc.Nodes)),
		Arrows:    make([]Arrow, 0, len(fc.Edges)),
	}
	if isComplex {
		sc.FontSize = 8
	}
	if sc.Canvas.Width <= 0 || sc.Canvas.Height <= 0 {
		sc.Canvas = flowchart.UnitCanvas
	}

	for _, n := range fc.Nodes {
		sc.Boxes = append(sc.Boxes, Box{
			ID:    n.ID,
			Type:  n.Type,
			Label: n.Label,
			Shape: ShapeFor(n.Type, *n.Pos, isComplex),
			Fill:  scheme.Fill(n.Type),
		})
	}

	idx := fc.Index()
	for _, e := range fc.Edges {
		src, dst := fc.Nodes[idx[e.From]], fc.Nodes[idx[e.To]]
		r := Connect(Endpoint{src.Type, *src.Pos}, Endpoint{dst.Type, *dst.Pos}, sc.Canvas)
		sc.Arrows = append(sc.Arrows, Arrow{From: e.From, To: e.To, Route: r})
		if l, ok := edgeLabel(e, src, dst, r, scheme); ok {
			sc.Labels = append(sc.Labels, l)
		}
	}
	return sc, nil
}

// edgeLabel places the text of an edge. Branches leaving a decision are
// coloured by outcome, or by direction when the edge has no kind: to the
// right means taken.
func edgeLabel(e flowchart.Edge, src, dst flowchart.Node, r Route, scheme styles.Scheme) (Label, bool) {
	if e.Text == "" || r.Kind == RouteLoopBack {
		return Label{}, false
	}
	at := r.Midpoint().Add(0, labelLift)

	color := scheme.Arrow
	if src.Type == flowchart.TypeDecision {
		switch {
		case e.Kind == flowchart.EdgeTrue:
			color = scheme.True
		case e.Kind == flowchart.EdgeFalse:
			color = scheme.False
		case dst.Pos.X > src.Pos.X:
			color = scheme.True
		default:
			color = scheme.False
		}
	}
	return Label{Text: e.Text, At: at, Color: color}, true
}
