package diagram

import (
	"errors"
	"math"
	"testing"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/render/styles"
	"github.com/matzehuels/codeflow/pkg/samples"
)

const eps = 1e-9

func near(a, b flowchart.Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func pt(x, y float64) flowchart.Point { return flowchart.Point{X: x, Y: y} }

func TestDiamondVertices(t *testing.T) {
	s := ShapeFor(flowchart.TypeDecision, pt(0.5, 0.5), false)
	if s.Family != Diamond {
		t.Fatalf("Family = %q, want diamond", s.Family)
	}
	want := []flowchart.Point{pt(0.5, 0.58), pt(0.58, 0.5), pt(0.5, 0.42), pt(0.42, 0.5)}
	for i, p := range want {
		if !near(s.Points[i], p) {
			t.Errorf("vertex %d = %+v, want %+v", i, s.Points[i], p)
		}
	}

	compact := ShapeFor(flowchart.TypeDecision, pt(0.5, 0.5), true)
	if !near(compact.Points[0], pt(0.5, 0.56)) {
		t.Errorf("compact top vertex = %+v, want (0.5, 0.56)", compact.Points[0])
	}
}

func TestShapeFamilies(t *testing.T) {
	tests := []struct {
		typ  flowchart.NodeType
		want Family
	}{
		{flowchart.TypeStartEnd, Ellipse},
		{flowchart.TypeProcess, Rectangle},
		{flowchart.TypeDecision, Diamond},
		{flowchart.TypeInputOutput, Parallelogram},
		{"function", Rectangle},
	}
	for _, tt := range tests {
		if got := ShapeFor(tt.typ, pt(0.5, 0.5), false).Family; got != tt.want {
			t.Errorf("ShapeFor(%q).Family = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestParallelogramOffset(t *testing.T) {
	s := ShapeFor(flowchart.TypeInputOutput, pt(0.5, 0.5), false)
	off := Normal.Width / 6
	want := []flowchart.Point{
		pt(0.42+off, 0.46),
		pt(0.58+off, 0.46),
		pt(0.58, 0.54),
		pt(0.42, 0.54),
	}
	for i, p := range want {
		if !near(s.Points[i], p) {
			t.Errorf("vertex %d = %+v, want %+v", i, s.Points[i], p)
		}
	}
}

func TestEllipseOutline(t *testing.T) {
	s := ShapeFor(flowchart.TypeStartEnd, pt(0.5, 0.5), false)
	lo, hi := s.Bounds()
	if !near(lo, pt(0.42, 0.46)) || !near(hi, pt(0.58, 0.54)) {
		t.Errorf("Bounds() = %+v %+v, want (0.42,0.46) (0.58,0.54)", lo, hi)
	}
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name string
		src  Endpoint
		dst  Endpoint
		kind RouteKind
		want []flowchart.Point
	}{
		{
			name: "vertical down",
			src:  Endpoint{flowchart.TypeProcess, pt(0.5, 0.7)},
			dst:  Endpoint{flowchart.TypeProcess, pt(0.5, 0.5)},
			kind: RouteVertical,
			want: []flowchart.Point{pt(0.5, 0.66), pt(0.5, 0.54)},
		},
		{
			name: "vertical into decision",
			src:  Endpoint{flowchart.TypeProcess, pt(0.5, 0.7)},
			dst:  Endpoint{flowchart.TypeDecision, pt(0.5, 0.5)},
			kind: RouteVertical,
			want: []flowchart.Point{pt(0.5, 0.66), pt(0.5, 0.58)},
		},
		{
			name: "vertical up from decision",
			src:  Endpoint{flowchart.TypeDecision, pt(0.5, 0.3)},
			dst:  Endpoint{flowchart.TypeStartEnd, pt(0.5, 0.6)},
			kind: RouteVertical,
			want: []flowchart.Point{pt(0.5, 0.38), pt(0.5, 0.56)},
		},
		{
			name: "horizontal right",
			src:  Endpoint{flowchart.TypeDecision, pt(0.5, 0.5)},
			dst:  Endpoint{flowchart.TypeProcess, pt(0.7, 0.5)},
			kind: RouteHorizontal,
			want: []flowchart.Point{pt(0.58, 0.5), pt(0.62, 0.5)},
		},
		{
			name: "horizontal left",
			src:  Endpoint{flowchart.TypeDecision, pt(0.5, 0.5)},
			dst:  Endpoint{flowchart.TypeStartEnd, pt(0.3, 0.5)},
			kind: RouteHorizontal,
			want: []flowchart.Point{pt(0.42, 0.5), pt(0.38, 0.5)},
		},
		{
			name: "loop back",
			src:  Endpoint{flowchart.TypeProcess, pt(0.75, 0.31)},
			dst:  Endpoint{flowchart.TypeDecision, pt(0.5, 0.63)},
			kind: RouteLoopBack,
			want: []flowchart.Point{pt(0.75, 0.27), pt(0.75, 0.22), pt(0.5, 0.22), pt(0.5, 0.55)},
		},
		{
			name: "decision diagonal right",
			src:  Endpoint{flowchart.TypeDecision, pt(0.5, 0.5)},
			dst:  Endpoint{flowchart.TypeProcess, pt(0.75, 0.3)},
			kind: RouteDiagonal,
			want: []flowchart.Point{pt(0.58, 0.5), pt(0.67, 0.3)},
		},
		{
			name: "decision diagonal left",
			src:  Endpoint{flowchart.TypeDecision, pt(0.5, 0.31)},
			dst:  Endpoint{flowchart.TypeInputOutput, pt(0.25, 0.23)},
			kind: RouteDiagonal,
			want: []flowchart.Point{pt(0.42, 0.31), pt(0.33, 0.23)},
		},
		{
			name: "centre to centre",
			src:  Endpoint{flowchart.TypeProcess, pt(0.75, 0.55)},
			dst:  Endpoint{flowchart.TypeInputOutput, pt(0.5, 0.05)},
			kind: RouteDiagonal,
			want: []flowchart.Point{pt(0.75, 0.55), pt(0.5, 0.05)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Connect(tt.src, tt.dst, flowchart.UnitCanvas)
			if r.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", r.Kind, tt.kind)
			}
			if len(r.Points) != len(tt.want) {
				t.Fatalf("Points = %+v, want %+v", r.Points, tt.want)
			}
			for i := range tt.want {
				if !near(r.Points[i], tt.want[i]) {
					t.Errorf("point %d = %+v, want %+v", i, r.Points[i], tt.want[i])
				}
			}
		})
	}
}

func TestConnectLoopBackFollowsCanvasCentre(t *testing.T) {
	wide := flowchart.Canvas{Width: 2, Height: 1}
	r := Connect(
		Endpoint{flowchart.TypeProcess, pt(1.3, 0.2)},
		Endpoint{flowchart.TypeProcess, pt(1.0, 0.6)},
		wide,
	)
	if r.Kind != RouteLoopBack {
		t.Errorf("Kind = %q on a wide canvas, want loop_back", r.Kind)
	}
}

func TestBuildSimpleSample(t *testing.T) {
	fc, err := samples.Get("simple")
	if err != nil {
		t.Fatal(err)
	}
	scheme, _ := styles.LookupScheme("standard")
	sc, err := Build(fc, scheme)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if sc.Complex || sc.FontSize != 10 {
		t.Errorf("Complex = %v FontSize = %v, want simple chart at 10pt", sc.Complex, sc.FontSize)
	}
	if len(sc.Boxes) != fc.NodeCount() || len(sc.Arrows) != fc.EdgeCount() {
		t.Fatalf("scene has %d boxes / %d arrows", len(sc.Boxes), len(sc.Arrows))
	}
	if sc.Boxes[3].Fill != "#FFC107" {
		t.Errorf("decision fill = %q", sc.Boxes[3].Fill)
	}

	if len(sc.Labels) != 2 {
		t.Fatalf("Labels = %+v, want Yes and No", sc.Labels)
	}
	yes, no := sc.Labels[0], sc.Labels[1]
	if yes.Text != "Yes" || yes.Color != "green" {
		t.Errorf("yes label = %+v", yes)
	}
	if no.Text != "No" || no.Color != "red" {
		t.Errorf("no label = %+v", no)
	}
	// 3 -> 4 runs horizontally from (0.58, 0.5) to (0.62, 0.5).
	if !near(yes.At, pt(0.6, 0.52)) {
		t.Errorf("yes label at %+v, want (0.6, 0.52)", yes.At)
	}
}

func TestBuildLabelColoursFollowKind(t *testing.T) {
	fc := &flowchart.Flowchart{
		Canvas: flowchart.UnitCanvas,
		Nodes: []flowchart.Node{
			{ID: 0, Type: flowchart.TypeDecision, Label: "x", Pos: &flowchart.Point{X: 0.5, Y: 0.8}},
			{ID: 1, Type: flowchart.TypeProcess, Label: "left", Pos: &flowchart.Point{X: 0.2, Y: 0.4}},
			{ID: 2, Type: flowchart.TypeProcess, Label: "after", Pos: &flowchart.Point{X: 0.2, Y: 0.1}},
		},
		Edges: []flowchart.Edge{
			{From: 0, To: 1, Kind: flowchart.EdgeTrue, Text: "True"},
			{From: 1, To: 2, Text: "then"},
		},
	}
	scheme, _ := styles.LookupScheme("pastel")
	sc, err := Build(fc, scheme)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Labels[0].Color != "green" {
		t.Errorf("true branch to the left = %q, want green", sc.Labels[0].Color)
	}
	if sc.Labels[1].Color != scheme.Arrow {
		t.Errorf("plain edge label = %q, want arrow colour %q", sc.Labels[1].Color, scheme.Arrow)
	}
}

func TestBuildComplexUsesCompactPreset(t *testing.T) {
	fc, _ := samples.Get("bubble-sort")
	scheme, _ := styles.LookupScheme("")
	sc, err := Build(fc, scheme)
	if err != nil {
		t.Fatal(err)
	}
	if !sc.Complex || sc.FontSize != 8 {
		t.Errorf("Complex = %v FontSize = %v, want complex chart at 8pt", sc.Complex, sc.FontSize)
	}
	if w := sc.Boxes[0].Shape.Width; math.Abs(w-Compact.Width) > eps {
		t.Errorf("start width = %v, want %v", w, Compact.Width)
	}
	for _, a := range sc.Arrows {
		if a.From == 9 && a.To == 6 && a.Route.Kind != RouteVertical {
			t.Errorf("9 -> 6 routed %q, want vertical", a.Route.Kind)
		}
	}
}

func TestBuildRejectsUnplaced(t *testing.T) {
	b := flowchart.NewBuilder()
	b.AddNode(b.Allocate(), flowchart.TypeModule, "Module")
	_, err := Build(b.Flowchart(), styles.Scheme{})
	if !errors.Is(err, flowchart.ErrUnplaced) {
		t.Errorf("Build(unplaced) error = %v, want ErrUnplaced", err)
	}
	if !cferrors.Is(err, cferrors.ErrCodeInvalidFlowchart) {
		t.Errorf("code = %q, want INVALID_FLOWCHART", cferrors.GetCode(err))
	}
}
