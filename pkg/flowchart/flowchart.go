package flowchart

import (
	"errors"
	"fmt"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
)

var (
	// ErrDuplicateNodeID is returned by [Flowchart.Validate] when two nodes
	// share an id.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrEmptyLabel is returned by [Flowchart.Validate] for a node without a label.
	ErrEmptyLabel = errors.New("node label must not be empty")

	// ErrDanglingEdge is returned by [Flowchart.Validate] when an edge
	// references a node id that is not part of the chart.
	ErrDanglingEdge = errors.New("edge references unknown node")

	// ErrUnknownEdgeKind is returned by [Flowchart.Validate] for an edge kind
	// outside normal, true, false and exception.
	ErrUnknownEdgeKind = errors.New("unknown edge kind")

	// ErrUnplaced is returned by renderers that need positions when at least
	// one node has none.
	ErrUnplaced = errors.New("flowchart has unplaced nodes")
)

// NodeType tags a node with the construct it represents or the shape it
// should be drawn with.
type NodeType string

// Construct vocabulary emitted by the parser.
const (
	TypeModule     NodeType = "module"
	TypeFunction   NodeType = "function"
	TypeClass      NodeType = "class"
	TypeIf         NodeType = "if"
	TypeIfBody     NodeType = "if_body"
	TypeElseBody   NodeType = "else_body"
	TypeFor        NodeType = "for"
	TypeWhile      NodeType = "while"
	TypeTry        NodeType = "try"
	TypeTryBody    NodeType = "try_body"
	TypeExcept     NodeType = "except"
	TypeReturn     NodeType = "return"
	TypeAssign     NodeType = "assign"
	TypeExpr       NodeType = "expr"
	TypeImport     NodeType = "import"
	TypeImportFrom NodeType = "import_from"
)

// Shape vocabulary understood by the shape renderer.
const (
	TypeStartEnd    NodeType = "start_end"
	TypeProcess     NodeType = "process"
	TypeDecision    NodeType = "decision"
	TypeInputOutput NodeType = "input_output"
)

// IsShape reports whether t belongs to the shape vocabulary.
func (t NodeType) IsShape() bool {
	switch t {
	case TypeStartEnd, TypeProcess, TypeDecision, TypeInputOutput:
		return true
	}
	return false
}

// EdgeKind classifies an edge. The zero value means unclassified, which is
// what hand-authored charts use.
type EdgeKind string

const (
	EdgeNormal    EdgeKind = "normal"
	EdgeTrue      EdgeKind = "true"
	EdgeFalse     EdgeKind = "false"
	EdgeException EdgeKind = "exception"
)

// Valid reports whether k is the zero kind or one of the four known kinds.
func (k EdgeKind) Valid() bool {
	switch k {
	case "", EdgeNormal, EdgeTrue, EdgeFalse, EdgeException:
		return true
	}
	return false
}

// Point is a position in diagram units.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Node is a single vertex. Pos is nil until a layout assigns a position.
type Node struct {
	ID    int
	Type  NodeType
	Label string
	Pos   *Point
}

// Edge is a directed connection between two node ids.
type Edge struct {
	From int
	To   int
	Kind EdgeKind
	Text string
}

// Canvas is the drawable extent in diagram units.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// UnitCanvas is the canvas used by hand-authored charts.
var UnitCanvas = Canvas{Width: 1, Height: 1}

// Center returns the horizontal centre line of the canvas.
func (c Canvas) Center() float64 { return c.Width / 2 }

// Flowchart is an ordered node list and an ordered edge list.
type Flowchart struct {
	Nodes  []Node
	Edges  []Edge
	Canvas Canvas
}

// New returns an empty chart on the unit canvas.
func New() *Flowchart {
	return &Flowchart{Canvas: UnitCanvas}
}

// NodeCount returns the number of nodes.
func (f *Flowchart) NodeCount() int { return len(f.Nodes) }

// EdgeCount returns the number of edges.
func (f *Flowchart) EdgeCount() int { return len(f.Edges) }

// Node returns the node with the given id.
func (f *Flowchart) Node(id int) (Node, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Index maps node ids to their position in emission order.
func (f *Flowchart) Index() map[int]int {
	idx := make(map[int]int, len(f.Nodes))
	for i, n := range f.Nodes {
		if _, dup := idx[n.ID]; !dup {
			idx[n.ID] = i
		}
	}
	return idx
}

// Outgoing returns the edges leaving id, in emission order.
func (f *Flowchart) Outgoing(id int) []Edge {
	var out []Edge
	for _, e := range f.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// Placed reports whether every node has a position.
func (f *Flowchart) Placed() bool {
	for _, n := range f.Nodes {
		if n.Pos == nil {
			return false
		}
	}
	return true
}

// Validate checks structural integrity: unique ids, non-empty labels, known
// edge kinds and edges whose endpoints exist. Failures are reported as
// [cferrors.ErrCodeInvalidFlowchart] wrapping one of the sentinel errors.
func (f *Flowchart) Validate() error {
	seen := make(map[int]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		if seen[n.ID] {
			return invalid(fmt.Errorf("node %d: %w", n.ID, ErrDuplicateNodeID))
		}
		seen[n.ID] = true
		if n.Label == "" {
			return invalid(fmt.Errorf("node %d: %w", n.ID, ErrEmptyLabel))
		}
	}
	for _, e := range f.Edges {
		if !e.Kind.Valid() {
			return invalid(fmt.Errorf("edge %d -> %d: %w %q", e.From, e.To, ErrUnknownEdgeKind, e.Kind))
		}
		if !seen[e.From] {
			return invalid(fmt.Errorf("edge %d -> %d: %w %d", e.From, e.To, ErrDanglingEdge, e.From))
		}
		if !seen[e.To] {
			return invalid(fmt.Errorf("edge %d -> %d: %w %d", e.From, e.To, ErrDanglingEdge, e.To))
		}
	}
	return nil
}

func invalid(err error) error {
	return cferrors.Wrap(cferrors.ErrCodeInvalidFlowchart, err, "invalid flowchart")
}

// DecisionCount returns the number of decision nodes.
func (f *Flowchart) DecisionCount() int {
	n := 0
	for _, node := range f.Nodes {
		if node.Type == TypeDecision {
			n++
		}
	}
	return n
}

// BackEdgeCount returns the number of edges whose target precedes their
// source in emission order. Edges with an unknown endpoint count as index 0.
func (f *Flowchart) BackEdgeCount() int {
	idx := f.Index()
	loops := 0
	for _, e := range f.Edges {
		if idx[e.To] < idx[e.From] {
			loops++
		}
	}
	return loops
}

// Complexity thresholds. Exceeding any one of them selects compact sizing.
const (
	MaxSimpleNodes     = 10
	MaxSimpleDecisions = 3
	MaxSimpleLoops     = 1
)

// IsComplex reports whether the chart should be drawn with compact shapes:
// more than ten nodes, more than three decisions or more than one back-edge.
func (f *Flowchart) IsComplex() bool {
	if len(f.Nodes) > MaxSimpleNodes {
		return true
	}
	if f.DecisionCount() > MaxSimpleDecisions {
		return true
	}
	return f.BackEdgeCount() > MaxSimpleLoops
}

// Clone returns a deep copy of f.
func (f *Flowchart) Clone() *Flowchart {
	out := &Flowchart{
		Nodes:  make([]Node, len(f.Nodes)),
		Edges:  make([]Edge, len(f.Edges)),
		Canvas: f.Canvas,
	}
	for i, n := range f.Nodes {
		if n.Pos != nil {
			p := *n.Pos
			n.Pos = &p
		}
		out.Nodes[i] = n
	}
	copy(out.Edges, f.Edges)
	return out
}
