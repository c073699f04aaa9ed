package flowchart

// Builder accumulates nodes and edges for a single parse. A fresh builder
// starts its ids at zero; builders are never shared between parses.
//
// Builder is not safe for concurrent use.
type Builder struct {
	next  int
	nodes []Node
	edges []Edge
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Allocate returns the next unused id.
func (b *Builder) Allocate() int {
	id := b.next
	b.next++
	return id
}

// AddNode appends a node. The caller is responsible for passing an id
// obtained from [Builder.Allocate].
func (b *Builder) AddNode(id int, typ NodeType, label string) {
	b.nodes = append(b.nodes, Node{ID: id, Type: typ, Label: label})
}

// Link appends an edge. Endpoints are not checked and duplicates are kept.
func (b *Builder) Link(from, to int, kind EdgeKind, text string) {
	b.edges = append(b.edges, Edge{From: from, To: to, Kind: kind, Text: text})
}

// Flowchart returns the accumulated chart on the unit canvas. The builder
// keeps no reference to the returned slices.
func (b *Builder) Flowchart() *Flowchart {
	fc := &Flowchart{
		Nodes:  make([]Node, len(b.nodes)),
		Edges:  make([]Edge, len(b.edges)),
		Canvas: UnitCanvas,
	}
	copy(fc.Nodes, b.nodes)
	copy(fc.Edges, b.edges)
	return fc
}
