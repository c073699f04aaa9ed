package flowchart

// shapeTypes is the construct-to-shape lookup. Anything missing maps to
// [TypeProcess].
var shapeTypes = map[NodeType]NodeType{
	TypeModule: TypeStartEnd,
	TypeIf:     TypeDecision,
}

// edgeTexts supplies display text for classified edges that carry none.
var edgeTexts = map[EdgeKind]string{
	EdgeTrue:      "True",
	EdgeFalse:     "False",
	EdgeException: "Exception",
}

// AdaptType maps a construct type to a shape type: module becomes start_end,
// if becomes decision, and every other type becomes process. Types already in
// the shape vocabulary are returned unchanged.
func AdaptType(t NodeType) NodeType {
	if t.IsShape() {
		return t
	}
	if s, ok := shapeTypes[t]; ok {
		return s
	}
	return TypeProcess
}

// Adapt returns a copy of f with node types remapped by [AdaptType]. Ids,
// labels, positions and edge order are preserved; classified edges without
// text get True, False or Exception.
func Adapt(f *Flowchart) *Flowchart {
	out := f.Clone()
	for i := range out.Nodes {
		out.Nodes[i].Type = AdaptType(out.Nodes[i].Type)
	}
	for i, e := range out.Edges {
		out.Edges[i].Text = EdgeText(e)
	}
	return out
}

// EdgeText returns the text to show for e: its own text, or True, False or
// Exception for classified edges without one.
func EdgeText(e Edge) string {
	if e.Text != "" {
		return e.Text
	}
	return edgeTexts[e.Kind]
}
