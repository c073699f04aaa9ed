// Package flowchart provides the node/edge model shared by the Python parser,
// the hand-authored sample charts and every renderer.
//
// # Overview
//
// A [Flowchart] is an ordered list of [Node] values and an ordered list of
// [Edge] values. Order matters: node order is emission order, and the
// complexity heuristic ([Flowchart.IsComplex]) counts an edge as a loop when
// its target was emitted before its source.
//
// Nodes carry a [NodeType] drawn from one of two vocabularies:
//
//   - the construct vocabulary produced by the parser (module, function, if,
//     for, try, assign, ...), plus lowercase class names for constructs without
//     a dedicated rule (augassign, pass, with, ...)
//   - the shape vocabulary understood by the shape renderer: [TypeStartEnd],
//     [TypeProcess], [TypeDecision] and [TypeInputOutput]
//
// [Adapt] maps the first onto the second.
//
// # Building
//
// Parsers never assign ids by hand. A [Builder] hands out monotonically
// increasing ids starting at zero and records nodes and edges in call order:
//
//	b := flowchart.NewBuilder()
//	root := b.Allocate()
//	b.AddNode(root, flowchart.TypeModule, "Module")
//	child := b.Allocate()
//	b.Link(root, child, flowchart.EdgeNormal, "")
//	b.AddNode(child, flowchart.TypeAssign, "x = 1")
//	fc := b.Flowchart()
//
// The builder does not check edge endpoints. [Flowchart.Validate] does, and
// every renderer validates before drawing.
//
// # Coordinates
//
// Positions are in diagram units with the origin at the bottom left and y
// growing upwards. Hand-authored charts live on the unit square; charts placed
// by the layout package may use a larger [Canvas].
//
// # Definition Files
//
// [ReadJSON] and [ReadTOML] load hand-authored charts. Both validate the
// document against an embedded JSON Schema before decoding.
package flowchart
