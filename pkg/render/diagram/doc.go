// Package diagram computes the geometry of a placed flowchart.
//
// Coordinates are diagram units with the y axis pointing up, so a chart on
// the unit canvas runs from (0, 0) at the bottom left to (1, 1) at the top
// right. Renderers in [github.com/matzehuels/codeflow/pkg/render/sink] flip
// the axis when they draw.
//
// # Shapes
//
// [ShapeFor] maps a shape type to one of four families: start_end is an
// ellipse, decision a diamond, input_output a parallelogram whose bottom edge
// is shifted right by a sixth of its width, and everything else a rectangle.
// Sizes come from a [Preset]; complex charts use the smaller [Compact] preset.
//
// # Connectors
//
// [Connect] chooses the attach points of an arrow. Rules are tried in order:
// near-vertical, near-horizontal, loop back to the centre column, diagonal.
// The first rule that applies wins.
//
// # Scenes
//
// [Build] combines shapes, routes, edge labels and a colour scheme into a
// [Scene] that a sink can draw without further decisions.
package diagram
