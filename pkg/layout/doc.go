// Package layout assigns positions to flowcharts that have none.
//
// Charts produced by the Python parser carry structure but no coordinates.
// [Place] puts every node on a grid in diagram units with the y axis
// pointing up:
//
//  1. Rows come from longest-path layering over forward edges, so a node
//     sits one row below the deepest of its parents. Edges that point back
//     to an earlier node, such as loop returns, are ignored for layering.
//  2. Within a row nodes start at the mean x of their parents and are then
//     swept left to right so that neighbours keep at least one shape width
//     plus a gap between them.
//  3. Row 0 is at the top. The canvas grows beyond the unit square when the
//     chart needs more room.
//
// Spacing follows the shape preset the renderer will use, so a complex chart
// is packed more tightly.
package layout
