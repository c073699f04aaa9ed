// Package sink encodes a [diagram.Scene] as SVG, PNG or PDF.
//
// All three formats share one frame: diagram units are scaled to pixels
// (800 per unit across, 960 per unit down, the proportions of a 10 by 12
// inch page) and the y axis is flipped so that larger y values are drawn
// higher up.
//
// SVG is written by hand. PNG is rasterised in-process with fogleman/gg and
// the Go Regular font, so it needs no external tools. PDF converts the SVG
// with rsvg-convert via [render.ToPDF].
//
// [diagram.Scene]: github.com/matzehuels/codeflow/pkg/render/diagram
// [render.ToPDF]: github.com/matzehuels/codeflow/pkg/render
package sink
