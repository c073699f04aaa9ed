// Package styles holds the colour tables used by the renderers.
//
// A [Scheme] colours the geometric flowchart: one fill per shape family plus
// background, outline, text and arrow colours. A [Theme] colours the
// syntax-derived graph: one fill per construct type and one colour per edge
// kind.
//
// Both tables are looked up by name; [SchemeNames] and [ThemeNames] list the
// valid names in display order.
package styles
