package styles

import (
	"fmt"
	"slices"

	"github.com/matzehuels/codeflow/pkg/flowchart"
)

// DefaultScheme is used when no scheme is requested.
const DefaultScheme = "standard"

// Scheme is the palette for shape-based rendering.
type Scheme struct {
	Name        string
	Background  string
	StartEnd    string
	Process     string
	Decision    string
	InputOutput string
	Outline     string // shape border
	Text        string
	Arrow       string
	True        string // label colour of a taken branch
	False       string // label colour of a rejected branch
}

// Fill returns the fill colour for a shape type. Unknown types use the
// process colour.
func (s Scheme) Fill(t flowchart.NodeType) string {
	switch t {
	case flowchart.TypeStartEnd:
		return s.StartEnd
	case flowchart.TypeDecision:
		return s.Decision
	case flowchart.TypeInputOutput:
		return s.InputOutput
	default:
		return s.Process
	}
}

var schemes = map[string]Scheme{
	"standard": {
		Name:        "standard",
		Background:  "white",
		StartEnd:    "#4CAF50",
		Process:     "#2196F3",
		Decision:    "#FFC107",
		InputOutput: "#FF9800",
		Text:        "black",
		Arrow:       "black",
	},
	"pastel": {
		Name:        "pastel",
		Background:  "#F5F5F5",
		StartEnd:    "#A5D6A7",
		Process:     "#90CAF9",
		Decision:    "#FFE082",
		InputOutput: "#FFCC80",
		Text:        "#37474F",
		Arrow:       "#455A64",
	},
	"monochrome": {
		Name:        "monochrome",
		Background:  "white",
		StartEnd:    "#212121",
		Process:     "#424242",
		Decision:    "#616161",
		InputOutput: "#757575",
		Text:        "white",
		Arrow:       "black",
	},
	"colorful": {
		Name:        "colorful",
		Background:  "white",
		StartEnd:    "#4CAF50",
		Process:     "#2196F3",
		Decision:    "#FFC107",
		InputOutput: "#FF5722",
		Text:        "black",
		Arrow:       "#3F51B5",
	},
}

// SchemeNames lists the scheme names in display order.
var SchemeNames = []string{"standard", "pastel", "monochrome", "colorful"}

// LookupScheme returns the named scheme. An empty name selects
// [DefaultScheme].
func LookupScheme(name string) (Scheme, error) {
	if name == "" {
		name = DefaultScheme
	}
	s, ok := schemes[name]
	if !ok {
		return Scheme{}, fmt.Errorf("unknown scheme %q (valid: %v)", name, SchemeNames)
	}
	s.True, s.False = "green", "red"
	s.Outline = "black"
	return s, nil
}

// IsScheme reports whether name is a known scheme.
func IsScheme(name string) bool { return slices.Contains(SchemeNames, name) }
