package styles

import (
	"fmt"
	"slices"

	"github.com/matzehuels/codeflow/pkg/flowchart"
)

// DefaultTheme is used when no theme is requested.
const DefaultTheme = "default"

// Theme is the palette for the syntax-derived graph.
type Theme struct {
	Name       string
	Background string
	Font       string
	FontSize   float64
	Shape      string // Graphviz node shape
	Nodes      map[flowchart.NodeType]string
	Node       string // fill for construct types without an entry
	Edges      map[flowchart.EdgeKind]string
	Edge       string // colour for edges without a kind
}

// NodeColor returns the fill for a construct type.
func (t Theme) NodeColor(typ flowchart.NodeType) string {
	if c, ok := t.Nodes[typ]; ok {
		return c
	}
	return t.Node
}

// EdgeColor returns the colour for an edge kind.
func (t Theme) EdgeColor(k flowchart.EdgeKind) string {
	if c, ok := t.Edges[k]; ok {
		return c
	}
	return t.Edge
}

// nodeOrder fixes the construct order of the palette rows below; the last
// colour of each row is the fallback.
var nodeOrder = []flowchart.NodeType{
	flowchart.TypeModule,
	flowchart.TypeFunction,
	flowchart.TypeClass,
	flowchart.TypeIf,
	flowchart.TypeFor,
	flowchart.TypeWhile,
	flowchart.TypeTry,
	flowchart.TypeExcept,
	flowchart.TypeReturn,
	flowchart.TypeAssign,
	flowchart.TypeExpr,
	flowchart.TypeImport,
	flowchart.TypeImportFrom,
}

func newTheme(name, background, font string, nodes []string, edges [5]string) Theme {
	t := Theme{
		Name:       name,
		Background: background,
		Font:       font,
		FontSize:   10,
		Shape:      "box",
		Nodes:      make(map[flowchart.NodeType]string, len(nodeOrder)),
		Node:       nodes[len(nodes)-1],
		Edges: map[flowchart.EdgeKind]string{
			flowchart.EdgeNormal:    edges[0],
			flowchart.EdgeTrue:      edges[1],
			flowchart.EdgeFalse:     edges[2],
			flowchart.EdgeException: edges[3],
		},
		Edge: edges[4],
	}
	for i, typ := range nodeOrder {
		t.Nodes[typ] = nodes[i]
	}
	return t
}

var themes = map[string]Theme{
	"default": newTheme("default", "white", "black",
		[]string{"#E0F7FA", "#B3E5FC", "#BBDEFB", "#C8E6C9", "#DCEDC8", "#F0F4C3", "#FFF9C4",
			"#FFECB3", "#FFCCBC", "#D7CCC8", "#F5F5F5", "#E1BEE7", "#D1C4E9", "#EEEEEE"},
		[5]string{"black", "green", "red", "orange", "gray"}),
	"dark": newTheme("dark", "#2D2D2D", "white",
		[]string{"#263238", "#1A237E", "#0D47A1", "#1B5E20", "#33691E", "#F57F17", "#FF6F00",
			"#E65100", "#BF360C", "#3E2723", "#212121", "#4A148C", "#311B92", "#424242"},
		[5]string{"white", "#00C853", "#FF5252", "#FFAB40", "#BDBDBD"}),
	"light": newTheme("light", "#FAFAFA", "black",
		[]string{"#ECEFF1", "#E3F2FD", "#E8EAF6", "#E8F5E9", "#F1F8E9", "#FFFDE7", "#FFF8E1",
			"#FFF3E0", "#FBE9E7", "#EFEBE9", "#FAFAFA", "#F3E5F5", "#EDE7F6", "#F5F5F5"},
		[5]string{"#424242", "#2E7D32", "#C62828", "#EF6C00", "#9E9E9E"}),
	"colorful": newTheme("colorful", "white", "black",
		[]string{"#E1F5FE", "#B39DDB", "#90CAF9", "#80CBC4", "#A5D6A7", "#FFF59D", "#FFE082",
			"#FFAB91", "#EF9A9A", "#CE93D8", "#80DEEA", "#9FA8DA", "#81D4FA", "#B0BEC5"},
		[5]string{"#5D4037", "#00897B", "#D32F2F", "#FF7043", "#616161"}),
}

// ThemeNames lists the theme names in display order.
var ThemeNames = []string{"default", "dark", "light", "colorful"}

// LookupTheme returns the named theme. An empty name selects [DefaultTheme].
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (valid: %v)", name, ThemeNames)
	}
	return t, nil
}

// IsTheme reports whether name is a known theme.
func IsTheme(name string) bool { return slices.Contains(ThemeNames, name) }
