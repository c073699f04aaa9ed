package styles

import (
	"testing"

	"github.com/matzehuels/codeflow/pkg/flowchart"
)

func TestLookupScheme(t *testing.T) {
	for _, name := range SchemeNames {
		s, err := LookupScheme(name)
		if err != nil {
			t.Fatalf("LookupScheme(%q): %v", name, err)
		}
		if s.Name != name {
			t.Errorf("LookupScheme(%q).Name = %q", name, s.Name)
		}
		if s.True != "green" || s.False != "red" {
			t.Errorf("%s: branch colours = %q/%q, want green/red", name, s.True, s.False)
		}
		if s.Outline != "black" {
			t.Errorf("%s: outline = %q, want black", name, s.Outline)
		}
	}

	def, err := LookupScheme("")
	if err != nil || def.Name != DefaultScheme {
		t.Errorf("LookupScheme(\"\") = %q, %v; want %q", def.Name, err, DefaultScheme)
	}
	if _, err := LookupScheme("neon"); err == nil {
		t.Error("LookupScheme(neon) succeeded")
	}
}

func TestSchemeFill(t *testing.T) {
	s, _ := LookupScheme("standard")
	tests := []struct {
		typ  flowchart.NodeType
		want string
	}{
		{flowchart.TypeStartEnd, "#4CAF50"},
		{flowchart.TypeProcess, "#2196F3"},
		{flowchart.TypeDecision, "#FFC107"},
		{flowchart.TypeInputOutput, "#FF9800"},
		{"mystery", "#2196F3"},
	}
	for _, tt := range tests {
		if got := s.Fill(tt.typ); got != tt.want {
			t.Errorf("Fill(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestLookupTheme(t *testing.T) {
	for _, name := range ThemeNames {
		th, err := LookupTheme(name)
		if err != nil {
			t.Fatalf("LookupTheme(%q): %v", name, err)
		}
		if len(th.Nodes) != len(nodeOrder) {
			t.Errorf("%s: %d node colours, want %d", name, len(th.Nodes), len(nodeOrder))
		}
		if th.FontSize != 10 || th.Shape != "box" {
			t.Errorf("%s: font size %v shape %q", name, th.FontSize, th.Shape)
		}
	}
	if _, err := LookupTheme("solarized"); err == nil {
		t.Error("LookupTheme(solarized) succeeded")
	}
}

func TestThemeColors(t *testing.T) {
	dark, _ := LookupTheme("dark")
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"module", dark.NodeColor(flowchart.TypeModule), "#263238"},
		{"import_from", dark.NodeColor(flowchart.TypeImportFrom), "#311B92"},
		{"fallback", dark.NodeColor("pass"), "#424242"},
		{"true edge", dark.EdgeColor(flowchart.EdgeTrue), "#00C853"},
		{"exception edge", dark.EdgeColor(flowchart.EdgeException), "#FFAB40"},
		{"untyped edge", dark.EdgeColor(""), "#BDBDBD"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
