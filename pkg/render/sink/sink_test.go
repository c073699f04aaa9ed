package sink

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"strings"
	"testing"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/render"
	"github.com/matzehuels/codeflow/pkg/render/diagram"
	"github.com/matzehuels/codeflow/pkg/render/styles"
	"github.com/matzehuels/codeflow/pkg/samples"
)

func scene(t *testing.T, name, scheme string) *diagram.Scene {
	t.Helper()
	fc, err := samples.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	s, err := styles.LookupScheme(scheme)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := diagram.Build(fc, s)
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestRenderSVG(t *testing.T) {
	sc := scene(t, "simple", "standard")
	svg := string(RenderSVG(sc, WithTitle("simple & small")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.0 960.0"`) {
		t.Errorf("unexpected header: %.120s", svg)
	}
	if !strings.Contains(svg, "<title>simple &amp; small</title>") {
		t.Error("title missing or unescaped")
	}
	if got := strings.Count(svg, "<ellipse "); got != 2 {
		t.Errorf("ellipses = %d, want 2 (Start, Stop)", got)
	}
	if got := strings.Count(svg, `class="edge"`); got != len(sc.Arrows) {
		t.Errorf("edges = %d, want %d", got, len(sc.Arrows))
	}
	for _, want := range []string{">Yes</text>", ">No</text>", "c &lt; 5", `fill="#FFC107"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG lacks %q", want)
		}
	}
}

func TestRenderSVGOutlinesShapesInBlack(t *testing.T) {
	sc := scene(t, "simple", "standard")
	for _, line := range strings.Split(string(RenderSVG(sc)), "\n") {
		if !strings.Contains(line, "<ellipse ") && !strings.Contains(line, "<polygon ") {
			continue
		}
		if !strings.Contains(line, `stroke="black"`) {
			t.Errorf("shape outline not black: %s", strings.TrimSpace(line))
		}
	}
}

func TestRenderSVGFlipsYAxis(t *testing.T) {
	sc := scene(t, "simple", "standard")
	svg := string(RenderSVG(sc))
	// Start sits at y = 0.95, which is 0.05 * 960 = 48 px from the top.
	if !strings.Contains(svg, `id="node-0" cx="400.00" cy="48.00"`) {
		t.Errorf("Start ellipse not at the top of the image")
	}
}

func TestRenderPNG(t *testing.T) {
	sc := scene(t, "guessing-game", "pastel")
	data, err := RenderPNG(sc, WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 960 {
		t.Errorf("image size = %dx%d, want 800x960", b.Dx(), b.Dy())
	}
	// Pastel background in a corner.
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0xF5 || g>>8 != 0xF5 || b>>8 != 0xF5 {
		t.Errorf("corner colour = %02x%02x%02x, want F5F5F5", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNGDefaultScale(t *testing.T) {
	data, err := RenderPNG(scene(t, "simple", "monochrome"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1600 || cfg.Height != 1920 {
		t.Errorf("size = %dx%d, want 1600x1920", cfg.Width, cfg.Height)
	}
}

func TestRenderPNGIgnoresNonFiniteScale(t *testing.T) {
	for _, scale := range []float64{math.NaN(), math.Inf(1), -3} {
		data, err := RenderPNG(scene(t, "simple", "standard"), WithScale(scale))
		if err != nil {
			t.Fatalf("scale %g: %v", scale, err)
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Width != 800 || cfg.Height != 960 {
			t.Errorf("scale %g: size = %dx%d, want 800x960", scale, cfg.Width, cfg.Height)
		}
	}
}

func TestRenderPNGRejectsOversizedCanvas(t *testing.T) {
	sc := scene(t, "simple", "standard")
	sc.Canvas = flowchart.Canvas{Width: 100, Height: 100}
	_, err := RenderPNG(sc, WithScale(1))
	if !cferrors.Is(err, cferrors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestLabelAlphaByte(t *testing.T) {
	alpha := labelAlpha
	if want := uint8(math.Round(alpha * 255)); labelAlphaByte != want {
		t.Errorf("labelAlphaByte = %d, want %d", labelAlphaByte, want)
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.ConverterAvailable() {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPDF(context.Background(), scene(t, "calculator", "colorful"))
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]uint8
		wantErr bool
	}{
		{"#4CAF50", [3]uint8{0x4C, 0xAF, 0x50}, false},
		{"#fff", [3]uint8{0xFF, 0xFF, 0xFF}, false},
		{"white", [3]uint8{0xFF, 0xFF, 0xFF}, false},
		{"Green", [3]uint8{0x00, 0x80, 0x00}, false},
		{"4CAF50", [3]uint8{}, true},
		{"#12345", [3]uint8{}, true},
		{"chartreuse", [3]uint8{}, true},
	}
	for _, tt := range tests {
		c, err := parseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && [3]uint8{c.R, c.G, c.B} != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, c, tt.want)
		}
	}
}

func TestWrapLabel(t *testing.T) {
	tests := []struct {
		text string
		max  int
		want []string
	}{
		{"Start", 10, []string{"Start"}},
		{"Swap array[j] and array[j+1]", 12, []string{"Swap", "array[j] and", "array[j+1]"}},
		{"supercalifragilistic", 5, []string{"supercalifragilistic"}},
		{"", 5, []string{""}},
	}
	for _, tt := range tests {
		got := wrapLabel(tt.text, tt.max)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrapLabel(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
		}
	}
}
