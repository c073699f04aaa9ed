package sink

import (
	"context"

	"github.com/matzehuels/codeflow/pkg/render"
	"github.com/matzehuels/codeflow/pkg/render/diagram"
)

// RenderPDF draws the scene as a single-page PDF the size of the SVG frame.
// The SVG options apply to the intermediate document, so a title set with
// [WithTitle] becomes the PDF title. Conversion needs rsvg-convert; without
// it the error carries the UNSUPPORTED code.
func RenderPDF(ctx context.Context, sc *diagram.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(sc, opts...))
}
