// Package fonts provides the font used to draw flowchart text.
//
// The Go Regular TrueType font ships with golang.org/x/image, so raster
// output looks the same on every machine without a system font lookup.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family used in SVG output.
const FontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once

	bold     *truetype.Font
	boldErr  error
	boldOnce sync.Once
)

// RegularTTF returns the raw TrueType data of Go Regular.
func RegularTTF() []byte {
	return goregular.TTF
}

// Regular returns the parsed Go Regular font. The font is parsed once on
// first use.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Bold returns the parsed Go Bold font, used for edge labels.
func Bold() (*truetype.Font, error) {
	boldOnce.Do(func() {
		bold, boldErr = truetype.Parse(gobold.TTF)
	})
	return bold, boldErr
}

// Face returns a Go Regular face of the given size. At 72 DPI one point is
// one pixel.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return newFace(f, size), nil
}

// BoldFace returns a Go Bold face of the given size.
func BoldFace(size float64) (font.Face, error) {
	f, err := Bold()
	if err != nil {
		return nil, err
	}
	return newFace(f, size), nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
}
