package sink

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"white":  {0xFF, 0xFF, 0xFF, 0xFF},
	"black":  {0x00, 0x00, 0x00, 0xFF},
	"green":  {0x00, 0x80, 0x00, 0xFF},
	"red":    {0xFF, 0x00, 0x00, 0xFF},
	"orange": {0xFF, 0xA5, 0x00, 0xFF},
	"gray":   {0x80, 0x80, 0x80, 0xFF},
	"grey":   {0x80, 0x80, 0x80, 0xFF},
}

// parseColor understands "#RGB", "#RRGGBB" and the named colours used by
// the built-in schemes.
func parseColor(s string) (color.NRGBA, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || hex == s {
		return color.NRGBA{}, fmt.Errorf("unsupported colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("unsupported colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a * 255)
	return c
}
