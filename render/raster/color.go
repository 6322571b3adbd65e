package raster

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrBadColor is returned for colours that are neither hex nor a known name.
var ErrBadColor = errors.New("raster: bad colour")

// ParseColor parses a CSS colour: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" or
// an SVG colour name such as "red" or "steelblue".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHex(hex, s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{c.R, c.G, c.B, c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

func parseHex(hex, orig string) (color.NRGBA, error) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	switch len(hex) {
	case 3:
		return color.NRGBA{nibble(v, 2), nibble(v, 1), nibble(v, 0), 0xff}, nil
	case 4:
		return color.NRGBA{nibble(v, 3), nibble(v, 2), nibble(v, 1), nibble(v, 0)}, nil
	case 6:
		return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
	case 8:
		return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
}

// nibble returns the i-th hex digit of v, counting from the right, expanded
// to a full byte.
func nibble(v uint64, i int) uint8 {
	return uint8(v>>(4*i)&0xf) * 0x11
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A) * a)
	return c
}
