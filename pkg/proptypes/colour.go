package proptypes

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Colour is a colour property stored as color.RGBA. Incoming values may be
// any color.Color, an SVG 1.1 colour name ("red", "slategray"), or a hex
// string ("#rgb", "#rrggbb", "#rrggbbaa").
type Colour struct {
	// Def is the default value.
	Def color.RGBA
}

func (k Colour) Cast(_ any, value any) (any, error) {
	switch v := value.(type) {
	case color.RGBA:
		return v, nil
	case color.Color:
		r, g, b, a := v.RGBA()
		return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}, nil
	case string:
		return parseColour(v)
	}
	return nil, fmt.Errorf("not a colour: %v (%T)", value, value)
}

func (k Colour) Validate(any, any) error {
	return nil
}

func (k Colour) Default() any {
	return k.Def
}

func parseColour(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") {
		return color.RGBA{}, fmt.Errorf("unknown colour name: %q", s)
	}

	hex := name[1:]
	var r, g, b, a uint8
	a = 0xff
	switch len(hex) {
	case 3:
		rv, okR := hexNibble(hex[0])
		gv, okG := hexNibble(hex[1])
		bv, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return color.RGBA{}, fmt.Errorf("malformed hex colour: %q", s)
		}
		r, g, b = rv*0x11, gv*0x11, bv*0x11
	case 8:
		av, ok := hexByte(hex[6], hex[7])
		if !ok {
			return color.RGBA{}, fmt.Errorf("malformed hex colour: %q", s)
		}
		a = av
		fallthrough
	case 6:
		rv, okR := hexByte(hex[0], hex[1])
		gv, okG := hexByte(hex[2], hex[3])
		bv, okB := hexByte(hex[4], hex[5])
		if !okR || !okG || !okB {
			return color.RGBA{}, fmt.Errorf("malformed hex colour: %q", s)
		}
		r, g, b = rv, gv, bv
	default:
		return color.RGBA{}, fmt.Errorf("malformed hex colour: %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, okH := hexNibble(hi)
	l, okL := hexNibble(lo)
	return h<<4 | l, okH && okL
}
