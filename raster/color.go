package raster

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/oksvg"
)

var rgbFuncRe = regexp.MustCompile(`^rgb\(\s*[^,()]+,\s*[^,()]+,\s*[^,()]+\)$`)

// ParseColor accepts #rgb, #rrggbb, SVG colour names, rgb(r,g,b) and
// none/transparent.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return nil, fmt.Errorf("%w: empty colour", ErrInvalidInput)
	case strings.ContainsAny(v, `"'<>&`):
		return nil, fmt.Errorf("%w: colour %q", ErrInvalidInput, s)
	case v == "none" || v == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(v)
		if err != nil {
			return nil, fmt.Errorf("%w: colour %q: %v", ErrInvalidInput, s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	case strings.HasPrefix(v, "rgb(") && !rgbFuncRe.MatchString(v):
		// oksvg indexes into empty components
		return nil, fmt.Errorf("%w: colour %q", ErrInvalidInput, s)
	}

	c, err := oksvg.ParseSVGColor(v)
	if err != nil || c == nil {
		return nil, fmt.Errorf("%w: colour %q", ErrInvalidInput, s)
	}
	return c, nil
}

// SameColor reports whether a and b parse to the same RGBA value.
func SameColor(a, b string) bool {
	ca, err := ParseColor(a)
	if err != nil {
		return false
	}
	cb, err := ParseColor(b)
	if err != nil {
		return false
	}
	r1, g1, b1, a1 := ca.RGBA()
	r2, g2, b2, a2 := cb.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
