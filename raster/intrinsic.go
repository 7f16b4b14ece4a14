package raster

import (
	"encoding/xml"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Geometry holds the sizing attributes of the root <svg> element. Zero
// fields were absent or not usable.
type Geometry struct {
	ViewBoxX, ViewBoxY, ViewBoxW, ViewBoxH float64
	// Width and Height are only set for absolute lengths; percentages and
	// font relative units leave them zero.
	Width, Height float64
}

// HasViewBox reports whether the root carries a usable viewBox.
func (g Geometry) HasViewBox() bool {
	return g.ViewBoxW > 0 && g.ViewBoxH > 0
}

// Size is the intrinsic size of the image: the root width and height when
// both are absolute, otherwise the viewBox size.
func (g Geometry) Size() (w, h float64) {
	if g.Width > 0 && g.Height > 0 {
		return g.Width, g.Height
	}
	return g.ViewBoxW, g.ViewBoxH
}

var unitScale = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
}

// ReadGeometry reads the sizing attributes of the first element in markup.
// A zero Geometry is returned when markup does not start with <svg>.
func ReadGeometry(markup string) Geometry {
	var g Geometry

	d := xml.NewDecoder(strings.NewReader(markup))
	d.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := d.Token()
		if err != nil {
			return g
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return g
		}
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "viewBox":
				if vb, ok := parseViewBox(attr.Value); ok {
					g.ViewBoxX, g.ViewBoxY, g.ViewBoxW, g.ViewBoxH = vb[0], vb[1], vb[2], vb[3]
				}
			case "width":
				g.Width = parseLength(attr.Value)
			case "height":
				g.Height = parseLength(attr.Value)
			}
		}
		return g
	}
}

func parseViewBox(s string) ([4]float64, bool) {
	var vb [4]float64
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return vb, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vb, false
		}
		vb[i] = v
	}
	return vb, vb[2] > 0 && vb[3] > 0
}

func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	num := strings.TrimRight(s, "abcdefghijklmnopqrstuvwxyz%")
	scale, ok := unitScale[s[len(num):]]
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v * scale
}
