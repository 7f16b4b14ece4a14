package raster

import (
	"regexp"
	"strings"
)

// DefaultRecolor is the colour that means "leave the artwork alone".
const DefaultRecolor = "#ffffff"

var (
	fillAttrRe   = regexp.MustCompile(`fill="[^"]*"`)
	strokeAttrRe = regexp.MustCompile(`stroke="[^"]*"`)
)

// Recolor rewrites every fill="..." and stroke="..." in markup to override.
// The rewrite is textual, so CSS classes and style attributes are untouched
// and matches inside comments or unrelated attributes are rewritten too.
// It returns markup unchanged when override is DefaultRecolor. override is
// written as is, so callers check it with ParseColor first.
func Recolor(markup, override string) string {
	override = strings.TrimSpace(override)
	if override == "" || SameColor(override, DefaultRecolor) {
		return markup
	}
	markup = fillAttrRe.ReplaceAllLiteralString(markup, `fill="`+override+`"`)
	return strokeAttrRe.ReplaceAllLiteralString(markup, `stroke="`+override+`"`)
}

// RecolorOverride turns a user supplied colour into the optional override of a
// ConversionRequest: nil for blank input or the default colour.
func RecolorOverride(c string) *string {
	if c == "" || SameColor(c, DefaultRecolor) {
		return nil
	}
	return &c
}
