package raster

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FallbackBasename names outputs whose source name is unknown.
const FallbackBasename = "converted"

// OutputFilename returns <basename>-<w>x<h>.png for the uploaded file name.
func OutputFilename(source string, width, height int) string {
	base := filepath.Base(strings.ReplaceAll(source, `\`, "/"))
	base = strings.Replace(base, ".svg", "", 1)
	if base == "" || base == "." || base == "/" {
		base = FallbackBasename
	}
	return fmt.Sprintf("%s-%dx%d.png", base, width, height)
}
