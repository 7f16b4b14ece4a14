package models

// ConversionRequest carries everything one conversion needs. It is built at
// the moment a conversion is triggered and never mutated afterwards.
type ConversionRequest struct {
	SVGMarkup       string
	TargetWidth     int
	TargetHeight    int
	BackgroundColor string
	// Recolor replaces every fill and stroke value when non-nil.
	Recolor *string
	// SourceName is the uploaded file name, only used to name the output.
	SourceName string
}

// RasterResult is the encoded PNG and the name it should be saved under.
type RasterResult struct {
	PNG      []byte
	Filename string
	Width    int
	Height   int
}
