package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers requests rejected before any decoding: a wrong
	// file type, an empty document, a bad size or an unparsable colour.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput is returned for blank markup. It is an ErrInvalidInput.
	ErrEmptyInput = fmt.Errorf("%w: svg content is empty", ErrInvalidInput)

	// ErrDecode is returned when the markup cannot be turned into an image.
	ErrDecode = errors.New("could not decode svg")
)
