// Package raster draws SVG markup onto a fixed size canvas and encodes the
// result as PNG.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"strings"

	"github.com/khankhulgun/svgcanvas/models"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// DefaultMaxDimension bounds either side of the canvas.
const DefaultMaxDimension = 8192

// MaxDimension is the largest accepted canvas width or height.
var MaxDimension = DefaultMaxDimension

// Rasterize renders req into a PNG. Blank markup fails with ErrEmptyInput
// before anything is decoded; markup the decoder rejects fails with ErrDecode.
func Rasterize(ctx context.Context, req models.ConversionRequest) (*models.RasterResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	bg, err := ParseColor(req.BackgroundColor)
	if err != nil {
		return nil, err
	}

	w, h := req.TargetWidth, req.TargetHeight
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	markup := req.SVGMarkup
	if req.Recolor != nil {
		markup = Recolor(markup, *req.Recolor)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := Decode(markup)
	if err != nil {
		return nil, err
	}

	iw, ih := img.Geometry.Size()
	box := FitContentBox(iw, ih, w, h)
	slog.Debug("rasterizing svg",
		"source", req.SourceName,
		"width", w, "height", h,
		"box_x", box.X, "box_y", box.Y, "box_w", box.W, "box_h", box.H)

	if err := composite(canvas, img, box); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return &models.RasterResult{
		PNG:      buf.Bytes(),
		Filename: OutputFilename(req.SourceName, w, h),
		Width:    w,
		Height:   h,
	}, nil
}

// Validate checks the parts of req that do not need decoding.
func Validate(req models.ConversionRequest) error {
	if strings.TrimSpace(req.SVGMarkup) == "" {
		return ErrEmptyInput
	}
	if req.TargetWidth <= 0 || req.TargetHeight <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d must be positive", ErrInvalidInput, req.TargetWidth, req.TargetHeight)
	}
	if req.TargetWidth > MaxDimension || req.TargetHeight > MaxDimension {
		return fmt.Errorf("%w: canvas size %dx%d exceeds %d", ErrInvalidInput, req.TargetWidth, req.TargetHeight, MaxDimension)
	}
	if req.Recolor != nil {
		if _, err := ParseColor(*req.Recolor); err != nil {
			return err
		}
	}
	return nil
}

// Image is decoded markup together with its root sizing.
type Image struct {
	Icon     *oksvg.SvgIcon
	Geometry Geometry
}

// Decode parses markup into an image with a usable intrinsic size.
func Decode(markup string) (img *Image, err error) {
	// oksvg panics on some malformed attribute values, e.g. fill=""
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	icon, err := oksvg.ReadIconStream(strings.NewReader(markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// oksvg stops reading root attributes at the first length it cannot
	// parse, so the viewBox may be missing from icon when width="100%"
	// precedes it.
	g := ReadGeometry(markup)
	if !g.HasViewBox() {
		g.ViewBoxX, g.ViewBoxY = icon.ViewBox.X, icon.ViewBox.Y
		g.ViewBoxW, g.ViewBoxH = icon.ViewBox.W, icon.ViewBox.H
	}
	if !g.HasViewBox() {
		g.ViewBoxX, g.ViewBoxY, g.ViewBoxW, g.ViewBoxH = 0, 0, g.Width, g.Height
	}
	if !g.HasViewBox() {
		return nil, fmt.Errorf("%w: image has no intrinsic size", ErrDecode)
	}
	icon.ViewBox.X, icon.ViewBox.Y = g.ViewBoxX, g.ViewBoxY
	icon.ViewBox.W, icon.ViewBox.H = g.ViewBoxW, g.ViewBoxH

	return &Image{Icon: icon, Geometry: g}, nil
}

// composite draws img into box. The viewBox keeps its own aspect ratio and
// is centred in box when the two differ.
func composite(canvas *image.RGBA, img *Image, box ContentBox) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	g := img.Geometry
	scale := math.Min(box.W/g.ViewBoxW, box.H/g.ViewBoxH)
	x := box.X + (box.W-g.ViewBoxW*scale)/2
	y := box.Y + (box.H-g.ViewBoxH*scale)/2
	img.Icon.Transform = rasterx.Identity.Translate(x, y).Scale(scale, scale).Translate(-g.ViewBoxX, -g.ViewBoxY)

	w, h := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, canvas, canvas.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	img.Icon.Draw(dasher, 1)
	return nil
}
