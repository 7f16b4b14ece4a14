package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/khankhulgun/svgcanvas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
	`<rect x="0" y="0" width="100" height="100" fill="#ff0000"/></svg>`

const wideBar = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="100">` +
	`<rect x="0" y="0" width="400" height="100" fill="#ff0000"/></svg>`

func rasterize(t *testing.T, req models.ConversionRequest) image.Image {
	t.Helper()
	res, err := Rasterize(context.Background(), req)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(res.PNG))
	require.NoError(t, err)
	return img
}

func nrgba(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRasterizeSquareScenario(t *testing.T) {
	img := rasterize(t, models.ConversionRequest{
		SVGMarkup:       redSquare,
		TargetWidth:     1080,
		TargetHeight:    1080,
		BackgroundColor: "#000000",
		SourceName:      "square.svg",
	})
	require.Equal(t, image.Rect(0, 0, 1080, 1080), img.Bounds())

	black := color.NRGBA{0, 0, 0, 0xff}
	// the content box is [108, 972) on both axes
	for _, p := range []image.Point{{0, 0}, {1079, 1079}, {107, 540}, {540, 107}, {972, 540}, {540, 972}} {
		assert.Equal(t, black, nrgba(img, p.X, p.Y), "outside box at %v", p)
	}
	for _, p := range []image.Point{{109, 109}, {540, 540}, {970, 970}} {
		c := nrgba(img, p.X, p.Y)
		assert.Greater(t, c.R, uint8(250), "inside box at %v", p)
		assert.Less(t, c.G, uint8(5), "inside box at %v", p)
	}
}

func TestRasterizeKeepsRequestedSize(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1080, 1920}, {1200, 675}, {1200, 627}, {1280, 720}, {37, 5}}
	for _, s := range sizes {
		res, err := Rasterize(context.Background(), models.ConversionRequest{
			SVGMarkup:       wideBar,
			TargetWidth:     s[0],
			TargetHeight:    s[1],
			BackgroundColor: "white",
		})
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(bytes.NewReader(res.PNG))
		require.NoError(t, err)
		assert.Equal(t, s[0], cfg.Width)
		assert.Equal(t, s[1], cfg.Height)
		assert.Equal(t, s[0], res.Width)
		assert.Equal(t, s[1], res.Height)
	}
}

func TestRasterizeBackgroundOutsideWideBox(t *testing.T) {
	// 4:1 on a square canvas: box is 800x200 at (100, 400)
	img := rasterize(t, models.ConversionRequest{
		SVGMarkup:       wideBar,
		TargetWidth:     1000,
		TargetHeight:    1000,
		BackgroundColor: "blue",
	})
	blue := color.NRGBA{0, 0, 0xff, 0xff}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if x >= 100 && x < 900 && y >= 400 && y < 600 {
				continue
			}
			if got := nrgba(img, x, y); got != blue {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
	assert.Equal(t, uint8(0xff), nrgba(img, 500, 500).R)
}

func TestRasterizeTransparentBackground(t *testing.T) {
	img := rasterize(t, models.ConversionRequest{
		SVGMarkup:       redSquare,
		TargetWidth:     50,
		TargetHeight:    50,
		BackgroundColor: "transparent",
	})
	assert.Equal(t, uint8(0), nrgba(img, 0, 0).A)
	assert.Equal(t, uint8(0xff), nrgba(img, 25, 25).A)
}

func TestRasterizeRecolor(t *testing.T) {
	green := "#00ff00"
	img := rasterize(t, models.ConversionRequest{
		SVGMarkup:       redSquare,
		TargetWidth:     100,
		TargetHeight:    100,
		BackgroundColor: "#000000",
		Recolor:         &green,
	})
	c := nrgba(img, 50, 50)
	assert.Equal(t, colornames.Lime.G, c.G)
	assert.Less(t, c.R, uint8(5))
}

func TestRasterizeFilename(t *testing.T) {
	res, err := Rasterize(context.Background(), models.ConversionRequest{
		SVGMarkup:       redSquare,
		TargetWidth:     1200,
		TargetHeight:    675,
		BackgroundColor: "#000",
		SourceName:      "logo.svg",
	})
	require.NoError(t, err)
	assert.Equal(t, "logo-1200x675.png", res.Filename)
}

func TestRasterizeEmptyInput(t *testing.T) {
	for _, markup := range []string{"", "   \n\t"} {
		_, err := Rasterize(context.Background(), models.ConversionRequest{
			SVGMarkup:       markup,
			TargetWidth:     1080,
			TargetHeight:    1080,
			BackgroundColor: "#000000",
		})
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.NotErrorIs(t, err, ErrDecode)
	}
}

func TestRasterizeInvalidRequest(t *testing.T) {
	base := models.ConversionRequest{
		SVGMarkup:       redSquare,
		TargetWidth:     10,
		TargetHeight:    10,
		BackgroundColor: "#000000",
	}
	bad := []func(r *models.ConversionRequest){
		func(r *models.ConversionRequest) { r.TargetWidth = 0 },
		func(r *models.ConversionRequest) { r.TargetHeight = -4 },
		func(r *models.ConversionRequest) { r.TargetWidth = MaxDimension + 1 },
		func(r *models.ConversionRequest) { r.BackgroundColor = "not-a-colour" },
		func(r *models.ConversionRequest) {
			c := "notacolor"
			r.Recolor = &c
		},
		func(r *models.ConversionRequest) {
			c := `red" onload="x`
			r.Recolor = &c
		},
	}
	for i, mutate := range bad {
		req := base
		mutate(&req)
		_, err := Rasterize(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, "case %d", i)
		assert.NotErrorIs(t, err, ErrDecode, "case %d", i)
	}
}

func TestRasterizeDecodeFailure(t *testing.T) {
	for _, markup := range []string{
		"<svg",
		"plain text, not markup",
		`<svg xmlns="http://www.w3.org/2000/svg"><rect width="1" height="1"/></svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10"></svg>`,
	} {
		res, err := Rasterize(context.Background(), models.ConversionRequest{
			SVGMarkup:       markup,
			TargetWidth:     64,
			TargetHeight:    64,
			BackgroundColor: "#000000",
		})
		assert.ErrorIs(t, err, ErrDecode, markup)
		assert.Nil(t, res)
	}
}

func TestRasterizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Rasterize(ctx, models.ConversionRequest{
		SVGMarkup:       redSquare,
		TargetWidth:     10,
		TargetHeight:    10,
		BackgroundColor: "#000000",
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeRootAttributeOrder(t *testing.T) {
	for _, markup := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10" width="100%" height="100%"><rect width="20" height="10"/></svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%" viewBox="0 0 20 10"><rect width="20" height="10"/></svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg" width="2em" viewBox="0,0,20,10"><rect width="20" height="10"/></svg>`,
	} {
		img, err := Decode(markup)
		require.NoError(t, err, markup)
		w, h := img.Geometry.Size()
		assert.Equal(t, 20.0, w, markup)
		assert.Equal(t, 10.0, h, markup)
		assert.Equal(t, 20.0, img.Icon.ViewBox.W, markup)
		assert.Equal(t, 10.0, img.Icon.ViewBox.H, markup)
	}
}

func TestRasterizePercentSizeBeforeViewBox(t *testing.T) {
	// 2:1 on a square canvas: box is 800x400 at (100, 300)
	img := rasterize(t, models.ConversionRequest{
		SVGMarkup: `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%" viewBox="0 0 20 10">` +
			`<rect width="20" height="10" fill="#ff0000"/></svg>`,
		TargetWidth:     1000,
		TargetHeight:    1000,
		BackgroundColor: "#000000",
	})
	black := color.NRGBA{0, 0, 0, 0xff}
	assert.Equal(t, uint8(0xff), nrgba(img, 500, 500).R)
	assert.Equal(t, uint8(0xff), nrgba(img, 102, 302).R)
	assert.Equal(t, black, nrgba(img, 500, 295))
	assert.Equal(t, black, nrgba(img, 500, 705))
	assert.Equal(t, black, nrgba(img, 95, 500))
}

func TestRasterizeSizeDiffersFromViewBox(t *testing.T) {
	// width/height set the box to 864x432 at (108, 324); the square
	// viewBox is centred in it as a 432x432 square at (324, 324).
	markup := `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 100 100">` +
		`<rect width="100" height="100" fill="#ff0000"/></svg>`

	dec, err := Decode(markup)
	require.NoError(t, err)
	w, h := dec.Geometry.Size()
	box := FitContentBox(w, h, 1080, 1080)
	assert.InDelta(t, 864, box.W, 1e-9)
	assert.InDelta(t, 432, box.H, 1e-9)
	assert.InDelta(t, 324, box.Y, 1e-9)

	img := rasterize(t, models.ConversionRequest{
		SVGMarkup:       markup,
		TargetWidth:     1080,
		TargetHeight:    1080,
		BackgroundColor: "#000000",
	})
	black := color.NRGBA{0, 0, 0, 0xff}
	for _, p := range []image.Point{{326, 326}, {540, 540}, {754, 754}} {
		assert.Equal(t, uint8(0xff), nrgba(img, p.X, p.Y).R, "art at %v", p)
	}
	for _, p := range []image.Point{{200, 540}, {880, 540}, {540, 320}, {540, 760}} {
		assert.Equal(t, black, nrgba(img, p.X, p.Y), "background at %v", p)
	}
}

func TestRasterizeViewBoxOrigin(t *testing.T) {
	// a viewBox that does not start at 0,0 still fills the box
	img := rasterize(t, models.ConversionRequest{
		SVGMarkup: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="50 50 100 100">` +
			`<rect x="50" y="50" width="100" height="100" fill="#ff0000"/></svg>`,
		TargetWidth:     100,
		TargetHeight:    100,
		BackgroundColor: "#000000",
	})
	assert.Equal(t, uint8(0xff), nrgba(img, 11, 11).R)
	assert.Equal(t, uint8(0xff), nrgba(img, 88, 88).R)
	assert.Equal(t, uint8(0), nrgba(img, 5, 5).R)
	assert.Equal(t, uint8(0), nrgba(img, 94, 94).R)
}
