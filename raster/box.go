package raster

// ContentScale is the share of the canvas the artwork may occupy along its
// constraining axis.
const ContentScale = 0.8

// ContentBox is the rectangle the artwork is drawn into.
type ContentBox struct {
	X, Y, W, H float64
}

// FitContentBox centres an image of the given intrinsic size in a
// canvasW x canvasH canvas, keeping its aspect ratio and using at most
// ContentScale of the canvas width or height.
func FitContentBox(imageW, imageH float64, canvasW, canvasH int) ContentBox {
	cw, ch := float64(canvasW), float64(canvasH)
	imageAspect := imageW / imageH
	canvasAspect := cw / ch

	var box ContentBox
	if imageAspect > canvasAspect {
		box.W = cw * ContentScale
		box.H = box.W / imageAspect
	} else {
		box.H = ch * ContentScale
		box.W = box.H * imageAspect
	}
	box.X = (cw - box.W) / 2
	box.Y = (ch - box.H) / 2
	return box
}
