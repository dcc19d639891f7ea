package imaging

import (
	"image/color"

	"github.com/disintegration/imaging"
)

// Rotate turns r clockwise by angle degrees. The canvas grows to hold the
// whole rotated image and the uncovered corners are filled with opaque white.
func Rotate(r *RasterImage, angle float64) *RasterImage {
	// imaging rotates counter-clockwise.
	return r.derive(imaging.Rotate(r.pix, -angle, color.White))
}

// FlipHorizontal mirrors r left to right.
func FlipHorizontal(r *RasterImage) *RasterImage {
	return r.derive(imaging.FlipH(r.pix))
}

// FlipVertical mirrors r top to bottom.
func FlipVertical(r *RasterImage) *RasterImage {
	return r.derive(imaging.FlipV(r.pix))
}
