package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// CropBox clamps a crop request against a w x h image.
//
// The origin is clamped into [0,w] x [0,h] and the extent is shortened so the
// box never leaves the image. Negative extents clamp to zero. The result may
// be empty; an origin on or past the right or bottom edge always is.
func CropBox(w, h, x, y, width, height int) image.Rectangle {
	x = clamp(x, 0, w)
	y = clamp(y, 0, h)
	width = clamp(width, 0, w-x)
	height = clamp(height, 0, h-y)
	return image.Rect(x, y, x+width, y+height)
}

// Crop extracts the clamped region (x, y, width, height) of r.
func Crop(r *RasterImage, x, y, width, height int) *RasterImage {
	box := CropBox(r.Width(), r.Height(), x, y, width, height)
	if box.Empty() {
		return r.derive(&image.NRGBA{})
	}
	return r.derive(imaging.Crop(r.pix, box))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
