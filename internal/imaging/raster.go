package imaging

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ColorMode describes the channel layout of a RasterImage.
type ColorMode string

const (
	ModeRGB  ColorMode = "RGB"  // Opaque true color
	ModeRGBA ColorMode = "RGBA" // True color with alpha
	ModeL    ColorMode = "L"    // 8-bit luminance
	ModeLA   ColorMode = "LA"   // Luminance with alpha
	ModeP    ColorMode = "P"    // Palette-indexed
	ModeCMYK ColorMode = "CMYK" // Opaque CMYK (JPEG only)
)

// HasTransparency reports whether images in this mode may carry transparency.
// Palette images count as transparent because a palette entry may be.
func (m ColorMode) HasTransparency() bool {
	switch m {
	case ModeRGBA, ModeLA, ModeP:
		return true
	}
	return false
}

// RasterImage is a decoded pixel buffer with its color mode and source format.
//
// A RasterImage is immutable once constructed. Every constructor copies its
// input and Image returns a copy, so no two RasterImage values ever share a
// pixel buffer and callers cannot reach into one another's history.
type RasterImage struct {
	pix    *image.NRGBA
	mode   ColorMode
	format Format
}

// NewRaster builds a RasterImage from any image.Image. The pixels are copied
// and conformed to mode.
func NewRaster(img image.Image, mode ColorMode, format Format) *RasterImage {
	return newRaster(imaging.Clone(img), mode, format)
}

// newRaster takes ownership of pix.
func newRaster(pix *image.NRGBA, mode ColorMode, format Format) *RasterImage {
	conform(pix, mode)
	return &RasterImage{pix: pix, mode: mode, format: format}
}

// derive wraps the output of an operation on r, keeping r's mode and format.
func (r *RasterImage) derive(pix *image.NRGBA) *RasterImage {
	return newRaster(pix, r.mode, r.format)
}

// Width returns the image width in pixels.
func (r *RasterImage) Width() int { return r.pix.Rect.Dx() }

// Height returns the image height in pixels.
func (r *RasterImage) Height() int { return r.pix.Rect.Dy() }

// Mode returns the color mode.
func (r *RasterImage) Mode() ColorMode { return r.mode }

// Format returns the container format the image was decoded from.
func (r *RasterImage) Format() Format { return r.format }

// HasTransparency reports whether the color mode carries transparency.
func (r *RasterImage) HasTransparency() bool { return r.mode.HasTransparency() }

// Empty reports whether the image has zero area.
func (r *RasterImage) Empty() bool { return r.pix.Rect.Empty() }

// Image returns a copy of the pixel buffer.
func (r *RasterImage) Image() *image.NRGBA {
	return imaging.Clone(r.pix)
}

// Clone returns an independent copy of r.
func (r *RasterImage) Clone() *RasterImage {
	return &RasterImage{pix: imaging.Clone(r.pix), mode: r.mode, format: r.format}
}

// Equal reports whether r and o have identical dimensions and pixels.
// Mode and format are not compared.
func (r *RasterImage) Equal(o *RasterImage) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Width() != o.Width() || r.Height() != o.Height() {
		return false
	}
	w := r.Width() * 4
	for y := 0; y < r.Height(); y++ {
		a := r.pix.Pix[y*r.pix.Stride : y*r.pix.Stride+w]
		b := o.pix.Pix[y*o.pix.Stride : y*o.pix.Stride+w]
		if !bytes.Equal(a, b) {
			return false
		}
	}
	return true
}

// At returns the color of the pixel at (x, y).
func (r *RasterImage) At(x, y int) color.NRGBA {
	return r.pix.NRGBAAt(x, y)
}

// Info summarises a RasterImage for the host.
type Info struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Mode            string `json:"mode"`
	Format          string `json:"format"`
	HasTransparency bool   `json:"has_transparency"`
}

// Info returns the image metadata.
func (r *RasterImage) Info() Info {
	return Info{
		Width:           r.Width(),
		Height:          r.Height(),
		Mode:            string(r.mode),
		Format:          string(r.format),
		HasTransparency: r.HasTransparency(),
	}
}

// conform normalises pixels in place so they are representable in mode.
func conform(pix *image.NRGBA, mode ColorMode) {
	switch mode {
	case ModeRGB, ModeCMYK:
		forEachPixel(pix, func(p []uint8) {
			p[3] = 0xff
		})
	case ModeL:
		forEachPixel(pix, func(p []uint8) {
			g := luma(p[0], p[1], p[2])
			p[0], p[1], p[2], p[3] = g, g, g, 0xff
		})
	case ModeLA:
		forEachPixel(pix, func(p []uint8) {
			g := luma(p[0], p[1], p[2])
			p[0], p[1], p[2] = g, g, g
		})
	}
}

func forEachPixel(pix *image.NRGBA, fn func(p []uint8)) {
	w := pix.Rect.Dx()
	for y := 0; y < pix.Rect.Dy(); y++ {
		row := pix.Pix[y*pix.Stride : y*pix.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			fn(row[i : i+4 : i+4])
		}
	}
}

// luma uses the ITU-R 601-2 weights, matching color.GrayModel.
func luma(r, g, b uint8) uint8 {
	y := (19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16
	return uint8(y)
}

// detectMode infers the color mode of a freshly decoded image.
func detectMode(img image.Image) ColorMode {
	switch src := img.(type) {
	case *image.Paletted:
		return ModeP
	case *image.Gray, *image.Gray16:
		return ModeL
	case *image.CMYK:
		return ModeCMYK
	case *image.YCbCr:
		return ModeRGB
	case *image.NRGBA, *image.NRGBA64:
		return ModeRGBA
	case *image.RGBA:
		if src.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.RGBA64:
		if src.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	}
	if _, ok := img.ColorModel().(color.Palette); ok {
		return ModeP
	}
	return ModeRGBA
}
