package imaging

import (
	"image"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the point size requested when none is given.
const DefaultFontSize = 24

// Font renders text with its top-left corner at a given point.
//
// The set of fonts is closed: a Font is either a TrueType/OpenType face
// loaded by TryLoadFont or the built-in bitmap face returned by DefaultFont.
type Font interface {
	// Name identifies the font for logging.
	Name() string

	draw(r *RasterImage, s string, x, y int, c Color) (*RasterImage, error)
}

// TryLoadFont loads the font file at path at the given size. It reports
// false when path is empty, does not exist, is not a parseable font, or size
// is not positive.
func TryLoadFont(path string, size float64) (Font, bool) {
	if path == "" || size <= 0 {
		return nil, false
	}
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		return nil, false
	}
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, false
	}
	return &vectorFont{name: src.Name(), face: src.Face(size)}, true
}

// DefaultFont returns the built-in 7x13 bitmap font. Its size is fixed.
func DefaultFont() Font { return bitmapFont{} }

// ResolveFont returns the font at path, or DefaultFont when it cannot be
// loaded. Loading problems are never reported as errors.
func ResolveFont(path string, size float64) Font {
	if f, ok := TryLoadFont(path, size); ok {
		return f
	}
	return DefaultFont()
}

// TextOptions describes a text annotation.
type TextOptions struct {
	Text  string
	X, Y  int
	Color Color
	Font  Font // nil selects DefaultFont
}

// AddText draws opts.Text onto a copy of r with its top-left corner at
// (X, Y). Newlines start a new line one line-height down.
func AddText(r *RasterImage, opts TextOptions) (*RasterImage, error) {
	f := opts.Font
	if f == nil {
		f = DefaultFont()
	}
	if r.Empty() || opts.Text == "" {
		return r.Clone(), nil
	}
	return f.draw(r, opts.Text, opts.X, opts.Y, opts.Color)
}

type vectorFont struct {
	name string
	face text.Face
}

func (f *vectorFont) Name() string { return f.name }

func (f *vectorFont) draw(r *RasterImage, s string, x, y int, c Color) (*RasterImage, error) {
	m := f.face.Metrics()
	return paint(r, func(dc *gg.Context) error {
		dc.SetFont(f.face)
		dc.SetColor(c)
		for i, line := range strings.Split(s, "\n") {
			baseline := float64(y) + m.Ascent + float64(i)*m.LineHeight()
			dc.DrawString(line, float64(x), baseline)
		}
		return nil
	})
}

type bitmapFont struct{}

func (bitmapFont) Name() string { return "default" }

func (bitmapFont) draw(r *RasterImage, s string, x, y int, c Color) (*RasterImage, error) {
	face := basicfont.Face7x13
	m := face.Metrics()
	layer := image.NewNRGBA(image.Rect(0, 0, r.Width(), r.Height()))
	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(c),
		Face: face,
	}
	for i, line := range strings.Split(s, "\n") {
		d.Dot = fixed.P(x, y+i*m.Height.Ceil()).Add(fixed.Point26_6{Y: m.Ascent})
		d.DrawString(line)
	}
	dst := r.Image()
	composite(dst, layer)
	return r.derive(dst), nil
}
