package editor

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/image-editor/internal/imaging"
)

// Processor applies editing operations to the current image of its Store.
//
// Every mutating operation reads the current snapshot, produces a new image
// and commits it. An operation either commits exactly one snapshot or leaves
// the history untouched and returns an error:
//   - ErrNoImage when nothing is loaded
//   - *OperationError for any failure inside the operation, including panics
type Processor struct {
	*Store
}

// NewProcessor creates a processor with an empty store.
func NewProcessor() *Processor {
	return &Processor{Store: NewStore()}
}

// TextOptions are the parameters of AddText.
type TextOptions struct {
	Text     string
	X, Y     int
	FontSize float64
	Color    imaging.Color
	FontPath string // optional TrueType/OpenType file
}

// Crop keeps the region (x, y, width, height), clamped to the image.
func (p *Processor) Crop(x, y, width, height int) error {
	return p.apply("crop", func(src *imaging.RasterImage) (*imaging.RasterImage, error) {
		return imaging.Crop(src, x, y, width, height), nil
	})
}

// Rotate turns the image clockwise by angle degrees, growing the canvas and
// filling exposed corners with white.
func (p *Processor) Rotate(angle float64) error {
	return p.apply("rotate", func(src *imaging.RasterImage) (*imaging.RasterImage, error) {
		return imaging.Rotate(src, angle), nil
	})
}

// FlipHorizontal mirrors the image left to right.
func (p *Processor) FlipHorizontal() error {
	return p.apply("flip_horizontal", func(src *imaging.RasterImage) (*imaging.RasterImage, error) {
		return imaging.FlipHorizontal(src), nil
	})
}

// FlipVertical mirrors the image top to bottom.
func (p *Processor) FlipVertical() error {
	return p.apply("flip_vertical", func(src *imaging.RasterImage) (*imaging.RasterImage, error) {
		return imaging.FlipVertical(src), nil
	})
}

// AddText draws text with its top-left corner at (X, Y). If FontPath cannot
// be loaded the built-in bitmap font is used instead and FontSize is ignored.
func (p *Processor) AddText(opts TextOptions) error {
	return p.apply("add_text", func(src *imaging.RasterImage) (*imaging.RasterImage, error) {
		font, ok := imaging.TryLoadFont(opts.FontPath, opts.FontSize)
		if !ok {
			if opts.FontPath != "" {
				Logger().Debug("font unavailable, using default", "path", opts.FontPath, "size", opts.FontSize)
			}
			font = imaging.DefaultFont()
		}
		return imaging.AddText(src, imaging.TextOptions{
			Text:  opts.Text,
			X:     opts.X,
			Y:     opts.Y,
			Color: opts.Color,
			Font:  font,
		})
	})
}

// DrawRectangle draws an axis-aligned rectangle.
func (p *Processor) DrawRectangle(opts imaging.RectangleOptions) error {
	return p.apply("draw_rectangle", func(src *imaging.RasterImage) (*imaging.RasterImage, error) {
		return imaging.DrawRectangle(src, opts)
	})
}

// DrawCircle draws a circle.
func (p *Processor) DrawCircle(opts imaging.CircleOptions) error {
	return p.apply("draw_circle", func(src *imaging.RasterImage) (*imaging.RasterImage, error) {
		return imaging.DrawCircle(src, opts)
	})
}

// DrawLine draws a straight line.
func (p *Processor) DrawLine(opts imaging.LineOptions) error {
	return p.apply("draw_line", func(src *imaging.RasterImage) (*imaging.RasterImage, error) {
		return imaging.DrawLine(src, opts)
	})
}

// Save writes the current image to path, creating its directory if needed.
func (p *Processor) Save(path string, format imaging.Format, quality int) error {
	cur := p.history.Current()
	if cur == nil {
		return ErrNoImage
	}
	return guard("save", func() error {
		return imaging.SaveFile(cur, path, format, quality)
	})
}

// Encode returns the current image as a data URL.
func (p *Processor) Encode(format imaging.Format, quality int) (string, error) {
	cur := p.history.Current()
	if cur == nil {
		return "", ErrNoImage
	}
	var url string
	err := guard("encode", func() error {
		var err error
		url, err = imaging.EncodeDataURL(cur, format, quality)
		return err
	})
	return url, err
}

// SampleColor returns the color of the current image at (x, y).
func (p *Processor) SampleColor(x, y int) (*imaging.ColorResult, error) {
	cur := p.history.Current()
	if cur == nil {
		return nil, ErrNoImage
	}
	var res *imaging.ColorResult
	err := guard("sample_color", func() error {
		var err error
		res, err = imaging.SampleColor(cur, x, y)
		return err
	})
	return res, err
}

// apply runs fn on the current image and commits the result on success.
func (p *Processor) apply(op string, fn func(src *imaging.RasterImage) (*imaging.RasterImage, error)) error {
	src := p.history.Current()
	if src == nil {
		return ErrNoImage
	}

	var out *imaging.RasterImage
	err := guard(op, func() error {
		var err error
		out, err = fn(src)
		return err
	})
	if err != nil {
		return err
	}

	p.commit(out)
	Logger().Debug("operation committed", "op", op,
		"width", out.Width(), "height", out.Height(),
		"index", p.history.Index(), "len", p.history.Len())
	return nil
}

// guard runs fn, converting errors and panics into an *OperationError.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &OperationError{Op: op, Err: errors.Errorf("panic: %v", r)}
		}
		if err != nil {
			Logger().Warn("operation failed", "op", op, "error", err)
		}
	}()

	if err := fn(); err != nil {
		return &OperationError{Op: op, Err: err}
	}
	return nil
}
