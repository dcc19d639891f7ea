package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/pkg/errors"
)

// DefaultStrokeWidth is the outline and line width used when none is given.
const DefaultStrokeWidth = 2

// ShapeStyle controls how a shape is painted. A nil Outline or Fill skips
// that pass.
type ShapeStyle struct {
	Outline *Color
	Fill    *Color
	Width   int
}

// RectangleOptions describes an axis-aligned rectangle.
//
// (X1,Y1) and (X2,Y2) are the inclusive top-left and bottom-right pixels.
// Corners are used as given; reversed corners are not normalised.
type RectangleOptions struct {
	X1, Y1, X2, Y2 int
	ShapeStyle
}

// CircleOptions describes a circle by its center and radius. The circle is
// inscribed in the box (X-Radius, Y-Radius)-(X+Radius, Y+Radius).
type CircleOptions struct {
	X, Y, Radius int
	ShapeStyle
}

// LineOptions describes a straight segment.
type LineOptions struct {
	X1, Y1, X2, Y2 int
	Color          Color
	Width          int
}

// DrawRectangle paints a rectangle onto a copy of r. The outline is kept
// inside the box, so a Width-pixel outline covers the outermost Width rows
// and columns.
func DrawRectangle(r *RasterImage, opts RectangleOptions) (*RasterImage, error) {
	x := float64(opts.X1)
	y := float64(opts.Y1)
	w := float64(opts.X2-opts.X1) + 1
	h := float64(opts.Y2-opts.Y1) + 1

	return paint(r, func(dc *gg.Context) error {
		if opts.Fill != nil {
			dc.SetColor(*opts.Fill)
			dc.DrawRectangle(x, y, w, h)
			if err := dc.Fill(); err != nil {
				return errors.Wrap(err, "failed to fill rectangle")
			}
		}
		if opts.Outline != nil && opts.Width > 0 {
			sw := float64(opts.Width)
			dc.SetColor(*opts.Outline)
			dc.SetLineWidth(sw)
			dc.DrawRectangle(x+sw/2, y+sw/2, w-sw, h-sw)
			if err := dc.Stroke(); err != nil {
				return errors.Wrap(err, "failed to stroke rectangle")
			}
		}
		return nil
	})
}

// DrawCircle paints a circle onto a copy of r. As with rectangles, the outline
// lies inside the bounding box.
func DrawCircle(r *RasterImage, opts CircleOptions) (*RasterImage, error) {
	cx := float64(opts.X) + 0.5
	cy := float64(opts.Y) + 0.5
	radius := float64(opts.Radius) + 0.5

	return paint(r, func(dc *gg.Context) error {
		if opts.Fill != nil {
			dc.SetColor(*opts.Fill)
			dc.DrawEllipse(cx, cy, radius, radius)
			if err := dc.Fill(); err != nil {
				return errors.Wrap(err, "failed to fill circle")
			}
		}
		if opts.Outline != nil && opts.Width > 0 {
			sw := float64(opts.Width)
			inner := math.Max(radius-sw/2, 0)
			dc.SetColor(*opts.Outline)
			dc.SetLineWidth(sw)
			dc.DrawEllipse(cx, cy, inner, inner)
			if err := dc.Stroke(); err != nil {
				return errors.Wrap(err, "failed to stroke circle")
			}
		}
		return nil
	})
}

// DrawLine paints a straight segment onto a copy of r. Widths below one
// draw a one pixel line.
func DrawLine(r *RasterImage, opts LineOptions) (*RasterImage, error) {
	width := math.Max(float64(opts.Width), 1)

	return paint(r, func(dc *gg.Context) error {
		dc.SetColor(opts.Color)
		dc.SetLineWidth(width)
		dc.DrawLine(float64(opts.X1)+0.5, float64(opts.Y1)+0.5, float64(opts.X2)+0.5, float64(opts.Y2)+0.5)
		if err := dc.Stroke(); err != nil {
			return errors.Wrap(err, "failed to stroke line")
		}
		return nil
	})
}

// paint runs fn against a transparent drawing layer the size of r and
// composites the layer over a copy of r's pixels. Pixels the layer leaves
// untouched keep their exact values. r itself is never modified.
func paint(r *RasterImage, fn func(dc *gg.Context) error) (*RasterImage, error) {
	if r.Empty() {
		return r.Clone(), nil
	}

	dc := gg.NewContext(r.Width(), r.Height())
	defer dc.Close()

	if err := fn(dc); err != nil {
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, errors.Wrap(err, "failed to flush drawing")
	}

	dst := r.Image()
	composite(dst, imaging.Clone(dc.Image()))
	return r.derive(dst), nil
}

// composite blends layer over dst with source-over. Both images are
// non-premultiplied; layer's origin is placed at dst's origin. Pixels where
// layer is fully transparent are skipped.
func composite(dst, layer *image.NRGBA) {
	b := layer.Bounds().Intersect(image.Rect(0, 0, dst.Rect.Dx(), dst.Rect.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := layer.PixOffset(b.Min.X, y)
		di := dst.PixOffset(dst.Rect.Min.X+b.Min.X, dst.Rect.Min.Y+y)
		for x := b.Min.X; x < b.Max.X; x, si, di = x+1, si+4, di+4 {
			s := layer.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			switch s[3] {
			case 0:
				continue
			case 0xff:
				copy(d, s)
				continue
			}

			sa := float64(s[3]) / 255
			da := float64(d[3]) / 255 * (1 - sa)
			oa := sa + da
			for i := 0; i < 3; i++ {
				d[i] = uint8(math.Round((float64(s[i])*sa + float64(d[i])*da) / oa))
			}
			d[3] = uint8(math.Round(oa * 255))
		}
	}
}
