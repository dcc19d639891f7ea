package imaging

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Color is a parsed drawing color. It is always a concrete 8-bit NRGBA value;
// the string forms accepted by ParseColor are resolved up front so that a bad
// color fails the operation before any pixel is touched.
type Color struct {
	R, G, B, A uint8
}

var (
	Black = Color{0, 0, 0, 0xff}
	White = Color{0xff, 0xff, 0xff, 0xff}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns the color as "#RRGGBB", or "#RRGGBBAA" when not fully opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor parses a color string. Accepted forms:
//   - a CSS/X11 color name ("red", "cornflowerblue"), case-insensitive
//   - "transparent"
//   - "#rgb", "#rrggbb" or "#rrggbbaa"
//   - "rgb(r, g, b)" and "rgba(r, g, b, a)" with 0-255 components
//   - "hsl(h, s%, l%)" with hue in degrees
func ParseColor(s string) (Color, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return Color{}, errors.New("empty color string")
	}

	if strings.HasPrefix(spec, "#") {
		return parseHexColor(spec)
	}
	if strings.HasSuffix(spec, ")") {
		if i := strings.IndexByte(spec, '('); i > 0 {
			return parseColorFunc(spec[:i], spec[i+1:len(spec)-1])
		}
	}
	if spec == "transparent" {
		return Color{}, nil
	}
	if c, ok := colornames.Map[spec]; ok {
		return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return Color{}, errors.Errorf("unknown color: %q", s)
}

// ParseOptionalColor parses s, treating the empty string as "no color".
func ParseOptionalColor(s string) (*Color, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// parseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func parseHexColor(hex string) (Color, error) {
	switch len(hex) {
	case 4, 7:
		c, err := colorful.Hex(hex)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid hex color %q", hex)
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b, A: 0xff}, nil
	case 9:
		val, err := strconv.ParseUint(hex[1:], 16, 32)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid hex color %q", hex)
		}
		return Color{
			R: uint8(val >> 24),
			G: uint8(val >> 16),
			B: uint8(val >> 8),
			A: uint8(val),
		}, nil
	}
	return Color{}, errors.Errorf("invalid hex color length: %q", hex)
}

func parseColorFunc(name, args string) (Color, error) {
	parts := strings.Split(args, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch name {
	case "rgb", "rgba":
		want := 3
		if name == "rgba" {
			want = 4
		}
		if len(parts) != want {
			return Color{}, errors.Errorf("%s() takes %d components", name, want)
		}
		var ch [4]uint8
		ch[3] = 0xff
		for i, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil || v < 0 || v > 255 {
				return Color{}, errors.Errorf("invalid %s() component %q", name, p)
			}
			ch[i] = uint8(v)
		}
		return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil

	case "hsl":
		if len(parts) != 3 {
			return Color{}, errors.New("hsl() takes 3 components")
		}
		h, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Color{}, errors.Errorf("invalid hsl() hue %q", parts[0])
		}
		s, err := parsePercent(parts[1])
		if err != nil {
			return Color{}, err
		}
		l, err := parsePercent(parts[2])
		if err != nil {
			return Color{}, err
		}
		h = math.Mod(h, 360)
		if h < 0 {
			h += 360
		}
		r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
		return Color{R: r, G: g, B: b, A: 0xff}, nil
	}
	return Color{}, errors.Errorf("unknown color function %q", name)
}

func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || v < 0 || v > 100 {
		return 0, errors.Errorf("invalid percentage %q", s)
	}
	return v / 100, nil
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled color in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGB  RGBColor  `json:"rgb"`
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor returns the color at (x, y).
//
// Coordinates are 0-based from the top-left corner. An error is returned
// when the point falls outside the image.
func SampleColor(r *RasterImage, x, y int) (*ColorResult, error) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return nil, errors.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := r.At(x, y)
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}, nil
}
