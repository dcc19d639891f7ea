package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp" // Register BMP format decoder
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Format is an image container format.
type Format string

const (
	FormatPNG  Format = "PNG"
	FormatJPEG Format = "JPEG"
	FormatBMP  Format = "BMP"
	FormatGIF  Format = "GIF"
	FormatTIFF Format = "TIFF"
	FormatWEBP Format = "WEBP"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 95

// ParseFormat resolves a case-insensitive format name. "jpg" and "tif" are
// accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "gif":
		return FormatGIF, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	case "webp":
		return FormatWEBP, nil
	}
	return "", errors.Errorf("unsupported format: %q", name)
}

// DecodeError reports bytes that could not be decoded as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "failed to decode image: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode decodes an encoded PNG, JPEG, BMP, GIF, TIFF or WebP image.
func Decode(data []byte) (*RasterImage, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	format, err := ParseFormat(name)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	mode := detectMode(img)
	if format == FormatPNG {
		if m, ok := pngColorMode(data); ok {
			mode = m
		}
	}
	return NewRaster(img, mode, format), nil
}

// DecodeString decodes a base64 payload, optionally wrapped in a data URL
// ("data:image/png;base64,...").
func DecodeString(payload string) (*RasterImage, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		i := strings.IndexByte(payload, ',')
		if i < 0 {
			return nil, &DecodeError{Err: errors.New("data URL has no payload")}
		}
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Err: errors.Wrap(err, "invalid base64 payload")}
	}
	return Decode(data)
}

// LoadFile reads and decodes an image file.
func LoadFile(path string) (*RasterImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}
	return Decode(data)
}

// pngColorMode reads the color type byte of the IHDR chunk, which
// distinguishes gray+alpha and opaque true color images that the standard
// decoder folds into NRGBA and RGBA buffers.
func pngColorMode(data []byte) (ColorMode, bool) {
	const colorTypeOffset = 8 + 4 + 4 + 4 + 4 + 1
	if len(data) <= colorTypeOffset || string(data[12:16]) != "IHDR" {
		return "", false
	}
	switch data[colorTypeOffset] {
	case 0:
		return ModeL, true
	case 2:
		return ModeRGB, true
	case 3:
		return ModeP, true
	case 4:
		return ModeLA, true
	case 6:
		return ModeRGBA, true
	}
	return "", false
}

// Encode encodes r in the given format. quality only affects JPEG and is
// clamped to 1..100; zero selects DefaultQuality.
//
// JPEG has no alpha channel, so images whose mode carries transparency are
// composited over an opaque white canvas before encoding.
func Encode(r *RasterImage, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeTo(&buf, r, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTo(w io.Writer, r *RasterImage, format Format, quality int) error {
	enc, err := encoderFor(format, quality)
	if err != nil {
		return err
	}

	if err := enc(w, encodable(r, format)); err != nil {
		return errors.Wrapf(err, "failed to encode %s", format)
	}
	return nil
}

// encodable returns the buffer to hand to the encoder for format.
func encodable(r *RasterImage, format Format) image.Image {
	if format == FormatJPEG && r.HasTransparency() {
		return FlattenOnWhite(r.pix)
	}
	return r.pix
}

func encoderFor(format Format, quality int) (imgio.Encoder, error) {
	switch format {
	case FormatPNG:
		return imgio.PNGEncoder(), nil
	case FormatJPEG:
		return imgio.JPEGEncoder(clampQuality(quality)), nil
	case FormatBMP:
		return imgio.BMPEncoder(), nil
	case FormatGIF:
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, &gif.Options{NumColors: 256})
		}, nil
	case FormatTIFF:
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	case FormatWEBP:
		return nil, errors.New("WEBP encoding is not supported")
	}
	return nil, errors.Errorf("unsupported format: %q", format)
}

func clampQuality(q int) int {
	switch {
	case q == 0:
		return DefaultQuality
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}

// FlattenOnWhite composites img over an opaque white canvas of the same size.
func FlattenOnWhite(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// EncodeDataURL encodes r and wraps the result as
// "data:image/<format>;base64,<payload>".
func EncodeDataURL(r *RasterImage, format Format, quality int) (string, error) {
	data, err := Encode(r, format, quality)
	if err != nil {
		return "", err
	}
	return "data:image/" + strings.ToLower(string(format)) + ";base64," +
		base64.StdEncoding.EncodeToString(data), nil
}

// SaveFile encodes r to path, creating the parent directory if needed.
func SaveFile(r *RasterImage, path string, format Format, quality int) error {
	enc, err := encoderFor(format, quality)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
	}

	if err := imgio.Save(path, encodable(r, format), enc); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}
