package editor

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor/internal/imaging"
)

// createTestImage creates a width x height image with a red top-left pixel
// on a white background.
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	return img
}

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, createTestImage(width, height)))
	return buf.Bytes()
}

func createTestImageFile(t *testing.T, width, height int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.png")
	require.NoError(t, os.WriteFile(path, encodeTestPNG(t, width, height), 0o644))
	return path
}

func testRaster(width, height int) *imaging.RasterImage {
	return imaging.NewRaster(createTestImage(width, height), imaging.ModeRGB, imaging.FormatPNG)
}

// loadedProcessor returns a processor holding a width x height PNG.
func loadedProcessor(t *testing.T, width, height int) *Processor {
	t.Helper()

	p := NewProcessor()
	require.NoError(t, p.Load(encodeTestPNG(t, width, height)))
	return p
}

func base64PNG(t *testing.T, width, height int) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(encodeTestPNG(t, width, height))
}
