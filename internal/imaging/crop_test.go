package imaging

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCropBox(t *testing.T) {
	tests := []struct {
		name                string
		x, y, width, height int
		want                image.Rectangle
	}{
		{"inside", 10, 20, 30, 40, image.Rect(10, 20, 40, 60)},
		{"full image", 0, 0, 100, 100, image.Rect(0, 0, 100, 100)},
		{"extent past edge", 90, 80, 50, 50, image.Rect(90, 80, 100, 100)},
		{"negative origin", -10, -5, 30, 30, image.Rect(0, 0, 30, 30)},
		{"origin past edge", 150, 0, 10, 10, image.Rect(100, 0, 100, 10)},
		{"negative extent", 10, 10, -5, 20, image.Rect(10, 10, 10, 30)},
		{"zero size", 10, 10, 0, 0, image.Rect(10, 10, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CropBox(100, 100, tt.x, tt.y, tt.width, tt.height)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.In(image.Rect(0, 0, 100, 100)) || got.Empty())
		})
	}
}

func TestCrop(t *testing.T) {
	img := patternRaster(100, 100)

	result := Crop(img, 0, 0, 50, 50)

	assert.Equal(t, 50, result.Width())
	assert.Equal(t, 50, result.Height())
	assert.Equal(t, red, result.At(0, 0))
	assert.Equal(t, red, result.At(49, 49))
}

func TestCrop_VerifyContent(t *testing.T) {
	img := patternRaster(100, 100)

	result := Crop(img, 50, 0, 50, 50)

	assert.Equal(t, green, result.At(0, 0))
	assert.Equal(t, ModeRGB, result.Mode())
	assert.Equal(t, FormatPNG, result.Format())
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := patternRaster(100, 100)

	result := Crop(img, 80, 80, 50, 50)

	assert.Equal(t, 20, result.Width())
	assert.Equal(t, 20, result.Height())
	assert.Equal(t, white, result.At(0, 0))
}

func TestCrop_Empty(t *testing.T) {
	img := patternRaster(100, 100)

	result := Crop(img, 200, 200, 10, 10)

	assert.True(t, result.Empty())
	assert.Equal(t, 0, result.Width())
	assert.Equal(t, 0, result.Height())
}

func TestCrop_SourceUnchanged(t *testing.T) {
	img := patternRaster(100, 100)
	before := img.Clone()

	Crop(img, 10, 10, 20, 20)

	assert.True(t, img.Equal(before))
	assert.Equal(t, 100, img.Width())
}
