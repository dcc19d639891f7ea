package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotate_Clockwise90(t *testing.T) {
	img := patternRaster(100, 60)

	result := Rotate(img, 90)

	assert.Equal(t, 60, result.Width())
	assert.Equal(t, 100, result.Height())
	// The red top-left quadrant ends up top-right.
	assert.Equal(t, red, result.At(59, 0))
	assert.Equal(t, blue, result.At(0, 0))
	assert.Equal(t, green, result.At(59, 99))
	assert.Equal(t, white, result.At(0, 99))
}

func TestRotate_CounterClockwise(t *testing.T) {
	img := patternRaster(100, 60)

	result := Rotate(img, -90)

	assert.Equal(t, 60, result.Width())
	assert.Equal(t, 100, result.Height())
	assert.Equal(t, red, result.At(0, 99))
}

func TestRotate_180AndFullTurn(t *testing.T) {
	img := patternRaster(40, 40)

	half := Rotate(img, 180)
	assert.Equal(t, white, half.At(0, 0))
	assert.Equal(t, red, half.At(39, 39))

	assert.True(t, img.Equal(Rotate(img, 360)))
	assert.True(t, img.Equal(Rotate(img, 0)))
}

func TestRotate_ExpandsWithWhiteCorners(t *testing.T) {
	img := NewRaster(createInMemoryImage(100, 100, blue), ModeRGB, FormatPNG)

	result := Rotate(img, 45)

	assert.Greater(t, result.Width(), 100)
	assert.Greater(t, result.Height(), 100)
	assert.Equal(t, white, result.At(0, 0))
	assert.Equal(t, white, result.At(result.Width()-1, result.Height()-1))

	center := result.At(result.Width()/2, result.Height()/2)
	assert.Equal(t, blue, center)
}

func TestRotate_KeepsModeAndFormat(t *testing.T) {
	img := NewRaster(createInMemoryImage(10, 10, red), ModeRGBA, FormatGIF)

	result := Rotate(img, 30)

	assert.Equal(t, ModeRGBA, result.Mode())
	assert.Equal(t, FormatGIF, result.Format())
}

func TestFlipHorizontal(t *testing.T) {
	img := patternRaster(50, 50)

	result := FlipHorizontal(img)

	assert.Equal(t, green, result.At(0, 0))
	assert.Equal(t, red, result.At(49, 0))
	assert.Equal(t, red, img.At(0, 0), "source must be unchanged")
	assert.True(t, img.Equal(FlipHorizontal(result)))
}

func TestFlipVertical(t *testing.T) {
	img := patternRaster(50, 50)

	result := FlipVertical(img)

	assert.Equal(t, blue, result.At(0, 0))
	assert.Equal(t, red, result.At(0, 49))
	assert.True(t, img.Equal(FlipVertical(result)))
}
