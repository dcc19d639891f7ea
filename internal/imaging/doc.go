// Package imaging provides the raster value type and the stateless image
// operations used by the editor.
//
// Every operation takes a *RasterImage and returns a new one. A RasterImage
// owns its pixel buffer exclusively, so an operation can never disturb an
// image that is already stored somewhere else (for example in an undo
// history).
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Rectangle corners passed to the drawing operations are inclusive pixels.
//
// # Color Modes
//
// Pixels are held as non-premultiplied 8-bit RGBA. The ColorMode records the
// layout the image was decoded with (RGB, RGBA, L, LA, P, CMYK) and is kept
// across operations; after every operation the buffer is conformed to the
// mode, so an RGB image stays opaque and an L image stays gray.
//
// # Codecs
//
// Decoding accepts PNG, JPEG, BMP, GIF, TIFF and WebP. Encoding supports all
// of them except WebP. Images with transparency are composited over white
// before JPEG encoding.
//
// # Drawing
//
// Shapes and TrueType text are rendered with github.com/gogpu/gg. When no
// usable font file is given, text falls back to a built-in 7x13 bitmap face.
package imaging
