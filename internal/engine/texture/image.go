// Package texture provides image decoding and GL texture objects: 2D
// textures for material base colors and the sample pattern, and cube maps
// for the capture targets.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Decode decodes a PNG, JPEG or BMP image into RGBA.
func Decode(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return ImageToRGBA(img), nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with origin (0, 0).
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// SampleNearest returns the texel nearest to uv as linear floats in [0, 1].
// UVs wrap, matching GL_REPEAT; v=0 is the first row as glTF defines it.
func SampleNearest(img *image.RGBA, uv [2]float32) [4]float32 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return [4]float32{1, 1, 1, 1}
	}
	x := wrap(int(floor(uv[0]*float32(w))), w)
	y := wrap(int(floor(uv[1]*float32(h))), h)
	c := img.RGBAAt(x, y)
	return rgbaToFloat(c)
}

func rgbaToFloat(c color.RGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func floor(f float32) float32 {
	i := float32(int(f))
	if i > f {
		i--
	}
	return i
}
