package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", img.Bounds())
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel (1, 0) = %v, want green", got)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestImageToRGBAReorigins(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{R: 9, A: 255})
	out := ImageToRGBA(src)
	if out.Bounds().Min != (image.Point{}) {
		t.Fatalf("origin = %v, want (0, 0)", out.Bounds().Min)
	}
	if out.RGBAAt(0, 0).R != 9 {
		t.Errorf("pixel not moved to origin: %v", out.RGBAAt(0, 0))
	}
}

func TestSampleNearest(t *testing.T) {
	img := checker()
	tests := []struct {
		uv   [2]float32
		want [4]float32
	}{
		{[2]float32{0.25, 0.25}, [4]float32{1, 0, 0, 1}},
		{[2]float32{0.75, 0.25}, [4]float32{0, 1, 0, 1}},
		{[2]float32{0.25, 0.75}, [4]float32{0, 0, 1, 1}},
		{[2]float32{1.25, -0.25}, [4]float32{0, 0, 1, 1}}, // wraps
	}
	for _, tt := range tests {
		if got := SampleNearest(img, tt.uv); got != tt.want {
			t.Errorf("SampleNearest(%v) = %v, want %v", tt.uv, got, tt.want)
		}
	}
}
