package framebuffer

import (
	"image/color"
	"testing"
)

func TestBottomUpToImage(t *testing.T) {
	// 2x2, bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img := bottomUpToImage(pixels, 2, 2)

	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top-left = %v, want blue", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-right = %v, want red", got)
	}
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		w, h         int32
		wantW, wantH int32
	}{
		{640, 480, 640, 480},
		{0, 480, 1, 480},
		{-3, -7, 1, 1},
	}
	for _, tt := range tests {
		w, h := clampSize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("clampSize(%d, %d) = %d, %d; want %d, %d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}
