package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/internal/engine/gpu"
	"github.com/Faultbox/nsengine/internal/engine/gpu/gputest"
	"github.com/Faultbox/nsengine/internal/logger"
)

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestNewDefaults(t *testing.T) {
	dev := gputest.New()
	tex, err := New(dev)
	require.NoError(t, err)
	assert.Equal(t, gpu.WrapRepeat, tex.Sampler.Wrap)
	assert.Equal(t, gpu.FilterNearest, tex.Sampler.MinFilter)
	assert.Equal(t, gpu.FilterNearest, tex.Sampler.MagFilter)
}

func TestWriteFlipsRows(t *testing.T) {
	dev := gputest.New()
	tex, err := New(dev)
	require.NoError(t, err)

	tex.Write(checker())

	got := dev.Textures[tex.ID()]
	assert.Equal(t, int32(2), got.Width)
	assert.Equal(t, int32(2), got.Height)
	// First uploaded row is the bottom row of the image.
	assert.Equal(t, []byte{0, 0, 255, 255}, got.Pixels[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, got.Pixels[8:12])
}

func TestFill(t *testing.T) {
	dev := gputest.New()
	tex, err := New(dev)
	require.NoError(t, err)

	tex.Fill(RGB(1, 0.5, 0))

	got := dev.Textures[tex.ID()]
	assert.Equal(t, int32(1), got.Width)
	assert.Equal(t, []byte{255, 128, 0, 255}, got.Pixels)
	w, h := tex.Size()
	assert.Equal(t, int32(1), w)
	assert.Equal(t, int32(1), h)
}

func TestWriteFromFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))

	files := map[string][]byte{"checker.png": buf.Bytes(), "broken.png": []byte("nope")}
	load := func(path string) ([]byte, error) {
		if b, ok := files[path]; ok {
			return b, nil
		}
		return nil, errors.New("not found")
	}

	dev := gputest.New()
	tex, err := New(dev)
	require.NoError(t, err)

	require.NoError(t, tex.WriteFromFile(load, "checker.png"))
	assert.Len(t, dev.Textures[tex.ID()].Pixels, 16)

	defer logger.Replace(zap.NewNop())()
	err = tex.WriteFromFile(load, "missing.png")
	assert.True(t, errs.Is(err, errs.CodeFileIO))
	err = tex.WriteFromFile(load, "broken.png")
	assert.True(t, errs.Is(err, errs.CodeFileIO))
}

func TestBindAndClose(t *testing.T) {
	dev := gputest.New()
	tex, err := New(dev)
	require.NoError(t, err)

	tex.Bind(2)
	assert.Equal(t, tex.ID(), dev.Bound[2])

	tex.Close()
	tex.Close()
	assert.Zero(t, dev.Live())

	var nilTex *Texture
	nilTex.Close()
}

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x1, bottom-up, 24bpp: blue then red in BGR order.
	data := append(tgaHeader(2, 2, 1, 24, 0), 255, 0, 0, 0, 0, 255)

	img, err := Decode("tex.TGA", data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.At(1, 0))
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x2 top-down 32bpp: one run of 4 green, one raw packet of 2.
	data := tgaHeader(10, 3, 2, 32, 0x20)
	data = append(data, 0x83, 0, 255, 0, 255)
	data = append(data, 0x01, 0, 0, 255, 128, 255, 0, 0, 64)

	img, err := decodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.At(0, 1))
	assert.Equal(t, color.RGBA{R: 255, A: 128}, img.At(1, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 64}, img.At(2, 1))
}

func TestDecodeTGAErrors(t *testing.T) {
	_, err := decodeTGA([]byte{1, 2, 3})
	assert.Error(t, err)

	_, err = decodeTGA(tgaHeader(1, 1, 1, 24, 0))
	assert.ErrorContains(t, err, "unsupported image type")

	_, err = decodeTGA(tgaHeader(2, 1, 1, 16, 0))
	assert.ErrorContains(t, err, "bit depth")

	_, err = decodeTGA(tgaHeader(2, 4, 4, 24, 0))
	assert.ErrorContains(t, err, "truncated")
}
