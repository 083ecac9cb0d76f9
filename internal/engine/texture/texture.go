// Package texture uploads decoded images to GPU textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/Faultbox/nsengine/internal/assets"
	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/internal/engine/gpu"
)

// Color is a normalized RGBA color.
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color { return Color{R: r, G: g, B: b, A: 1} }

func channel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Texture is a 2D RGBA texture.
type Texture struct {
	dev     gpu.Device
	id      uint32
	width   int32
	height  int32
	Sampler gpu.Sampler
}

// New creates an empty texture with repeat wrapping and nearest filtering.
func New(dev gpu.Device) (*Texture, error) {
	id, err := dev.CreateTexture()
	if err != nil {
		return nil, errs.Report(errs.Wrap("texture.New", errs.CodeGPUObjectFailed, errs.Error, err))
	}
	return &Texture{
		dev: dev,
		id:  id,
		Sampler: gpu.Sampler{
			Wrap:      gpu.WrapRepeat,
			MinFilter: gpu.FilterNearest,
			MagFilter: gpu.FilterNearest,
		},
	}, nil
}

// ID returns the texture handle.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the dimensions of the last upload.
func (t *Texture) Size() (width, height int32) { return t.width, t.height }

// Write uploads img. Rows are flipped so that texture coordinate v=0 is the
// bottom of the image.
func (t *Texture) Write(img image.Image) {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	t.width, t.height = int32(b.Dx()), int32(b.Dy())
	t.dev.TexImage(t.id, t.width, t.height, flipRows(rgba.Pix, rgba.Stride, b.Dy()), t.Sampler)
}

// WriteFromFile decodes a PNG, JPEG, BMP or TGA file and uploads it.
func (t *Texture) WriteFromFile(load assets.Loader, path string) error {
	data, err := load(path)
	if err != nil {
		return errs.Report(errs.Wrap("texture.WriteFromFile", errs.CodeFileIO, errs.Error,
			fmt.Errorf("read %s: %w", path, err)))
	}

	img, err := Decode(path, data)
	if err != nil {
		return errs.Report(errs.Wrap("texture.WriteFromFile", errs.CodeFileIO, errs.Error,
			fmt.Errorf("decode %s: %w", path, err)))
	}

	t.Write(img)
	return nil
}

// Fill replaces the contents with a single pixel of c.
func (t *Texture) Fill(c Color) {
	t.width, t.height = 1, 1
	t.dev.TexImage(t.id, 1, 1, []byte{channel(c.R), channel(c.G), channel(c.B), channel(c.A)}, t.Sampler)
}

// Bind binds the texture to a texture unit.
func (t *Texture) Bind(unit uint32) {
	t.dev.BindTexture(unit, t.id)
}

// Close deletes the texture. Safe on nil and idempotent.
func (t *Texture) Close() {
	if t == nil || t.id == 0 {
		return
	}
	t.dev.DeleteTexture(t.id)
	t.id = 0
}

// Decode decodes image data, choosing TGA by file extension and sniffing
// every other format.
func Decode(path string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return decodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func flipRows(pix []byte, stride, rows int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < rows; y++ {
		copy(out[(rows-1-y)*stride:(rows-y)*stride], pix[y*stride:(y+1)*stride])
	}
	return out
}
