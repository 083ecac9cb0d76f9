package texture

import (
	"fmt"
	"image"
	"image/color"
)

const (
	tgaUncompressed = 2
	tgaRLE          = 10
	tgaHeaderSize   = 18
)

// decodeTGA decodes an uncompressed or RLE true-color TGA image (24 or
// 32 bits per pixel).
func decodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header truncated")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	case imageType != tgaUncompressed && imageType != tgaRLE:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("tga: image id truncated")
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		bpp:         bpp / 8,
		topToBottom: topToBottom,
	}

	if imageType == tgaUncompressed {
		if len(r.data) < width*height*r.bpp {
			return nil, fmt.Errorf("tga: pixel data truncated")
		}
		for r.pixel < width*height {
			r.put(r.read())
		}
		return r.img, nil
	}

	r.decodeRLE()
	return r.img, nil
}

type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	pixel       int
	bpp         int
	topToBottom bool
}

func (r *tgaReader) remaining() int { return len(r.data) - r.pos }

// read consumes one BGR(A) pixel.
func (r *tgaReader) read() color.RGBA {
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c
}

// put stores c at the next pixel, honoring the origin flag.
func (r *tgaReader) put(c color.RGBA) {
	w, h := r.img.Rect.Dx(), r.img.Rect.Dy()
	x, y := r.pixel%w, r.pixel/w
	if !r.topToBottom {
		y = h - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}

// decodeRLE stops quietly on truncated input, leaving the rest transparent.
func (r *tgaReader) decodeRLE() {
	total := r.img.Rect.Dx() * r.img.Rect.Dy()
	for r.pixel < total && r.remaining() > 0 {
		header := r.data[r.pos]
		r.pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			if r.remaining() < r.bpp {
				return
			}
			c := r.read()
			for i := 0; i < count && r.pixel < total; i++ {
				r.put(c)
			}
			continue
		}

		for i := 0; i < count && r.pixel < total; i++ {
			if r.remaining() < r.bpp {
				return
			}
			r.put(r.read())
		}
	}
}
