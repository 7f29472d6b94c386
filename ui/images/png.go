// Package images holds image helpers shared by the Tk views.
package images

import (
	"bytes"
	"image"
	"image/png"
)

var encoder = png.Encoder{CompressionLevel: png.BestSpeed, BufferPool: &bufferPool{}}

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = encoder.Encode(&buf, img)
	return buf.Bytes()
}

// bufferPool keeps one encoder buffer; chart frames are encoded on the Tk
// thread only.
type bufferPool struct{ b *png.EncoderBuffer }

func (p *bufferPool) Get() *png.EncoderBuffer { b := p.b; p.b = nil; return b }

func (p *bufferPool) Put(b *png.EncoderBuffer) { p.b = b }
