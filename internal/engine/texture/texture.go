// Package texture uploads decoded images to GL textures.
package texture

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a GL 2D texture with its pixel size.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// FromRGBA uploads img with mipmaps. The image must have a zero origin and
// a stride of exactly 4*width.
func FromRGBA(img *image.RGBA) *Texture {
	b := img.Bounds()
	t := &Texture{Width: b.Dx(), Height: b.Dy()}

	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.Width), int32(t.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t
}

// Aspect returns width/height, or 1 for an empty texture.
func (t *Texture) Aspect() float32 {
	if t == nil || t.Height == 0 {
		return 1
	}
	return float32(t.Width) / float32(t.Height)
}

// Delete frees the GL texture. Safe to call twice.
func (t *Texture) Delete() {
	if t != nil && t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
