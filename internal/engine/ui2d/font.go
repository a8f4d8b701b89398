package ui2d

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const atlasColumns = 16

// Printable ASCII and Latin-1.
var atlasRanges = [][2]rune{
	{0x20, 0x7e},
	{0xa0, 0xff},
}

// Atlas is a fixed-width bitmap font laid out on one image, white glyphs
// on a transparent background.
type Atlas struct {
	img    *image.RGBA
	index  map[rune]int
	glyphW int
	glyphH int
}

// NewAtlas bakes basicfont.Face7x13.
func NewAtlas() *Atlas {
	return newGlyphAtlas(basicfont.Face7x13)
}

func newGlyphAtlas(face *basicfont.Face) *Atlas {
	var runes []rune
	for _, r := range atlasRanges {
		for c := r[0]; c <= r[1]; c++ {
			runes = append(runes, c)
		}
	}

	a := &Atlas{
		index:  make(map[rune]int, len(runes)),
		glyphW: face.Advance,
		glyphH: face.Height,
	}
	rows := (len(runes) + atlasColumns - 1) / atlasColumns
	a.img = image.NewRGBA(image.Rect(0, 0, atlasColumns*a.glyphW, rows*a.glyphH))

	// White glyphs on a transparent background; the text shader uses alpha.
	mask := image.NewAlpha(a.img.Bounds())
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
	}
	for i, r := range runes {
		a.index[r] = i
		col, row := i%atlasColumns, i/atlasColumns
		d.Dot = fixed.P(col*a.glyphW, row*a.glyphH+face.Ascent)
		d.DrawString(string(r))
	}
	draw.DrawMask(a.img, a.img.Bounds(), image.NewUniform(color.White), image.Point{},
		mask, image.Point{}, draw.Src)

	return a
}

// Image returns the atlas pixels.
func (a *Atlas) Image() *image.RGBA {
	return a.img
}

// GlyphSize returns the size of one glyph cell in pixels.
func (a *Atlas) GlyphSize() (int, int) {
	return a.glyphW, a.glyphH
}

// UV returns the texture coordinates of a rune. Runes outside the atlas
// render as '?'.
func (a *Atlas) UV(r rune) (u0, v0, u1, v1 float32) {
	i, ok := a.index[r]
	if !ok {
		i = a.index['?']
	}
	b := a.img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	x := float32((i % atlasColumns) * a.glyphW)
	y := float32((i / atlasColumns) * a.glyphH)
	return x / w, y / h, (x + float32(a.glyphW)) / w, (y + float32(a.glyphH)) / h
}

// Measure returns the width and height of rendered text.
func (a *Atlas) Measure(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return float32(longest*a.glyphW) * scale, float32(len(lines)*a.glyphH) * scale
}
