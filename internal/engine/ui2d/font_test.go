package ui2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestGlyphAtlasLayout(t *testing.T) {
	a := newGlyphAtlas(basicfont.Face7x13)

	assert.Equal(t, 7, a.glyphW)
	assert.Equal(t, 13, a.glyphH)
	assert.Equal(t, atlasColumns*7, a.img.Bounds().Dx())
	assert.Zero(t, a.img.Bounds().Dy()%13)
	assert.Contains(t, a.index, 'A')
	assert.Contains(t, a.index, 'é')
	assert.NotContains(t, a.index, '\n')
}

func TestGlyphAtlasHasInk(t *testing.T) {
	a := newGlyphAtlas(basicfont.Face7x13)

	ink := func(r rune) int {
		i := a.index[r]
		x0 := (i % atlasColumns) * a.glyphW
		y0 := (i / atlasColumns) * a.glyphH
		n := 0
		for y := y0; y < y0+a.glyphH; y++ {
			for x := x0; x < x0+a.glyphW; x++ {
				if a.img.RGBAAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}

	assert.Positive(t, ink('A'))
	assert.Positive(t, ink('g'))
	assert.Zero(t, ink(' '))
}

func TestGlyphUV(t *testing.T) {
	a := newGlyphAtlas(basicfont.Face7x13)

	u0, v0, u1, v1 := a.UV(' ')
	assert.Equal(t, float32(0), u0)
	assert.Equal(t, float32(0), v0)
	assert.InDelta(t, 1.0/atlasColumns, u1, 1e-6)
	assert.Greater(t, v1, v0)

	// Unknown runes fall back to '?'.
	qu0, qv0, _, _ := a.UV('?')
	fu0, fv0, _, _ := a.UV('漢')
	require.Equal(t, qu0, fu0)
	require.Equal(t, qv0, fv0)
}

func TestMeasureText(t *testing.T) {
	a := NewAtlas()

	w, h := a.Measure("", 1)
	assert.Zero(t, w)
	assert.Zero(t, h)

	w, h = a.Measure("hello", 1)
	assert.Equal(t, float32(35), w)
	assert.Equal(t, float32(13), h)

	w, h = a.Measure("ab\nlonger\nc", 2)
	assert.Equal(t, float32(6*7*2), w)
	assert.Equal(t, float32(3*13*2), h)

	w, _ = a.Measure("héllo", 1)
	assert.Equal(t, float32(35), w)
}
