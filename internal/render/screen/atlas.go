// Package screen draws styled text and interface items onto Ebitengine images.
package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type glyphKey struct {
	face font.Face
	r    rune
}

// glyph is a white rendering of one rune. Origin is the offset from the
// baseline-left dot to the image's top-left corner.
type glyph struct {
	image  *ebiten.Image
	origin image.Point
}

// Atlas caches glyph images per face and rune. Glyphs are rendered white
// and tinted at draw time.
type Atlas struct {
	glyphs map[glyphKey]*glyph
}

// NewAtlas returns an empty atlas. Glyphs are rasterized on first use.
func NewAtlas() *Atlas {
	return &Atlas{glyphs: make(map[glyphKey]*glyph)}
}

// lookup returns the cached image for r in face, or nil for blank runes.
func (a *Atlas) lookup(face font.Face, r rune) *glyph {
	k := glyphKey{face, r}
	if g, ok := a.glyphs[k]; ok {
		return g
	}
	var g *glyph
	if img, origin := rasterGlyph(face, r); img != nil {
		g = &glyph{image: ebiten.NewImageFromImage(img), origin: origin}
	}
	a.glyphs[k] = g
	return g
}

// Len returns the number of cached runes, blanks included.
func (a *Atlas) Len() int { return len(a.glyphs) }

// rasterGlyph draws r with face into a tight NRGBA image. It returns nil
// when the rune has no ink.
func rasterGlyph(face font.Face, r rune) (*image.NRGBA, image.Point) {
	b, _, ok := face.GlyphBounds(r)
	if !ok {
		b, _, _ = face.GlyphBounds('?')
		r = '?'
	}
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	maxX, maxY := b.Max.X.Ceil(), b.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		return nil, image.Point{}
	}

	img := image.NewNRGBA(image.Rect(0, 0, maxX-minX, maxY-minY))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(-minX, -minY),
	}
	d.DrawString(string(r))
	if !inked(img) {
		return nil, image.Point{}
	}
	return img, image.Pt(minX, minY)
}

func inked(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return true
		}
	}
	return false
}
