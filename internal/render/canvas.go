package render

import (
	"image"
	"image/color"
)

// Texture is anything with pixel bounds that a Canvas knows how to blit.
// Both *ebiten.Image and image.Image satisfy it.
type Texture interface {
	Bounds() image.Rectangle
}

// Canvas is the drawing surface styled text and interface items render to.
type Canvas interface {
	FillRect(r image.Rectangle, c color.RGBA)
	// DrawGlyph draws r with its baseline-left corner at at.
	DrawGlyph(f *Font, at image.Point, r rune, c color.RGBA)
	DrawTexture(t Texture, at image.Point)
}
