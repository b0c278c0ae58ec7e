package render

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

// Font pairs a font.Face with the integer metrics the text layout needs.
type Font struct {
	Face         font.Face
	Height       int // line height without spacing
	Ascent       int // baseline offset from the top of a line
	LogicalWidth int // nominal cell width, used for cursors

	ascii [128]int
}

// NewFont measures face and caches ASCII advances.
func NewFont(face font.Face) *Font {
	m := face.Metrics()
	f := &Font{
		Face:   face,
		Height: m.Height.Ceil(),
		Ascent: m.Ascent.Ceil(),
	}
	for r := range f.ascii {
		f.ascii[r] = advance(face, rune(r))
	}
	f.LogicalWidth = f.ascii['M']
	return f
}

// TacticalFont is the small fixed-width font used for labels and messages.
func TacticalFont() *Font {
	return NewFont(basicfont.Face7x13)
}

// NewTrueTypeFont parses TrueType data at the given point size (72 DPI).
func NewTrueTypeFont(ttf []byte, size float64) (*Font, error) {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return NewFont(face), nil
}

// ButtonFont is the larger monospace face used for interface items.
func ButtonFont(size float64) (*Font, error) {
	return NewTrueTypeFont(gomono.TTF, size)
}

// CharWidth returns the advance of r in whole pixels.
func (f *Font) CharWidth(r rune) int {
	if r >= 0 && r < rune(len(f.ascii)) {
		return f.ascii[r]
	}
	return advance(f.Face, r)
}

// StringWidth sums the advances of every rune in s.
func (f *Font) StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += f.CharWidth(r)
	}
	return w
}

func advance(face font.Face, r rune) int {
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		adv, _ = face.GlyphAdvance('?')
	}
	return adv.Round()
}
