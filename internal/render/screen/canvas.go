package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
)

// Canvas implements render.Canvas on an Ebitengine image.
type Canvas struct {
	Target *ebiten.Image

	atlas    *Atlas
	textures map[image.Image]*ebiten.Image
}

// NewCanvas draws onto target, which may be replaced between frames.
func NewCanvas(target *ebiten.Image, atlas *Atlas) *Canvas {
	if atlas == nil {
		atlas = NewAtlas()
	}
	return &Canvas{
		Target:   target,
		atlas:    atlas,
		textures: make(map[image.Image]*ebiten.Image),
	}
}

// FillRect fills r with c.
func (c *Canvas) FillRect(r image.Rectangle, col color.RGBA) {
	if r.Empty() {
		return
	}
	vector.FillRect(c.Target, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), col, false)
}

// DrawGlyph tints the cached white glyph of r with col.
func (c *Canvas) DrawGlyph(f *render.Font, at image.Point, r rune, col color.RGBA) {
	g := c.atlas.lookup(f.Face, r)
	if g == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(at.X+g.origin.X), float64(at.Y+g.origin.Y))
	op.ColorScale.ScaleWithColor(col)
	c.Target.DrawImage(g.image, &op)
}

// DrawTexture blits t with its top-left corner at at. Plain images are
// uploaded once and reused.
func (c *Canvas) DrawTexture(t render.Texture, at image.Point) {
	var img *ebiten.Image
	switch t := t.(type) {
	case *ebiten.Image:
		img = t
	case image.Image:
		img = c.upload(t)
	default:
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	c.Target.DrawImage(img, &op)
}

func (c *Canvas) upload(src image.Image) *ebiten.Image {
	if img, ok := c.textures[src]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(src)
	c.textures[src] = img
	return img
}

// Forget drops uploaded textures, for use between levels.
func (c *Canvas) Forget() {
	for _, img := range c.textures {
		img.Deallocate()
	}
	clear(c.textures)
}

// StrokeLine draws a one pixel line, used for blip direction ticks.
func (c *Canvas) StrokeLine(from, to image.Point, col color.RGBA) {
	vector.StrokeLine(c.Target, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 1, col, false)
}

// ProgressBar draws a framed bar filled to done out of total.
func (c *Canvas) ProgressBar(r image.Rectangle, done, total int, col color.RGBA) {
	vector.StrokeRect(c.Target, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, col, false)
	if total <= 0 {
		return
	}
	w := (r.Dx() - 4) * min(max(done, 0), total) / total
	c.FillRect(image.Rect(r.Min.X+2, r.Min.Y+2, r.Min.X+2+w, r.Max.Y-2), col)
}
