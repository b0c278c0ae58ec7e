// Package raster renders styled text and interface items offscreen, for
// briefing snapshots and other headless output.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
)

// Canvas implements render.Canvas on a gg context.
type Canvas struct {
	dc   *gg.Context
	face font.Face
}

// NewCanvas returns a black canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(render.Black)
	dc.Clear()
	return &Canvas{dc: dc}
}

// FillRect fills r with col.
func (c *Canvas) FillRect(r image.Rectangle, col color.RGBA) {
	if r.Empty() {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.dc.Fill()
}

// DrawGlyph draws r with its baseline-left corner at at.
func (c *Canvas) DrawGlyph(f *render.Font, at image.Point, r rune, col color.RGBA) {
	if c.face != f.Face {
		c.dc.SetFontFace(f.Face)
		c.face = f.Face
	}
	c.dc.SetColor(col)
	c.dc.DrawString(string(r), float64(at.X), float64(at.Y))
}

// DrawTexture draws t when it is a plain image; other textures are skipped.
func (c *Canvas) DrawTexture(t render.Texture, at image.Point) {
	if img, ok := t.(image.Image); ok {
		c.dc.DrawImage(img, at.X, at.Y)
	}
}

// Line strokes a one pixel line.
func (c *Canvas) Line(from, to image.Point, col color.RGBA) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(1)
	c.dc.DrawLine(float64(from.X)+0.5, float64(from.Y)+0.5, float64(to.X)+0.5, float64(to.Y)+0.5)
	c.dc.Stroke()
}

// Circle fills a dot of radius r around at.
func (c *Canvas) Circle(at image.Point, r float64, col color.RGBA) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(float64(at.X), float64(at.Y), r)
	c.dc.Fill()
}

// Image returns the rendered pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the canvas to path.
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
