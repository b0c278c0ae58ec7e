package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
)

func TestFillRect(t *testing.T) {
	c := NewCanvas(20, 10)
	red := color.RGBA{255, 0, 0, 255}
	c.FillRect(image.Rect(2, 2, 6, 5), red)

	img := c.Image()
	if got := color.RGBAModel.Convert(img.At(3, 3)).(color.RGBA); got != red {
		t.Errorf("inside fill = %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(10, 8)).(color.RGBA); got != render.Black {
		t.Errorf("outside fill = %v", got)
	}
}

func TestStyledTextInk(t *testing.T) {
	c := NewCanvas(120, 40)
	f := render.TacticalFont()
	st := render.Plain("HELLO", render.WrapMetrics{Font: f, Width: 100}, render.White, render.Black)
	st.Draw(c, image.Rect(0, 0, 120, 40))

	img := c.Image()
	lit := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0x8000 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("text left no ink")
	}
}
