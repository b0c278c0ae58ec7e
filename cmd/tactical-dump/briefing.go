package main

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render/raster"
)

const (
	briefingWidth  = 640
	briefingHeight = 720
)

func runBriefing(o options) error {
	s, _, err := openLevel(o)
	if err != nil {
		return err
	}
	out := o.out
	if out == "" {
		out = fmt.Sprintf("briefing-%d.png", o.level)
	}

	font, err := render.ButtonFont(13)
	if err != nil {
		return err
	}
	c := raster.NewCanvas(briefingWidth, briefingHeight)
	mapArea := image.Rect(16, 40, briefingWidth-16, 400)
	textArea := image.Rect(16, 416, briefingWidth-16, briefingHeight-16)

	title := render.Plain(s.Level.Name, render.WrapMetrics{Font: font, Width: mapArea.Dx()},
		render.TranslateColorShade(render.HueSkyBlue, render.ShadeLightest), render.Black)
	title.Draw(c, image.Rect(16, 12, briefingWidth-16, 12+title.Height()))
	grid := render.TranslateColorShade(render.HueBlue, render.ShadeDarker)
	for x := mapArea.Min.X; x < mapArea.Max.X; x += 64 {
		c.Line(image.Pt(x, mapArea.Min.Y), image.Pt(x, mapArea.Max.Y), grid)
	}
	for y := mapArea.Min.Y; y < mapArea.Max.Y; y += 64 {
		c.Line(image.Pt(mapArea.Min.X, y), image.Pt(mapArea.Max.X, y), grid)
	}

	if err := s.DrawBriefing(c, font, mapArea, textArea); err != nil {
		return err
	}
	if err := c.SavePNG(out); err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"level":  s.Level.Name,
		"points": len(s.Level.BriefPoints),
		"file":   out,
	}).Info("wrote briefing")
	return nil
}
