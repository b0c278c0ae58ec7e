package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// levelPages returns the retro text a level shows outside of play: its
// prologue, each brief point and its epilogue.
func levelPages(l *world.Level) []string {
	var pages []string
	if l.Prologue != "" {
		pages = append(pages, l.Prologue)
	}
	for _, bp := range l.BriefPoints {
		text := bp.Content
		if bp.Title != "" {
			text = "\\i" + bp.Title + "\\r\n" + text
		}
		pages = append(pages, text)
	}
	if l.Epilogue != "" {
		pages = append(pages, l.Epilogue)
	}
	return pages
}

// runText lays out a level's pages at the -width column count and prints
// them with terminal colors.
func runText(o options) error {
	_, _, lvl, err := loadLevel(o)
	if err != nil {
		return err
	}
	f := render.TacticalFont()
	m := render.WrapMetrics{Font: f, Width: o.width * f.LogicalWidth}
	fore := render.TranslateColorShade(render.HueGray, render.ShadeLightest)

	var plain strings.Builder
	for i, page := range levelPages(lvl) {
		t, err := render.Retro(page, m, fore, render.Black)
		if err != nil {
			return fmt.Errorf("%s page %d: %w", lvl.Name, i, err)
		}
		if i > 0 {
			fmt.Fprintln(os.Stdout)
			plain.WriteString("\n\n")
		}
		fmt.Fprintln(os.Stdout, render.ANSI(t))
		plain.WriteString(render.Flatten(t))
	}

	if o.copy {
		if err := clipboard.WriteAll(plain.String()); err != nil {
			logger.Log.WithError(err).Warn("clipboard unavailable")
		}
	}
	return nil
}
