package render

import (
	"image"
	"image/color"
)

// Draw renders the whole text inside bounds.
func (t *StyledText) Draw(c Canvas, bounds image.Rectangle) {
	t.DrawRange(c, bounds, 0, len(t.chars))
}

// DrawRange renders characters [begin, end) inside bounds. Backgrounds and the
// caret go first, then glyphs, then inline pictures.
func (t *StyledText) DrawRange(c Canvas, bounds image.Rectangle, begin, end int) {
	m := t.metrics
	sel := t.selection

	drawCaret := 0 <= sel.Begin && sel.Begin == sel.End && sel.End < len(t.text)
	var prev image.Rectangle

	for i := begin; i < end; i++ {
		ch := &t.chars[i]
		r := ch.Bounds.Add(bounds.Min)
		fill := ch.Back
		if t.isSelected(ch) {
			fill = ch.Fore
		}

		if drawCaret {
			if ch.Offset >= sel.Begin {
				caret := image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y)
				if ch.Special == CharLineBreak {
					caret = image.Rect(prev.Max.X, prev.Min.Y, prev.Max.X+1, prev.Max.Y)
				}
				c.FillRect(caret, ch.Fore)
				drawCaret = false
			} else {
				prev = r
			}
		}

		switch ch.Special {
		case CharPicture, CharDelay:
			continue
		case CharLineBreak:
			if isBlack(fill) {
				continue
			}
			r.Max.X = bounds.Max.X
		default:
			if isBlack(fill) {
				continue
			}
		}
		c.FillRect(r, fill)
	}

	if drawCaret && len(t.chars) > 0 {
		last := &t.chars[len(t.chars)-1]
		r := last.Bounds.Add(bounds.Min)
		c.FillRect(image.Rect(r.Max.X, r.Min.Y, r.Max.X+1, r.Max.Y), last.Fore)
	}

	adjust := image.Pt(bounds.Min.X, bounds.Min.Y+m.Font.Ascent+m.LineSpacing)
	for i := begin; i < end; i++ {
		ch := &t.chars[i]
		if ch.Special != CharNone {
			continue
		}
		col := ch.Fore
		if t.isSelected(ch) {
			col = ch.Back
		}
		c.DrawGlyph(m.Font, ch.Bounds.Min.Add(adjust), ch.Rune, col)
	}

	for i := begin; i < end; i++ {
		ch := &t.chars[i]
		if ch.Special != CharPicture {
			continue
		}
		pict := t.picts[ch.PictIndex]
		at := bounds.Min.Add(image.Pt(pict.Bounds.Min.X, pict.Bounds.Min.Y+m.LineSpacing))
		c.DrawTexture(t.textures[ch.PictIndex], at)
	}
}

// DrawCursor fills a block cursor over character index, clipped to bounds.
func (t *StyledText) DrawCursor(c Canvas, bounds image.Rectangle, index int, col color.RGBA) {
	m := t.metrics
	lineHeight := m.Font.Height + m.LineSpacing
	ch := t.chars[index]
	r := image.Rect(0, 0, m.Font.LogicalWidth, lineHeight).
		Add(bounds.Min.Add(ch.Bounds.Min)).
		Intersect(bounds)
	if r.Dx() > 0 && r.Dy() > 0 {
		c.FillRect(r, col)
	}
}
