package render

import "image"

// pictPadding is the gap left under an inline picture.
const pictPadding = 3

// Rewrap lays out every character against the wrap metrics. It recomputes all
// bounds from scratch, so calling it twice gives the same result.
func (t *StyledText) Rewrap() {
	m := &t.metrics
	if m.TabWidth <= 0 {
		m.TabWidth = max(m.Width/2, 1)
	}

	t.autoWidth, t.autoHeight = 0, 0
	h := m.SideMargin
	v := 0

	lineHeight := m.Font.Height + m.LineSpacing
	wrapDistance := m.Width - m.SideMargin

	for i := range t.chars {
		ch := &t.chars[i]
		ch.Bounds = image.Rect(h, v, h, v+lineHeight)

		switch ch.Special {
		case CharNone, CharNoBreak:
			h += m.Font.CharWidth(ch.Rune)
			if h >= wrapDistance {
				if moved, ok := t.moveWordDown(i, v+lineHeight); ok {
					v += lineHeight
					h = moved
				}
			}
			t.autoWidth = max(t.autoWidth, h)

		case CharTab:
			h += m.TabWidth - (h % m.TabWidth)
			t.autoWidth = max(t.autoWidth, h)

		case CharLineBreak:
			h = m.SideMargin
			v += lineHeight
			continue

		case CharWordBreak:
			h += m.Font.CharWidth(ch.Rune)

		case CharPicture:
			pict := &t.picts[ch.PictIndex]
			if h != m.SideMargin {
				v += lineHeight
			}
			h = m.SideMargin
			pict.Bounds = pict.Bounds.Add(image.Pt(0, v-pict.Bounds.Min.Y))
			v += pict.Bounds.Dy() + m.LineSpacing + pictPadding
			if t.chars[i+1].Special == CharLineBreak {
				v -= lineHeight
			}
			continue

		case CharDelay:
		}
		ch.Bounds.Max.X = h
	}
	t.autoHeight = v
}

// moveWordDown relocates the word ending at index onto the line starting at v.
// It returns the horizontal position after the word and whether anything moved.
// A word that already starts at the margin is left where it is so that it
// overflows instead of being split.
func (t *StyledText) moveWordDown(index, v int) (int, bool) {
	m := &t.metrics
	for i := index; i >= 0; i-- {
		switch t.chars[i].Special {
		case CharLineBreak, CharPicture:
			return m.SideMargin, false

		case CharWordBreak, CharTab, CharDelay:
			if t.chars[i+1].Bounds.Min.X <= m.SideMargin {
				return m.SideMargin, false
			}
			h := m.SideMargin
			for j := i + 1; j <= index; j++ {
				size := t.chars[j].Bounds.Size()
				t.chars[j].Bounds = image.Rectangle{
					Min: image.Pt(h, v),
					Max: image.Pt(h+size.X, v+size.Y),
				}
				h += m.Font.CharWidth(t.chars[j].Rune)
			}
			return h, true
		}
	}
	return m.SideMargin, false
}
