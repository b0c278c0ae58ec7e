package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI renders laid-out text for a terminal. Soft wraps chosen by Rewrap become
// newlines, color runs become lipgloss styles, and pictures become [name].
func ANSI(t *StyledText) string { return flatten(t, true) }

// Flatten is ANSI without the colors.
func Flatten(t *StyledText) string { return flatten(t, false) }

func flatten(t *StyledText, styled bool) string {
	var out strings.Builder
	var run strings.Builder
	var runFore, runBack color.RGBA

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if !styled {
			out.WriteString(run.String())
			run.Reset()
			return
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(hexColor(runFore))).
			Background(lipgloss.Color(hexColor(runBack)))
		out.WriteString(style.Render(run.String()))
		run.Reset()
	}

	lineTop := -1
	for i, ch := range t.chars {
		if ch.Special == CharDelay || (ch.Special == CharLineBreak && i == len(t.chars)-1) {
			continue
		}
		if lineTop >= 0 && ch.Bounds.Min.Y != lineTop {
			flush()
			out.WriteByte('\n')
		}
		lineTop = ch.Bounds.Min.Y

		var s string
		switch ch.Special {
		case CharLineBreak:
			continue
		case CharWordBreak, CharNoBreak:
			s = " "
		case CharTab:
			cell := max(1, t.metrics.Font.LogicalWidth)
			s = strings.Repeat(" ", max(1, (ch.Bounds.Dx()+cell-1)/cell))
		case CharPicture:
			s = "[" + t.picts[ch.PictIndex].Picture + "]"
		default:
			s = string(ch.Rune)
		}

		if run.Len() > 0 && (ch.Fore != runFore || ch.Back != runBack) {
			flush()
		}
		runFore, runBack = ch.Fore, ch.Back
		run.WriteString(s)
	}
	flush()
	return out.String()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
