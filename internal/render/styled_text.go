package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// SpecialChar classifies a decoded character for layout.
type SpecialChar uint8

const (
	CharNone SpecialChar = iota
	CharLineBreak
	CharWordBreak
	CharNoBreak
	CharTab
	CharPicture
	CharDelay // zero-width marker left by a color escape
)

var specialNames = [...]string{"NONE", "LINE_BREAK", "WORD_BREAK", "NO_BREAK", "TAB", "PICTURE", "DELAY"}

func (s SpecialChar) String() string {
	if int(s) < len(specialNames) {
		return specialNames[s]
	}
	return fmt.Sprintf("SpecialChar(%d)", uint8(s))
}

// Parse errors.
var (
	ErrBadEscape   = errors.New("bad retro escape")
	ErrBadPictCode = errors.New("bad inline picture code")
)

const noBreakSpace = '\u00a0'

// StyledChar is one decoded character with its colors and laid-out bounds.
type StyledChar struct {
	Offset    int // byte offset into the source text
	Rune      rune
	Special   SpecialChar
	PictIndex int
	Fore      color.RGBA
	Back      color.RGBA
	Bounds    image.Rectangle
}

// InlinePicture is a picture reference embedded in interface text.
type InlinePicture struct {
	Object  string // base object whose portrait was used, or ""
	Picture string
	Bounds  image.Rectangle
}

// WrapMetrics are the layout parameters.
type WrapMetrics struct {
	Font        *Font
	Width       int
	LineSpacing int
	SideMargin  int
	TabWidth    int // 0 means half of Width
}

// Range is a half-open span of byte offsets. Begin < 0 means unset.
type Range struct {
	Begin, End int
}

// PictureSource resolves inline picture ids for the interface dialect.
type PictureSource interface {
	// Portrait returns the portrait picture of the named base object.
	Portrait(id string) (picture string, ok bool)
	Texture(name string) (Texture, error)
}

// StyledText is parsed, laid-out text ready to draw.
type StyledText struct {
	text     string
	chars    []StyledChar
	picts    []InlinePicture
	textures []Texture
	metrics  WrapMetrics

	autoWidth  int
	autoHeight int

	selection Range
	mark      Range
}

func newStyledText(text string, metrics WrapMetrics) *StyledText {
	return &StyledText{
		text:      text,
		metrics:   metrics,
		selection: Range{-1, -1},
		mark:      Range{-1, -1},
	}
}

func (t *StyledText) push(offset int, r rune, special SpecialChar, pict int, fore, back color.RGBA) {
	t.chars = append(t.chars, StyledChar{
		Offset:    offset,
		Rune:      r,
		Special:   special,
		PictIndex: pict,
		Fore:      fore,
		Back:      back,
	})
}

// finish appends the terminating line break when the text lacks one, then lays out.
func (t *StyledText) finish(fore, back color.RGBA) {
	if len(t.chars) == 0 || t.chars[len(t.chars)-1].Special != CharLineBreak {
		t.push(len(t.text), '\n', CharLineBreak, 0, fore, back)
	}
	t.Rewrap()
}

// Plain parses text with no escapes.
func Plain(text string, metrics WrapMetrics, fore, back color.RGBA) *StyledText {
	t := newStyledText(text, metrics)
	for off, r := range text {
		t.push(off, r, classify(r), 0, fore, back)
	}
	t.finish(fore, back)
	return t
}

func classify(r rune) SpecialChar {
	switch r {
	case '\n':
		return CharLineBreak
	case ' ':
		return CharWordBreak
	case noBreakSpace:
		return CharNoBreak
	}
	return CharNone
}

// Retro parses text with backslash color escapes:
//
//	\i swap colors    \r restore colors    \t tab    \\ backslash
//	\fHS foreground   \bHS background      (H hue, S shade, hex digits)
//
// An underscore is a non-breaking space.
func Retro(text string, metrics WrapMetrics, fore, back color.RGBA) (*StyledText, error) {
	const (
		start = iota
		slash
		fg1
		fg2
		bg1
		bg2
	)

	t := newStyledText(text, metrics)
	origFore, origBack := fore, back
	state := start
	var first rune

	pop := func() { t.chars = t.chars[:len(t.chars)-1] }

	for off, r := range text {
		switch state {
		case start:
			switch r {
			case '\n':
				t.push(off, r, CharLineBreak, 0, fore, back)
			case '_':
				t.push(off, r, CharNoBreak, 0, fore, back)
			case ' ':
				t.push(off, r, CharWordBreak, 0, fore, back)
			case '\\':
				state = slash
				t.push(off, r, CharDelay, 0, fore, back)
			default:
				t.push(off, r, CharNone, 0, fore, back)
			}

		case slash:
			state = start
			switch r {
			case 'i':
				fore, back = back, fore
				t.push(off, r, CharDelay, 0, fore, back)
			case 'r':
				fore, back = origFore, origBack
				t.push(off, r, CharDelay, 0, fore, back)
			case 't':
				pop()
				t.push(off, r, CharTab, 0, fore, back)
			case '\\':
				pop()
				t.push(off, r, CharNone, 0, fore, back)
			case 'f':
				pop()
				state = fg1
			case 'b':
				pop()
				state = bg1
			default:
				return nil, fmt.Errorf("%w: found bad special character %q at offset %d", ErrBadEscape, r, off)
			}

		case fg1:
			first, state = r, fg2
		case fg2:
			c, err := hueShade(first, r)
			if err != nil {
				return nil, fmt.Errorf("foreground at offset %d: %w", off, err)
			}
			fore, state = c, start

		case bg1:
			first, state = r, bg2
		case bg2:
			c, err := hueShade(first, r)
			if err != nil {
				return nil, fmt.Errorf("background at offset %d: %w", off, err)
			}
			back, state = c, start
		}
	}

	if state != start {
		return nil, fmt.Errorf("%w: not enough input for special code", ErrBadEscape)
	}
	t.finish(fore, back)
	return t, nil
}

func hueShade(h, s rune) (color.RGBA, error) {
	hue, err := hexDigit(h)
	if err != nil {
		return color.RGBA{}, err
	}
	shade, err := hexDigit(s)
	if err != nil {
		return color.RGBA{}, err
	}
	if hue >= HueCount {
		return color.RGBA{}, fmt.Errorf("%w: hue %d out of range", ErrBadEscape, hue)
	}
	if shade >= ShadeCount {
		return color.RGBA{}, fmt.Errorf("%w: shade %d out of range", ErrBadEscape, shade)
	}
	return TranslateColorShade(Hue(hue), shade), nil
}

// hexDigit accepts 0-9 and A-Z in either case, giving 0..35.
func hexDigit(r rune) (int, error) {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0'), nil
	case 'A' <= r && r <= 'Z':
		return int(r-'A') + 10, nil
	case 'a' <= r && r <= 'z':
		return int(r-'a') + 10, nil
	}
	return 0, fmt.Errorf("%w: %q is not a valid hex digit", ErrBadEscape, r)
}

// Interface parses text with inline picture references of the form ^Pid^ or ^pid^.
// An id naming a base object with a portrait shows the portrait; otherwise the id is
// itself the picture name.
func Interface(text string, metrics WrapMetrics, fore, back color.RGBA, pictures PictureSource) (*StyledText, error) {
	const (
		start = iota
		code
		ident
	)

	t := newStyledText(text, metrics)
	state := start
	idStart := 0

	for off, r := range text {
		switch state {
		case start:
			switch r {
			case '^':
				state = code
			case '\n':
				t.push(off, r, CharLineBreak, 0, fore, back)
			case ' ':
				t.push(off, r, CharWordBreak, 0, fore, back)
			default:
				t.push(off, r, CharNone, 0, fore, back)
			}

		case code:
			if r != 'P' && r != 'p' {
				return nil, fmt.Errorf("%w: found %q at offset %d", ErrBadPictCode, r, off)
			}
			state = ident
			idStart = off + 1

		case ident:
			if r != '^' {
				continue
			}
			id := text[idStart:off]
			pict := InlinePicture{Picture: id}
			if portrait, ok := pictures.Portrait(id); ok {
				pict.Object = id
				pict.Picture = portrait
			}
			tex, err := pictures.Texture(pict.Picture)
			if err != nil {
				return nil, fmt.Errorf("inline picture %q: %w", pict.Picture, err)
			}
			pict.Bounds = image.Rectangle{Max: tex.Bounds().Size()}
			t.textures = append(t.textures, tex)
			t.picts = append(t.picts, pict)
			t.push(off, r, CharPicture, len(t.picts)-1, fore, back)
			state = start
		}
	}

	t.finish(fore, back)
	return t, nil
}

// Text returns the source text.
func (t *StyledText) Text() string { return t.text }

// Chars returns the decoded character stream. Callers must not modify it.
func (t *StyledText) Chars() []StyledChar { return t.chars }

// InlinePictures returns the picture references in order of appearance.
func (t *StyledText) InlinePictures() []InlinePicture { return t.picts }

// Metrics returns the wrap metrics in effect.
func (t *StyledText) Metrics() WrapMetrics { return t.metrics }

// SetWrapMetrics replaces the metrics and lays the text out again.
func (t *StyledText) SetWrapMetrics(m WrapMetrics) {
	t.metrics = m
	t.Rewrap()
}

// Empty reports whether the text holds nothing but the final line break.
func (t *StyledText) Empty() bool { return len(t.chars) <= 1 }

// Size returns the number of styled characters.
func (t *StyledText) Size() int { return len(t.chars) }

// Height is the laid-out height in pixels.
func (t *StyledText) Height() int { return t.autoHeight }

// AutoWidth is the widest laid-out line in pixels.
func (t *StyledText) AutoWidth() int { return t.autoWidth }

// Select sets the selection to [from, to) in byte offsets. from == to places a caret.
func (t *StyledText) Select(from, to int) { t.selection = Range{from, to} }

// Selection returns the current selection.
func (t *StyledText) Selection() Range { return t.selection }

// Mark sets the marked (composing) range.
func (t *StyledText) Mark(from, to int) { t.mark = Range{from, to} }

// MarkRange returns the marked range.
func (t *StyledText) MarkRange() Range { return t.mark }

// SelectedText returns the source bytes covered by the selection.
func (t *StyledText) SelectedText() string {
	s := t.selection
	if s.Begin < 0 || s.End <= s.Begin {
		return ""
	}
	return t.text[s.Begin:min(s.End, len(t.text))]
}

func (t *StyledText) isSelected(ch *StyledChar) bool {
	return t.selection.Begin <= ch.Offset && ch.Offset < t.selection.End
}
