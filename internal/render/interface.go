package render

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
)

// InterfaceStyle selects between the large and small interface chrome.
type InterfaceStyle uint8

const (
	StyleLarge InterfaceStyle = iota
	StyleSmall
)

// Item is one element of an interface screen. The set of implementations is
// closed: BoxRect, TextRect, PictureRect, PlainButton, RadioButton,
// CheckboxButton and TabBox. Consumers switch over all seven.
type Item interface {
	Frame() ItemFrame
	sealed()
}

// ItemFrame is the part every item shares.
type ItemFrame struct {
	Bounds image.Rectangle
	ID     *int64
}

func (f ItemFrame) Frame() ItemFrame { return f }

// BoxRect is a labelled frame.
type BoxRect struct {
	ItemFrame
	Label string
	Hue   Hue
	Style InterfaceStyle
}

// TextRect is a block of interface-dialect text.
type TextRect struct {
	ItemFrame
	Text  string
	Hue   Hue
	Style InterfaceStyle
}

// PictureRect shows a named picture.
type PictureRect struct {
	ItemFrame
	Picture string
}

// Button holds what the three button kinds share.
type Button struct {
	Label   string
	Key     string
	Gamepad int
	Hue     Hue
	Style   InterfaceStyle
}

// PlainButton is a push button.
type PlainButton struct {
	ItemFrame
	Button
}

// RadioButton is one choice of a group.
type RadioButton struct {
	ItemFrame
	Button
	On bool
}

// CheckboxButton toggles.
type CheckboxButton struct {
	ItemFrame
	Button
	On bool
}

// Tab is one page of a TabBox.
type Tab struct {
	ID      *int64
	Width   int
	Label   string
	Content []Item
}

// TabBox is a frame with a row of tabs; the first tab's content is shown.
type TabBox struct {
	ItemFrame
	Hue   Hue
	Style InterfaceStyle
	Tabs  []Tab
}

func (BoxRect) sealed() {}
func (TextRect) sealed() {}
func (PictureRect) sealed() {}
func (PlainButton) sealed() {}
func (RadioButton) sealed() {}
func (CheckboxButton) sealed() {}
func (TabBox) sealed() {}

// ItemKind names the variant of it.
func ItemKind(it Item) string {
	switch it.(type) {
	case BoxRect:
		return "rect"
	case TextRect:
		return "text"
	case PictureRect:
		return "picture"
	case PlainButton:
		return "button"
	case RadioButton:
		return "radio"
	case CheckboxButton:
		return "checkbox"
	case TabBox:
		return "tab-box"
	}
	panic(fmt.Sprintf("unknown interface item %T", it))
}

// ItemBounds is the area DrawItem may touch for it, including tab rows and
// toggle labels drawn outside the item's own rectangle.
func ItemBounds(it Item, f *Font) image.Rectangle {
	switch it := it.(type) {
	case BoxRect, TextRect, PictureRect, PlainButton:
		return it.Frame().Bounds
	case RadioButton:
		return toggleBounds(it.Bounds, it.Label, f)
	case CheckboxButton:
		return toggleBounds(it.Bounds, it.Label, f)
	case TabBox:
		r := it.Bounds
		if len(it.Tabs) > 0 {
			w := 0
			for _, tab := range it.Tabs {
				w += tab.Width
			}
			r = r.Union(image.Rect(r.Min.X, r.Min.Y-f.Height-4, r.Min.X+w, r.Min.Y))
			for _, child := range it.Tabs[0].Content {
				r = r.Union(ItemBounds(child, f))
			}
		}
		return r
	}
	panic(fmt.Sprintf("unknown interface item %T", it))
}

func toggleBounds(r image.Rectangle, label string, f *Font) image.Rectangle {
	labelAt := image.Pt(r.Min.X+r.Dy()+4, r.Min.Y)
	return r.Union(image.Rectangle{Min: labelAt, Max: labelAt.Add(image.Pt(f.StringWidth(label), f.Height))})
}

// DrawEnv carries what interface drawing needs besides the canvas.
type DrawEnv struct {
	Font     *Font
	Pictures PictureSource
}

// DrawItem renders one interface item.
func DrawItem(c Canvas, it Item, env DrawEnv) error {
	switch it := it.(type) {
	case BoxRect:
		frameColor := TranslateColorShade(it.Hue, ShadeMedium)
		strokeRect(c, it.Bounds, frameColor)
		if it.Label != "" {
			drawLabel(c, env.Font, it.Label, it.Bounds.Min.Add(image.Pt(4, 0)), TranslateColorShade(it.Hue, ShadeLightest), Black)
		}
	case TextRect:
		m := WrapMetrics{Font: env.Font, Width: it.Bounds.Dx()}
		t, err := Interface(it.Text, m, TranslateColorShade(it.Hue, ShadeLightest), Black, env.Pictures)
		if err != nil {
			return fmt.Errorf("text rect: %w", err)
		}
		t.Draw(c, it.Bounds)
	case PictureRect:
		tex, err := env.Pictures.Texture(it.Picture)
		if err != nil {
			return fmt.Errorf("picture rect: %w", err)
		}
		c.DrawTexture(tex, it.Bounds.Min)
	case PlainButton:
		drawButton(c, env.Font, it.Bounds, it.Button, TranslateColorShade(it.Hue, ShadeDark))
	case RadioButton:
		drawToggle(c, env.Font, it.Bounds, it.Button, it.On)
	case CheckboxButton:
		drawToggle(c, env.Font, it.Bounds, it.Button, it.On)
	case TabBox:
		strokeRect(c, it.Bounds, TranslateColorShade(it.Hue, ShadeMedium))
		x := it.Bounds.Min.X
		for i, tab := range it.Tabs {
			tabBounds := image.Rect(x, it.Bounds.Min.Y-env.Font.Height-4, x+tab.Width, it.Bounds.Min.Y)
			shade := ShadeDarker
			if i == 0 {
				shade = ShadeDark
			}
			drawButton(c, env.Font, tabBounds, Button{Label: tab.Label}, TranslateColorShade(it.Hue, shade))
			x += tab.Width
		}
		if len(it.Tabs) > 0 {
			for _, child := range it.Tabs[0].Content {
				if err := DrawItem(c, child, env); err != nil {
					return err
				}
			}
		}
	default:
		panic(fmt.Sprintf("unknown interface item %T", it))
	}
	return nil
}

func strokeRect(c Canvas, r image.Rectangle, col color.RGBA) {
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	c.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	c.FillRect(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

func drawLabel(c Canvas, f *Font, s string, at image.Point, fore, back color.RGBA) {
	t := Plain(s, WrapMetrics{Font: f, Width: 1 << 16}, fore, back)
	t.Draw(c, image.Rectangle{Min: at, Max: at.Add(image.Pt(t.AutoWidth(), t.Height()))})
}

func drawButton(c Canvas, f *Font, r image.Rectangle, b Button, fill color.RGBA) {
	c.FillRect(r, fill)
	w := f.StringWidth(b.Label)
	at := image.Pt(r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()-f.Height)/2)
	drawLabel(c, f, b.Label, at, TranslateColorShade(b.Hue, ShadeLightest), fill)
}

func drawToggle(c Canvas, f *Font, r image.Rectangle, b Button, on bool) {
	box := image.Rect(r.Min.X, r.Min.Y, r.Min.X+r.Dy(), r.Max.Y)
	strokeRect(c, box, TranslateColorShade(b.Hue, ShadeMedium))
	if on {
		c.FillRect(box.Inset(3), TranslateColorShade(b.Hue, ShadeLight))
	}
	drawLabel(c, f, b.Label, image.Pt(box.Max.X+4, r.Min.Y), TranslateColorShade(b.Hue, ShadeLightest), Black)
}

type itemJSON struct {
	Type    string    `json:"type"`
	Bounds  [4]int    `json:"bounds"` // left, top, right, bottom
	ID      *int64    `json:"id"`
	Label   string    `json:"label"`
	Text    string    `json:"text"`
	Picture string    `json:"picture"`
	Key     string    `json:"key"`
	Gamepad int       `json:"gamepad"`
	Hue     Hue       `json:"hue"`
	Style   string    `json:"style"`
	On      bool      `json:"on"`
	Tabs    []tabJSON `json:"tabs"`
}

type tabJSON struct {
	ID      *int64     `json:"id"`
	Width   int        `json:"width"`
	Label   string     `json:"label"`
	Content []itemJSON `json:"content"`
}

// LoadInterface parses a JSON array of interface items.
func LoadInterface(data []byte) ([]Item, error) {
	var raw []itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse interface: %w", err)
	}
	return convertItems(raw)
}

func convertItems(raw []itemJSON) ([]Item, error) {
	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		it, err := convertItem(r)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func convertItem(r itemJSON) (Item, error) {
	frame := ItemFrame{
		Bounds: image.Rect(r.Bounds[0], r.Bounds[1], r.Bounds[2], r.Bounds[3]),
		ID:     r.ID,
	}
	style := StyleLarge
	switch r.Style {
	case "", "large":
	case "small":
		style = StyleSmall
	default:
		return nil, fmt.Errorf("unknown style %q", r.Style)
	}
	button := Button{Label: r.Label, Key: r.Key, Gamepad: r.Gamepad, Hue: r.Hue, Style: style}

	switch r.Type {
	case "rect":
		return BoxRect{ItemFrame: frame, Label: r.Label, Hue: r.Hue, Style: style}, nil
	case "text":
		return TextRect{ItemFrame: frame, Text: r.Text, Hue: r.Hue, Style: style}, nil
	case "picture":
		return PictureRect{ItemFrame: frame, Picture: r.Picture}, nil
	case "button":
		return PlainButton{ItemFrame: frame, Button: button}, nil
	case "radio":
		return RadioButton{ItemFrame: frame, Button: button, On: r.On}, nil
	case "checkbox":
		return CheckboxButton{ItemFrame: frame, Button: button, On: r.On}, nil
	case "tab-box":
		box := TabBox{ItemFrame: frame, Hue: r.Hue, Style: style}
		for j, tj := range r.Tabs {
			content, err := convertItems(tj.Content)
			if err != nil {
				return nil, fmt.Errorf("tab %d: %w", j, err)
			}
			box.Tabs = append(box.Tabs, Tab{ID: tj.ID, Width: tj.Width, Label: tj.Label, Content: content})
		}
		return box, nil
	}
	return nil, fmt.Errorf("unknown item type %q", r.Type)
}
