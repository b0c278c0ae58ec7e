package game

import (
	"image"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
)

// labelAge is how long an aged label stays up, in ticks.
const labelAge = 180

// LabelID indexes a label; NoLabel means none.
type LabelID int

const NoLabel LabelID = -1

// Label is a line of text drawn at a fixed screen point or attached to an
// object.
type Label struct {
	At      image.Point
	Offset  image.Point
	Object  Handle
	Hue     render.Hue
	Text    string
	Visible bool
	// Until hides the label at this tick; zero keeps it.
	Until int64
}

// Labels is the per-level label table.
type Labels struct {
	items []Label
}

// Reset removes every label.
func (l *Labels) Reset() { l.items = l.items[:0] }

// Add creates a visible label.
func (l *Labels) Add(at, offset image.Point, hue render.Hue) LabelID {
	l.items = append(l.items, Label{At: at, Offset: offset, Hue: hue, Visible: true})
	return LabelID(len(l.items) - 1)
}

// Get returns the label for id, or nil.
func (l *Labels) Get(id LabelID) *Label {
	if id < 0 || int(id) >= len(l.items) {
		return nil
	}
	return &l.items[id]
}

// All returns every label.
func (l *Labels) All() []Label { return l.items }

// SetObject attaches id to an object and clears any age.
func (l *Labels) SetObject(id LabelID, h Handle) {
	if lb := l.Get(id); lb != nil {
		lb.Object = h
		lb.Until = 0
	}
}

// SetString replaces the text of id.
func (l *Labels) SetString(id LabelID, s string) {
	if lb := l.Get(id); lb != nil {
		lb.Text = s
	}
}

// SetAge shows id until now+labelAge.
func (l *Labels) SetAge(id LabelID, now int64) {
	if lb := l.Get(id); lb != nil {
		lb.Until = now + labelAge
	}
}

// SetVisible shows or hides id.
func (l *Labels) SetVisible(id LabelID, v bool) {
	if lb := l.Get(id); lb != nil {
		lb.Visible = v
	}
}

// Shown reports whether lb should be drawn at now.
func (lb *Label) Shown(now int64) bool {
	return lb.Visible && lb.Text != "" && (lb.Until == 0 || now < lb.Until)
}
