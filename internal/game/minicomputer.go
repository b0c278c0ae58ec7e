package game

import (
	"fmt"
	"image"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
)

// MiniScreen is a page of the minicomputer menu.
type MiniScreen uint8

const (
	MiniMain MiniScreen = iota
	MiniBuild
	MiniSpecial
	MiniMessage
	MiniStatus
)

var miniScreenNames = [...]string{"MAIN", "BUILD", "SPECIAL", "MESSAGE", "STATUS"}

func (m MiniScreen) String() string {
	if int(m) < len(miniScreenNames) {
		return miniScreenNames[m]
	}
	return fmt.Sprintf("screen(%d)", uint8(m))
}

// MiniLine is one row of the minicomputer display.
type MiniLine struct {
	Text       string
	Selectable bool
	Selected   bool
}

// miniItem is a selectable row and what accepting it does.
type miniItem struct {
	text string
	run  func()
}

// Minicomputer is the small menu in the corner of the tactical screen. It
// is worked with the computer keys, the gamepad d-pad or the mouse.
type Minicomputer struct {
	Screen MiniScreen
	// Cursor is the selected row among the selectable ones.
	Cursor int
	// Bounds is the screen area of the menu rows, used for clicks.
	Bounds     image.Rectangle
	LineHeight int

	player  *PlayerShip
	pressed int
}

// NewMinicomputer creates the menu for a command interpreter.
func NewMinicomputer(p *PlayerShip) *Minicomputer {
	return &Minicomputer{player: p, LineHeight: 12, pressed: -1}
}

// Reset returns to the main screen.
func (m *Minicomputer) Reset() {
	m.Screen = MiniMain
	m.Cursor = 0
	m.pressed = -1
}

func (m *Minicomputer) items() []miniItem {
	s := m.player.sim
	switch m.Screen {
	case MiniMain:
		return []miniItem{
			{"BUILD", func() { m.show(MiniBuild) }},
			{"SPECIAL ORDERS", func() { m.show(MiniSpecial) }},
			{"MESSAGES", func() { m.show(MiniMessage) }},
			{"MISSION STATUS", func() { m.show(MiniStatus) }},
		}

	case MiniBuild:
		a := s.admiral(s.PlayerAdmiral)
		if a == nil {
			return nil
		}
		var items []miniItem
		for _, base := range a.Builds {
			b := s.Catalog.Get(base)
			if b == nil {
				continue
			}
			items = append(items, miniItem{
				text: fmt.Sprintf("%-16s %5d", b.ShortName, b.Price),
				run: func() {
					if s.Build(s.PlayerAdmiral, base) {
						s.Sound.Click()
					} else {
						s.Messages.SetStatus("Insufficient funds", render.HueRed, s.Time)
					}
				},
			})
		}
		return items

	case MiniSpecial:
		return []miniItem{
			{"Transfer Control", func() { m.player.TransferControl(s.PlayerAdmiral) }},
			{"Hold Position", func() { m.orderControl(None()) }},
			{"Come to Me", func() { m.orderControl(s.Ship) }},
			{"Fire Weapon 1", func() { m.fireControl(0) }},
			{"Fire Weapon 2", func() { m.fireControl(1) }},
			{"Fire Special", func() { m.fireControl(2) }},
		}

	case MiniMessage:
		return []miniItem{
			{"Next Page", s.Messages.Advance},
		}
	}
	return nil
}

func (m *Minicomputer) show(screen MiniScreen) {
	m.Screen = screen
	m.Cursor = 0
	m.player.sim.Sound.Click()
}

func (m *Minicomputer) orderControl(dest Handle) {
	s := m.player.sim
	a := s.admiral(s.PlayerAdmiral)
	if a == nil || s.Objects.Get(a.Control) == nil {
		return
	}
	s.SetObjectDestination(a.Control, dest)
	s.Sound.Order()
}

func (m *Minicomputer) fireControl(slot int) {
	s := m.player.sim
	a := s.admiral(s.PlayerAdmiral)
	if a == nil {
		return
	}
	if obj := s.Objects.Get(a.Control); obj != nil && obj.Active && obj.Owner == s.PlayerAdmiral {
		s.fire(a.Control, slot)
	}
}

// Lines returns the rows to draw: a title, the selectable items and, on the
// status screen, the level's score lines.
func (m *Minicomputer) Lines() []MiniLine {
	s := m.player.sim
	lines := []MiniLine{{Text: m.Screen.String()}}
	for i, it := range m.items() {
		lines = append(lines, MiniLine{Text: it.text, Selectable: true, Selected: i == m.Cursor})
	}
	switch m.Screen {
	case MiniBuild:
		if a := s.admiral(s.PlayerAdmiral); a != nil {
			lines = append(lines, MiniLine{Text: fmt.Sprintf("Cash %d", int(a.Cash))})
		}
	case MiniStatus:
		if s.Level != nil {
			for _, text := range s.Level.ScoreStrings {
				lines = append(lines, MiniLine{Text: text})
			}
		}
		if a := s.admiral(s.PlayerAdmiral); a != nil {
			for i, v := range a.Score {
				lines = append(lines, MiniLine{Text: fmt.Sprintf("Score %d: %d", i+1, v)})
			}
		}
	}
	return lines
}

// HandleKeys applies the computer keys among events.
func (m *Minicomputer) HandleKeys(events []PlayerEvent) {
	for _, e := range events {
		switch e.Type {
		case KeyDownEvent:
			m.KeyDown(e.Key)
		default:
			m.KeyUp(e.Key)
		}
	}
}

// KeyDown moves the cursor. Accept and cancel act on release.
func (m *Minicomputer) KeyDown(k KeyNum) {
	n := len(m.items())
	switch k {
	case CompUpKeyNum:
		if n > 0 {
			m.Cursor = (m.Cursor - 1 + n) % n
		}
	case CompDownKeyNum:
		if n > 0 {
			m.Cursor = (m.Cursor + 1) % n
		}
	}
}

// KeyUp accepts the selected item or goes back to the main screen.
func (m *Minicomputer) KeyUp(k KeyNum) {
	switch k {
	case CompAcceptKeyNum:
		m.accept()
	case CompCancelKeyNum:
		if m.Screen != MiniMain {
			m.show(MiniMain)
		}
	}
}

func (m *Minicomputer) accept() {
	items := m.items()
	if m.Cursor < 0 || m.Cursor >= len(items) {
		return
	}
	items[m.Cursor].run()
}

// row maps a screen point to a selectable item index, or -1. The first row
// is the title.
func (m *Minicomputer) row(at image.Point) int {
	if !at.In(m.Bounds) || m.LineHeight <= 0 {
		return -1
	}
	i := (at.Y-m.Bounds.Min.Y)/m.LineHeight - 1
	if i < 0 || i >= len(m.items()) {
		return -1
	}
	return i
}

// Click selects the item under at.
func (m *Minicomputer) Click(at image.Point) {
	m.pressed = m.row(at)
	if m.pressed >= 0 {
		m.Cursor = m.pressed
	}
}

// DoubleClick selects and accepts the item under at.
func (m *Minicomputer) DoubleClick(at image.Point) {
	m.Click(at)
	if m.pressed >= 0 {
		m.accept()
	}
	m.pressed = -1
}

// MouseUp accepts the pressed item if the release is over it.
func (m *Minicomputer) MouseUp(at image.Point) {
	if m.pressed >= 0 && m.row(at) == m.pressed {
		m.accept()
	}
	m.pressed = -1
}
