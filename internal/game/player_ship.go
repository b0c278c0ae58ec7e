package game

import (
	"fmt"
	"image"
	"math"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

const (
	klaxonInterval      = 125
	destKeyHoldDuration = 45
	hotKeyHoldDuration  = 51
	cursorBoundsSize    = 16
	stickCorrection     = 15
)

// noKlaxon marks that the shields-low klaxon has not sounded since the
// shields were last healthy.
const noKlaxon = math.MinInt64

// EventType is the kind of a queued player event.
type EventType uint8

const (
	KeyDownEvent EventType = iota
	KeyUpEvent
	// LongKeyUpEvent is a key released after being held.
	LongKeyUpEvent
)

// PlayerEvent is one control press or release waiting for Update.
type PlayerEvent struct {
	Type EventType
	Key  KeyNum
}

// Equal reports whether both events have the same type and key.
func (e PlayerEvent) Equal(o PlayerEvent) bool { return e == o }

// Less orders events by type, then key.
func (e PlayerEvent) Less(o PlayerEvent) bool {
	if e.Type != o.Type {
		return e.Type < o.Type
	}
	return e.Key < o.Key
}

// DestKeyState tracks the destination modifier key.
type DestKeyState uint8

const (
	DestKeyUp DestKeyState = iota
	DestKeyDown
	// DestKeyBlocked means the key is still held but has been used as a
	// modifier, so its release does nothing.
	DestKeyBlocked
)

// HotKeyState tracks what a held hotkey will do on release.
type HotKeyState uint8

const (
	HotKeyUp HotKeyState = iota
	HotKeySelect
	HotKeyTarget
)

// HotKey is a programmable selection slot.
type HotKey struct {
	Object   Handle
	ObjectID int64
	State    HotKeyState
	// Pressed is the tick the slot's key went down.
	Pressed int64
}

// InputSessionState is the per-level state of the command interpreter.
type InputSessionState struct {
	DestKey        DestKeyState
	DestKeyPressed int64
	HotKeys        [HotKeyCount]HotKey
	PreviousZoom   Zoom
	NextKlaxon     int64
	LastSelected   Handle
	LastSelectedID int64
}

// PlayerShip turns the local player's input into orders for the flagship
// and selection changes for the player admiral.
type PlayerShip struct {
	Bindings Bindings
	// Now is the input clock in ticks, used to tell held keys from taps.
	Now     func() int64
	Session InputSessionState
	Cursor  Cursor
	Mini    *Minicomputer
	// View is the most recent frame's view, used to map clicks.
	View View

	sim         *Sim
	events      []PlayerEvent
	theseKeys   uint32
	gamepadKeys uint32
	replayKeys  uint32

	bumper         Bumper
	stickActive    bool
	stickDirection int

	controlLabel LabelID
	targetLabel  LabelID
	sendLabel    LabelID
}

// NewPlayerShip attaches a command interpreter to s.
func NewPlayerShip(s *Sim, b Bindings) *PlayerShip {
	p := &PlayerShip{
		Bindings:     b,
		sim:          s,
		controlLabel: NoLabel,
		targetLabel:  NoLabel,
		sendLabel:    NoLabel,
	}
	p.Now = func() int64 { return s.Time }
	p.Mini = NewMinicomputer(p)
	s.Player = p
	p.Reset()
	return p
}

// Reset prepares the interpreter for a new level. Labels must already have
// been cleared.
func (p *PlayerShip) Reset() {
	s := p.sim
	p.controlLabel = s.Labels.Add(image.Pt(0, 0), image.Pt(0, 10), render.HueYellow)
	p.targetLabel = s.Labels.Add(image.Pt(0, 0), image.Pt(0, -20), render.HueSkyBlue)
	p.sendLabel = s.Labels.Add(image.Pt(200, 200), image.Pt(0, 30), render.HueGreen)
	s.Labels.SetVisible(p.sendLabel, false)

	p.Session = InputSessionState{
		NextKlaxon:   noKlaxon,
		PreviousZoom: ZoomFoe,
	}
	for i := range p.Session.HotKeys {
		p.Session.HotKeys[i] = HotKey{ObjectID: -1}
	}
	s.KeyMask = 0
	s.Zoom = ZoomFoe
	p.events = p.events[:0]
	p.replayKeys = 0
	p.Mini.Reset()
}

// ControlLabel and TargetLabel return the selection label ids.
func (p *PlayerShip) ControlLabel() LabelID { return p.controlLabel }
func (p *PlayerShip) TargetLabel() LabelID  { return p.targetLabel }

func (p *PlayerShip) active() bool {
	ship := p.sim.Objects.Get(p.sim.Ship)
	return ship != nil && ship.Active && ship.Attributes&world.IsPlayerShip != 0
}

func (p *PlayerShip) push(t EventType, k KeyNum) {
	p.events = append(p.events, PlayerEvent{Type: t, Key: k})
}

// KeyDown handles a host key press. Unbound keys are ignored.
func (p *PlayerShip) KeyDown(name string) {
	k, ok := p.Bindings[name]
	if !ok || !p.active() {
		return
	}
	now := p.Now()
	switch {
	case k.IsHotKey():
		p.Session.HotKeys[k.HotKey()].Pressed = now
	case k == DestinationKeyNum:
		p.Session.DestKeyPressed = now
	}
	p.push(KeyDownEvent, k)
}

// KeyUp handles a host key release. Hotkeys and the destination key
// released after being held report a long release.
func (p *PlayerShip) KeyUp(name string) {
	k, ok := p.Bindings[name]
	if !ok || !p.active() {
		return
	}
	now := p.Now()
	t := KeyUpEvent
	switch {
	case k.IsHotKey():
		if now-p.Session.HotKeys[k.HotKey()].Pressed >= hotKeyHoldDuration {
			t = LongKeyUpEvent
		}
	case k == DestinationKeyNum:
		if now-p.Session.DestKeyPressed >= destKeyHoldDuration {
			t = LongKeyUpEvent
		}
	}
	p.push(t, k)
}

// MouseDown handles a button press at a screen point.
func (p *PlayerShip) MouseDown(button, count int, where image.Point) {
	p.Cursor.MouseDown(button, where)
	switch button {
	case 0:
		switch count {
		case 1:
			p.HandleClick(where, 0)
			p.Mini.Click(where)
		case 2:
			p.HandleClick(where, 0)
			p.Mini.DoubleClick(where)
		}
	case 1:
		if count == 1 {
			p.HandleClick(where, 1)
		}
	}
}

// MouseUp handles a button release.
func (p *PlayerShip) MouseUp(button int, where image.Point) {
	p.Cursor.MouseUp(button, where)
	if button == 0 {
		p.Mini.MouseUp(where)
	}
}

// MouseMove tracks the pointer.
func (p *PlayerShip) MouseMove(where image.Point) {
	p.Cursor.Move(where)
}

// Replay feeds recorded ship keys as if they had been pressed.
func (p *PlayerShip) Replay(keys uint32) {
	changed := keys ^ p.replayKeys
	for k := KeyNum(0); int(k) < KeyControlNum; k++ {
		bit := k.Bit()
		if changed&bit == 0 {
			continue
		}
		if keys&bit != 0 {
			p.push(KeyDownEvent, k)
		} else {
			p.push(KeyUpEvent, k)
		}
	}
	p.replayKeys = keys
}

// Update applies the queued events. While a message is being typed, held
// control keys are released instead. The queue is empty afterwards.
func (p *PlayerShip) Update(enterMessage bool) {
	defer func() { p.events = p.events[:0] }()

	s := p.sim
	if enterMessage {
		p.events = p.events[:0]
		for k := KeyNum(0); int(k) < KeyControlNum; k++ {
			if p.theseKeys&k.Bit() != 0 {
				p.push(KeyUpEvent, k)
			}
		}
	}

	ship := s.Objects.Get(s.Ship)
	if ship == nil {
		return
	}

	for _, e := range p.events {
		if e.Type == KeyDownEvent {
			if p.keyDownCommand(e.Key) {
				continue
			}
			p.theseKeys |= e.Key.Bit() &^ s.KeyMask
		} else {
			p.theseKeys &^= e.Key.Bit() &^ s.KeyMask
		}
	}

	ship = s.Objects.Get(s.Ship)
	if ship == nil || !ship.Active {
		return
	}

	if ship.Health < s.base(ship).Health>>2 {
		if s.Time > p.Session.NextKlaxon {
			if p.Session.NextKlaxon == noKlaxon {
				s.Sound.LoudKlaxon()
			} else {
				s.Sound.Klaxon()
			}
			s.Messages.SetStatus("WARNING: Shields Low", render.HueRed, s.Time)
			p.Session.NextKlaxon = s.Time + klaxonInterval
		}
	} else {
		p.Session.NextKlaxon = noKlaxon
	}

	if ship.Attributes&world.IsPlayerShip == 0 {
		return
	}

	p.Mini.HandleKeys(p.events)
	p.handleDestinationKey()
	p.handleHotKeys()
	if !p.Cursor.Active() {
		p.handleTargetKeys()
	}
	p.handlePilotKeys(s.Ship, p.bumper == NoBumper && p.stickActive)
	p.handleOrderKey()
	p.handleAutopilotKeys()
}

// keyDownCommand runs the controls that act at once instead of being
// folded into the ship's keys.
func (p *PlayerShip) keyDownCommand(k KeyNum) bool {
	switch k {
	case ZoomOutKeyNum:
		p.zoomOut()
	case ZoomInKeyNum:
		p.zoomIn()
	case Scale121KeyNum:
		p.zoomShortcut(ZoomActual)
	case Scale122KeyNum:
		p.zoomShortcut(ZoomDouble)
	case Scale124KeyNum:
		p.zoomShortcut(ZoomQuarter)
	case Scale1216KeyNum:
		p.zoomShortcut(ZoomSixteenth)
	case ScaleHostileKeyNum:
		p.zoomShortcut(ZoomFoe)
	case ScaleObjectKeyNum:
		p.zoomShortcut(ZoomObject)
	case ScaleAllKeyNum:
		p.zoomShortcut(ZoomAll)
	case TransferKeyNum:
		p.TransferControl(p.sim.PlayerAdmiral)
	case MessageNextKeyNum:
		p.sim.Messages.Advance()
	default:
		return false
	}
	return true
}

func (p *PlayerShip) zoomTo(z Zoom) {
	s := p.sim
	if s.Zoom == z {
		return
	}
	s.Zoom = z
	s.Sound.Click()
	s.Messages.SetStatus(z.String(), render.HueGreen, s.Time)
}

func (p *PlayerShip) zoomShortcut(z Zoom) {
	s := p.sim
	if s.KeyMask&ShortcutZoomMask != 0 {
		return
	}
	previous := p.Session.PreviousZoom
	p.Session.PreviousZoom = s.Zoom
	if s.Zoom == z {
		p.zoomTo(previous)
	} else {
		p.zoomTo(z)
	}
}

func (p *PlayerShip) zoomIn() {
	s := p.sim
	if s.KeyMask&ZoomInKey != 0 {
		return
	}
	if s.Zoom > ZoomDouble {
		p.zoomTo(s.Zoom - 1)
	}
}

func (p *PlayerShip) zoomOut() {
	s := p.sim
	if s.KeyMask&ZoomOutKey != 0 {
		return
	}
	if s.Zoom < ZoomAll {
		p.zoomTo(s.Zoom + 1)
	}
}

func (p *PlayerShip) handleDestinationKey() {
	s := p.sim
	for _, e := range p.events {
		if e.Key != DestinationKeyNum {
			continue
		}
		switch e.Type {
		case KeyDownEvent:
			if p.Session.DestKey == DestKeyUp {
				p.Session.DestKey = DestKeyDown
			}
		case KeyUpEvent:
			p.Session.DestKey = DestKeyUp
		case LongKeyUpEvent:
			ship := s.Objects.Get(s.Ship)
			if p.Session.DestKey == DestKeyDown && ship != nil && ship.Attributes&world.CanBeDestination != 0 {
				p.targetSelf()
			}
			p.Session.DestKey = DestKeyUp
		}
	}
}

func (p *PlayerShip) handleHotKeys() {
	s := p.sim
	for _, e := range p.events {
		if !e.Key.IsHotKey() {
			continue
		}
		hk := &p.Session.HotKeys[e.Key.HotKey()]
		switch e.Type {
		case KeyDownEvent:
			if p.Session.DestKey == DestKeyUp {
				hk.State = HotKeySelect
			} else {
				hk.State = HotKeyTarget
			}

		case KeyUpEvent:
			wasTarget := hk.State == HotKeyTarget
			hk.State = HotKeyUp
			if hk.Object.IsNone() {
				continue
			}
			if obj := s.Objects.Get(hk.Object); obj != nil && obj.Active && obj.ID == hk.ObjectID {
				target := p.Session.DestKey != DestKeyUp || obj.Owner != s.PlayerAdmiral || wasTarget
				p.SetSelectShip(hk.Object, target, s.PlayerAdmiral)
			} else {
				hk.Object = None()
				hk.ObjectID = -1
			}
			if p.Session.DestKey == DestKeyDown {
				p.Session.DestKey = DestKeyBlocked
			}

		case LongKeyUpEvent:
			hk.State = HotKeyUp
			last := p.Session.LastSelected
			if obj := s.Objects.Get(last); obj != nil && obj.Active {
				hk.Object = last
				hk.ObjectID = p.Session.LastSelectedID
				p.updateLabelsForHotKeyChange()
				s.Sound.Select()
			}
		}
	}
}

func (p *PlayerShip) handleTargetKeys() {
	s := p.sim
	ship := s.Objects.Get(s.Ship)
	if ship == nil {
		return
	}
	dir := ship.Direction
	dest := p.Session.DestKey != DestKeyUp
	for _, e := range p.events {
		if e.Type != KeyDownEvent {
			continue
		}
		switch e.Key {
		case SelectFriendKeyNum:
			if dest {
				p.targetFriendly(dir)
			} else {
				p.selectFriendly(dir)
			}
		case SelectFoeKeyNum:
			p.targetHostile(dir)
		case SelectBaseKeyNum:
			if dest {
				p.targetBase(dir)
			} else {
				p.selectBase(dir)
			}
		default:
			continue
		}
		if p.Session.DestKey == DestKeyDown {
			p.Session.DestKey = DestKeyBlocked
		}
	}
}

// handlePilotKeys copies the steering keys onto the flagship. Any steering
// input while on autopilot asks for the autopilot to be switched off.
func (p *PlayerShip) handlePilotKeys(flagship Handle, gamepadControl bool) {
	obj := p.sim.Objects.Get(flagship)
	if obj == nil {
		return
	}
	if obj.Attributes&world.OnAutoPilot != 0 {
		if (p.theseKeys|p.gamepadKeys)&MotionKeys != 0 {
			obj.KeysDown = obj.KeysDown&commandKeys | p.theseKeys | AutoPilotKey
		}
		return
	}

	keys := p.theseKeys | p.gamepadKeys
	if gamepadControl {
		keys &^= LeftKey | RightKey
		switch diff := world.AngleDifference(p.stickDirection, obj.Direction); {
		case diff > -stickCorrection && diff < stickCorrection:
		case diff < 0:
			keys |= LeftKey
		default:
			keys |= RightKey
		}
	}
	obj.KeysDown = obj.KeysDown&commandKeys | keys
}

func (p *PlayerShip) handleOrderKey() {
	obj := p.sim.Objects.Get(p.sim.Ship)
	for _, e := range p.events {
		if e.Type == KeyDownEvent && e.Key == OrderKeyNum && obj != nil {
			obj.KeysDown |= GiveCommandKey
		}
	}
}

func (p *PlayerShip) handleAutopilotKeys() {
	for _, e := range p.events {
		if e.Type != KeyDownEvent {
			continue
		}
		if (e.Key == WarpKeyNum && p.Session.DestKey != DestKeyUp) || e.Key == AutoPilotKeyNum {
			p.engageAutopilot()
			if obj := p.sim.Objects.Get(p.sim.Ship); obj != nil {
				obj.KeysDown &^= WarpKey
			}
			p.theseKeys &^= WarpKey
			p.Session.DestKey = DestKeyBlocked
		}
	}
}

func (p *PlayerShip) engageAutopilot() {
	obj := p.sim.Objects.Get(p.sim.Ship)
	if obj == nil {
		return
	}
	if obj.Attributes&world.OnAutoPilot == 0 {
		obj.KeysDown |= AutoPilotKey
	}
	obj.KeysDown |= AdoptTargetKey
}

func (p *PlayerShip) pickObject(direction int, target bool, attrs, nonattrs world.Attributes, current Handle, a Allegiance) {
	s := p.sim
	h := s.ManualSelectObject(s.Ship, direction, current, attrs, nonattrs, a)
	if !h.IsNone() {
		p.SetSelectShip(h, target, s.PlayerAdmiral)
	}
}

func (p *PlayerShip) playerAdmiral() *Admiral { return p.sim.admiral(p.sim.PlayerAdmiral) }

func (p *PlayerShip) selectFriendly(direction int) {
	if a := p.playerAdmiral(); a != nil {
		p.pickObject(direction, false, world.CanBeDestination, world.IsDestination, a.Control, Friendly)
	}
}

func (p *PlayerShip) targetFriendly(direction int) {
	if a := p.playerAdmiral(); a != nil {
		p.pickObject(direction, true, world.CanBeDestination, world.IsDestination, a.Target, Friendly)
	}
}

func (p *PlayerShip) targetHostile(direction int) {
	if a := p.playerAdmiral(); a != nil {
		p.pickObject(direction, true, world.CanBeDestination, world.IsDestination, a.Target, Hostile)
	}
}

func (p *PlayerShip) selectBase(direction int) {
	if a := p.playerAdmiral(); a != nil {
		p.pickObject(direction, false, world.IsDestination, 0, a.Control, Friendly)
	}
}

func (p *PlayerShip) targetBase(direction int) {
	if a := p.playerAdmiral(); a != nil {
		p.pickObject(direction, true, world.IsDestination, 0, a.Target, FriendlyOrHostile)
	}
}

func (p *PlayerShip) targetSelf() {
	p.SetSelectShip(p.sim.Ship, true, p.sim.PlayerAdmiral)
}

// SetSelectShip makes h the admiral's target or control object.
func (p *PlayerShip) SetSelectShip(h Handle, target bool, admiral int) {
	s := p.sim
	a := s.admiral(admiral)
	obj := s.Objects.Get(h)
	if a == nil || obj == nil {
		return
	}
	local := admiral == s.PlayerAdmiral
	if local {
		p.Session.LastSelected = h
		p.Session.LastSelectedID = obj.ID
		if p.Session.DestKey == DestKeyDown {
			p.Session.DestKey = DestKeyBlocked
		}
	}

	label := p.controlLabel
	if target {
		a.Target = h
		label = p.targetLabel
		if fs := s.Objects.Get(a.Flagship); fs != nil && fs.Attributes&world.OnAutoPilot == 0 {
			s.SetObjectDestination(a.Flagship, h)
		}
	} else {
		a.Control = h
	}

	if local {
		s.Sound.Select()
		s.Labels.SetObject(label, h)
		if h == s.Ship {
			s.Labels.SetAge(label, s.Time)
		}
		s.Labels.SetString(label, p.nameWithHotKeySuffix(h))
	}
}

// HandleClick selects whatever lies under a screen point. The second button,
// or the first with the destination key held, picks a target.
func (p *PlayerShip) HandleClick(where image.Point, button int) {
	s := p.sim
	if s.KeyMask&MouseMask != 0 {
		return
	}
	a := p.playerAdmiral()
	if a == nil || s.Objects.Get(s.Ship) == nil {
		return
	}
	lo := p.View.ToUniverse(where.Sub(image.Pt(cursorBoundsSize, cursorBoundsSize)))
	hi := p.View.ToUniverse(where.Add(image.Pt(cursorBoundsSize, cursorBoundsSize)))
	bounds := image.Rect(int(lo.H), int(lo.V), int(hi.H), int(hi.V))

	if p.Session.DestKey != DestKeyUp || button == 1 {
		h := s.PointSelectObject(bounds, s.Ship, a.Target, world.CanBeDestination|world.IsDestination, FriendlyOrHostile)
		if !h.IsNone() {
			p.SetSelectShip(h, true, s.PlayerAdmiral)
		}
	} else {
		h := s.PointSelectObject(bounds, s.Ship, a.Control, world.CanBeDestination|world.IsDestination, Friendly)
		if !h.IsNone() {
			p.SetSelectShip(h, false, s.PlayerAdmiral)
		}
	}
	if p.Session.DestKey == DestKeyDown {
		p.Session.DestKey = DestKeyBlocked
	}
}

// TransferControl moves the admiral into its control object if that object
// could be flown.
func (p *PlayerShip) TransferControl(admiral int) {
	s := p.sim
	a := s.admiral(admiral)
	if a == nil || a.Control == a.Flagship || !s.canFlagship(a.Control, admiral) {
		return
	}
	s.ChangePlayerShipNumber(admiral, a.Control)
	s.Sound.Click()
}

// HotKeyFromObject returns the slot bound to h, or -1. A slot matches only
// when both its handle and its object id are h's.
func (p *PlayerShip) HotKeyFromObject(h Handle) int {
	obj := p.sim.Objects.Get(h)
	if obj == nil || !obj.Active {
		return -1
	}
	for i, hk := range p.Session.HotKeys {
		if hk.Object == h && hk.ObjectID == obj.ID {
			return i
		}
	}
	return -1
}

// nameWithHotKeySuffix labels an object with the key that recalls it.
func (p *PlayerShip) nameWithHotKeySuffix(h Handle) string {
	obj := p.sim.Objects.Get(h)
	if obj == nil {
		return ""
	}
	slot := p.HotKeyFromObject(h)
	if slot < 0 {
		return obj.Name
	}
	key := p.Bindings.Name(FirstHotKeyNum + KeyNum(slot))
	if key == "" {
		return obj.Name
	}
	return fmt.Sprintf("%s < %s >", obj.Name, key)
}

func (p *PlayerShip) updateLabelsForHotKeyChange() {
	s := p.sim
	a := p.playerAdmiral()
	if a == nil {
		return
	}
	if s.Objects.Get(a.Target) != nil {
		s.Labels.SetObject(p.targetLabel, a.Target)
		if a.Target == s.Ship {
			s.Labels.SetAge(p.targetLabel, s.Time)
		}
		s.Labels.SetString(p.targetLabel, p.nameWithHotKeySuffix(a.Target))
	}
	if s.Objects.Get(a.Control) != nil {
		s.Labels.SetObject(p.controlLabel, a.Control)
		if a.Control == s.Ship {
			s.Labels.SetAge(p.controlLabel, s.Time)
		}
		s.Sound.Select()
		s.Labels.SetString(p.controlLabel, p.nameWithHotKeySuffix(a.Control))
	}
}
