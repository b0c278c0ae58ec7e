package main

import (
	"image"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/spacehole-rogue/spacehole_tactical/internal/game"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
)

const doubleClickInterval = 250 * time.Millisecond

var mouseButtons = [...]struct {
	button ebiten.MouseButton
	index  int
}{
	{ebiten.MouseButtonLeft, 0},
	{ebiten.MouseButtonRight, 1},
}

var gamepadButtons = map[ebiten.StandardGamepadButton]game.GamepadButton{
	ebiten.StandardGamepadButtonRightBottom:      game.GamepadA,
	ebiten.StandardGamepadButtonRightRight:       game.GamepadB,
	ebiten.StandardGamepadButtonRightLeft:        game.GamepadX,
	ebiten.StandardGamepadButtonRightTop:         game.GamepadY,
	ebiten.StandardGamepadButtonFrontTopLeft:     game.GamepadLB,
	ebiten.StandardGamepadButtonFrontTopRight:    game.GamepadRB,
	ebiten.StandardGamepadButtonFrontBottomLeft:  game.GamepadLT,
	ebiten.StandardGamepadButtonFrontBottomRight: game.GamepadRT,
	ebiten.StandardGamepadButtonCenterLeft:       game.GamepadBack,
	ebiten.StandardGamepadButtonCenterRight:      game.GamepadStart,
	ebiten.StandardGamepadButtonLeftStick:        game.GamepadLSB,
	ebiten.StandardGamepadButtonRightStick:       game.GamepadRSB,
	ebiten.StandardGamepadButtonLeftTop:          game.GamepadUp,
	ebiten.StandardGamepadButtonLeftBottom:       game.GamepadDown,
	ebiten.StandardGamepadButtonLeftLeft:         game.GamepadLeft,
	ebiten.StandardGamepadButtonLeftRight:        game.GamepadRight,
}

// input translates Ebitengine's polled state into command interpreter
// callbacks.
type input struct {
	player *game.PlayerShip

	keys     []ebiten.Key
	pads     []ebiten.GamepadID
	lastDown [len(mouseButtons)]time.Time
	clicks   [len(mouseButtons)]int
	cursor   image.Point

	// copyText is what Ctrl+C puts on the clipboard.
	copyText  string
	toggleFPS bool
}

func newInput(p *game.PlayerShip) *input {
	return &input{player: p}
}

func (in *input) poll() {
	in.toggleFPS = false
	in.pollKeys()
	in.pollMouse()
	in.pollGamepad()
}

func (in *input) pollKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		switch {
		case ctrl && k == ebiten.KeyC:
			in.copy()
			continue
		case k == ebiten.KeyF12:
			in.toggleFPS = true
			continue
		}
		in.player.KeyDown(k.String())
	}

	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.player.KeyUp(k.String())
	}
}

func (in *input) copy() {
	if in.copyText == "" {
		return
	}
	if err := clipboard.WriteAll(in.copyText); err != nil {
		logger.Log.WithError(err).Warn("clipboard unavailable")
	}
}

func (in *input) pollMouse() {
	x, y := ebiten.CursorPosition()
	at := image.Pt(x, y)
	if at != in.cursor {
		in.cursor = at
		in.player.MouseMove(at)
	}

	now := time.Now()
	for i, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.button) {
			if now.Sub(in.lastDown[i]) <= doubleClickInterval {
				in.clicks[i]++
			} else {
				in.clicks[i] = 1
			}
			in.lastDown[i] = now
			in.player.MouseDown(mb.index, in.clicks[i], at)
		}
		if inpututil.IsMouseButtonJustReleased(mb.button) {
			in.player.MouseUp(mb.index, at)
		}
	}
}

// pollGamepad reads the first gamepad with a standard layout.
func (in *input) pollGamepad() {
	in.pads = ebiten.AppendGamepadIDs(in.pads[:0])
	for _, id := range in.pads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for sb, b := range gamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, sb) {
				in.player.GamepadButtonDown(b)
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, sb) {
				in.player.GamepadButtonUp(b)
			}
		}
		in.player.GamepadStick(
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		)
		return
	}
}
