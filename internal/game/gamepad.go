package game

import (
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// stickDeadZone is the squared deflection below which the stick is idle.
const stickDeadZone = 0.30

// GamepadButton is a standard-layout gamepad button.
type GamepadButton uint8

const (
	GamepadA GamepadButton = iota
	GamepadB
	GamepadX
	GamepadY
	GamepadLB
	GamepadRB
	GamepadLT
	GamepadRT
	GamepadBack
	GamepadStart
	GamepadLSB
	GamepadRSB
	GamepadUp
	GamepadDown
	GamepadLeft
	GamepadRight
)

// Bumper records which shoulder buttons are held. The override bit means
// the other bumper went down second and takes over until released.
type Bumper uint8

const (
	NoBumper     Bumper = 0
	SelectBumper Bumper = 1
	TargetBumper Bumper = 2
	overrideBit  Bumper = 4
)

// Bumper returns the current shoulder button state.
func (p *PlayerShip) Bumper() Bumper { return p.bumper }

// GamepadButtonDown handles a gamepad press.
func (p *PlayerShip) GamepadButtonDown(b GamepadButton) {
	switch b {
	case GamepadLB:
		if p.bumper&SelectBumper != 0 {
			p.bumper = TargetBumper | overrideBit
		} else if p.bumper&TargetBumper == 0 {
			p.bumper = TargetBumper
		}
		return
	case GamepadRB:
		if p.bumper&TargetBumper != 0 {
			p.bumper = SelectBumper | overrideBit
		} else if p.bumper&SelectBumper == 0 {
			p.bumper = SelectBumper
		}
		return
	}

	if !p.active() {
		return
	}
	if p.bumper != NoBumper {
		p.bumperButtonDown(b)
		return
	}

	switch b {
	case GamepadA:
		p.gamepadKeys |= UpKey
	case GamepadB:
		p.gamepadKeys |= DownKey
	case GamepadX:
		p.zoomOut()
	case GamepadY:
		p.zoomIn()
	case GamepadBack:
		p.sim.Messages.Advance()
	case GamepadLT:
		p.gamepadKeys |= SpecialKey
	case GamepadRT:
		p.gamepadKeys |= PulseKey | BeamKey
	case GamepadLSB:
		if p.warping() {
			p.gamepadKeys &^= WarpKey
		} else {
			p.gamepadKeys |= WarpKey
		}
	case GamepadUp:
		p.Mini.KeyDown(CompUpKeyNum)
	case GamepadDown:
		p.Mini.KeyDown(CompDownKeyNum)
	case GamepadRight:
		p.Mini.KeyDown(CompAcceptKeyNum)
	case GamepadLeft:
		p.Mini.KeyDown(CompCancelKeyNum)
	}
}

func (p *PlayerShip) bumperButtonDown(b GamepadButton) {
	sel := p.bumper&SelectBumper != 0
	switch b {
	case GamepadA:
		if !p.stickActive {
			return
		}
		if sel {
			p.selectFriendly(p.stickDirection)
		} else {
			p.targetFriendly(p.stickDirection)
		}
	case GamepadB:
		if p.stickActive && p.bumper&TargetBumper != 0 {
			p.targetHostile(p.stickDirection)
		}
	case GamepadX:
		if !p.stickActive {
			return
		}
		if sel {
			p.selectBase(p.stickDirection)
		} else {
			p.targetBase(p.stickDirection)
		}
	case GamepadY:
		if sel {
			p.push(KeyDownEvent, OrderKeyNum)
		} else {
			p.push(KeyDownEvent, AutoPilotKeyNum)
		}
	case GamepadLSB:
		if p.bumper&TargetBumper != 0 {
			p.targetSelf()
		} else {
			p.TransferControl(p.sim.PlayerAdmiral)
		}
	}
}

// GamepadButtonUp handles a gamepad release.
func (p *PlayerShip) GamepadButtonUp(b GamepadButton) {
	switch b {
	case GamepadLB:
		p.push(KeyUpEvent, OrderKeyNum)
		if p.bumper&overrideBit != 0 {
			p.bumper = SelectBumper
		} else {
			p.bumper = NoBumper
		}
		return
	case GamepadRB:
		p.push(KeyUpEvent, AutoPilotKeyNum)
		if p.bumper&overrideBit != 0 {
			p.bumper = TargetBumper
		} else {
			p.bumper = NoBumper
		}
		return
	}

	if !p.active() {
		return
	}
	if p.bumper != NoBumper {
		if b == GamepadY {
			p.push(KeyUpEvent, OrderKeyNum)
			p.push(KeyUpEvent, AutoPilotKeyNum)
		}
		return
	}

	switch b {
	case GamepadA:
		p.gamepadKeys &^= UpKey
	case GamepadB:
		p.gamepadKeys &^= DownKey
	case GamepadLT:
		p.gamepadKeys &^= SpecialKey
	case GamepadRT:
		p.gamepadKeys &^= PulseKey | BeamKey
	case GamepadLSB:
		if !p.warping() {
			p.gamepadKeys &^= WarpKey
		}
	case GamepadRight:
		p.Mini.KeyUp(CompAcceptKeyNum)
	case GamepadLeft:
		p.Mini.KeyUp(CompCancelKeyNum)
	}
}

// GamepadStick handles the left stick, with x and y in [-1, 1].
func (p *PlayerShip) GamepadStick(x, y float64) {
	if x*x+y*y < stickDeadZone {
		p.stickActive = false
		return
	}
	p.stickActive = true
	p.stickDirection = world.AddAngle(world.AngleFromVector(x, y), 180)
}

func (p *PlayerShip) warping() bool {
	ship := p.sim.Objects.Get(p.sim.Ship)
	return ship != nil && ship.Warping
}
