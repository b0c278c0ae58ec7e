package game

import "fmt"

// KeyNum identifies a bindable control.
type KeyNum int

const (
	UpKeyNum KeyNum = iota
	DownKeyNum
	LeftKeyNum
	RightKeyNum
	PulseKeyNum
	BeamKeyNum
	SpecialKeyNum
	WarpKeyNum
	SelectFriendKeyNum
	SelectFoeKeyNum
	SelectBaseKeyNum
	DestinationKeyNum
	OrderKeyNum
	ZoomInKeyNum
	ZoomOutKeyNum
	CompUpKeyNum
	CompDownKeyNum
	CompAcceptKeyNum
	CompCancelKeyNum
	TransferKeyNum
	Scale121KeyNum
	Scale122KeyNum
	Scale124KeyNum
	Scale1216KeyNum
	ScaleHostileKeyNum
	ScaleObjectKeyNum
	ScaleAllKeyNum
	MessageNextKeyNum
	HelpKeyNum
	VolumeDownKeyNum
	VolumeUpKeyNum
	ActionMusicKeyNum
	NetSettingsKeyNum
	FastMotionKeyNum
	FirstHotKeyNum
)

const (
	// HotKeyCount is the number of programmable selection slots.
	HotKeyCount = 10
	// KeyControlNum is the number of controls folded into the ship's key bits.
	KeyControlNum = int(CompCancelKeyNum) + 1
	// KeyExtendedControlNum counts every bindable control.
	KeyExtendedControlNum = int(FirstHotKeyNum) + HotKeyCount
)

// AutoPilotKeyNum is raised by the gamepad to engage the autopilot. It
// cannot be bound to a host key.
const AutoPilotKeyNum = KeyNum(KeyExtendedControlNum)

var keyNumNames = [...]string{
	"up", "down", "left", "right", "pulse", "beam", "special", "warp",
	"select-friend", "select-foe", "select-base", "destination", "order",
	"zoom-in", "zoom-out", "comp-up", "comp-down", "comp-accept", "comp-cancel",
	"transfer", "scale-1-1", "scale-1-2", "scale-1-4", "scale-1-16",
	"scale-hostile", "scale-object", "scale-all", "message-next", "help",
	"volume-down", "volume-up", "action-music", "net-settings", "fast-motion",
}

func (k KeyNum) String() string {
	if k >= 0 && int(k) < len(keyNumNames) {
		return keyNumNames[k]
	}
	if k.IsHotKey() {
		return fmt.Sprintf("hotkey-%d", k.HotKey()+1)
	}
	if k == AutoPilotKeyNum {
		return "autopilot"
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// ParseKeyNum parses a control name as written by String.
func ParseKeyNum(name string) (KeyNum, error) {
	for i := 0; i < KeyExtendedControlNum; i++ {
		if KeyNum(i).String() == name {
			return KeyNum(i), nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", name)
}

// IsHotKey reports whether k is one of the hotkey slots.
func (k KeyNum) IsHotKey() bool {
	return k >= FirstHotKeyNum && int(k) < KeyExtendedControlNum
}

// HotKey returns the slot index of a hotkey control.
func (k KeyNum) HotKey() int { return int(k - FirstHotKeyNum) }

// Bit returns the ship key bit of a control key, or 0.
func (k KeyNum) Bit() uint32 {
	if k >= 0 && int(k) < KeyControlNum {
		return 1 << uint(k)
	}
	return 0
}

// Ship key bits above the control keys, set by the command interpreter.
const (
	GiveCommandKey uint32 = 1 << (KeyControlNum + iota)
	AdoptTargetKey
	AutoPilotKey
)

const (
	UpKey      = uint32(1) << UpKeyNum
	DownKey    = uint32(1) << DownKeyNum
	LeftKey    = uint32(1) << LeftKeyNum
	RightKey   = uint32(1) << RightKeyNum
	PulseKey   = uint32(1) << PulseKeyNum
	BeamKey    = uint32(1) << BeamKeyNum
	SpecialKey = uint32(1) << SpecialKeyNum
	WarpKey    = uint32(1) << WarpKeyNum
	ZoomInKey  = uint32(1) << ZoomInKeyNum
	ZoomOutKey = uint32(1) << ZoomOutKeyNum

	// MotionKeys are the steering controls.
	MotionKeys = UpKey | DownKey | LeftKey | RightKey
)

// Key mask bits above the ship keys disable whole input surfaces.
const (
	MouseMask        uint32 = 1 << 28
	ShortcutZoomMask uint32 = 1 << 29
)

// Bindings maps host key names to controls.
type Bindings map[string]KeyNum

// Name returns the first host key bound to k, or "".
func (b Bindings) Name(k KeyNum) string {
	best := ""
	for name, bound := range b {
		if bound == k && (best == "" || name < best) {
			best = name
		}
	}
	return best
}

// ParseBindings converts control-name to key-name pairs.
func ParseBindings(byControl map[string]string) (Bindings, error) {
	b := make(Bindings, len(byControl))
	for control, key := range byControl {
		k, err := ParseKeyNum(control)
		if err != nil {
			return nil, err
		}
		b[key] = k
	}
	return b, nil
}
