package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Hue is one of the sixteen palette families used for admirals, labels and retro text.
type Hue uint8

const (
	HueGray Hue = iota
	HueOrange
	HueYellow
	HueBlue
	HueGreen
	HuePurple
	HueIndigo
	HueSalmon
	HueGold
	HueAqua
	HuePink
	HuePaleGreen
	HuePalePurple
	HueSkyBlue
	HueTan
	HueRed

	HueCount = 16
)

// Shades run from 0 (nearly black) to 15 (full intensity).
const (
	ShadeDarkest  = 1
	ShadeDarker   = 4
	ShadeDark     = 7
	ShadeMedium   = 9
	ShadeLight    = 12
	ShadeLighter  = 14
	ShadeLightest = 15

	ShadeCount = 16
)

// Black is pure black. Fills of this color are skipped when drawing text.
var Black = color.RGBA{0, 0, 0, 255}

// White is pure white.
var White = color.RGBA{255, 255, 255, 255}

var hueNames = [HueCount]string{
	"gray", "orange", "yellow", "blue", "green", "purple", "indigo", "salmon",
	"gold", "aqua", "pink", "pale-green", "pale-purple", "sky-blue", "tan", "red",
}

// hueBase holds the full-intensity color of each hue.
var hueBase = [HueCount]color.RGBA{
	{255, 255, 255, 255}, // gray
	{255, 128, 0, 255},   // orange
	{255, 255, 0, 255},   // yellow
	{0, 0, 255, 255},     // blue
	{0, 255, 0, 255},     // green
	{128, 0, 255, 255},   // purple
	{128, 128, 255, 255}, // indigo
	{255, 128, 128, 255}, // salmon
	{255, 192, 0, 255},   // gold
	{0, 255, 192, 255},   // aqua
	{255, 128, 255, 255}, // pink
	{128, 255, 128, 255}, // pale green
	{192, 128, 255, 255}, // pale purple
	{0, 192, 255, 255},   // sky blue
	{192, 160, 128, 255}, // tan
	{255, 0, 0, 255},     // red
}

// TranslateColorShade returns the palette entry for a hue at a shade.
// Out-of-range arguments are clamped.
func TranslateColorShade(h Hue, shade int) color.RGBA {
	if h >= HueCount {
		h = HueGray
	}
	shade = min(max(shade, 0), ShadeCount-1)
	base := hueBase[h]
	scale := func(c uint8) uint8 {
		return uint8(int(c) * (shade + 1) / ShadeCount)
	}
	return color.RGBA{scale(base.R), scale(base.G), scale(base.B), 255}
}

// String returns the hue's name.
func (h Hue) String() string {
	if h < HueCount {
		return hueNames[h]
	}
	return fmt.Sprintf("hue(%d)", uint8(h))
}

// UnmarshalText parses a hue name such as "sky-blue".
func (h *Hue) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range hueNames {
		if n == name {
			*h = Hue(i)
			return nil
		}
	}
	return fmt.Errorf("unknown hue %q", text)
}

// MarshalText writes the hue's name.
func (h Hue) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func isBlack(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}
