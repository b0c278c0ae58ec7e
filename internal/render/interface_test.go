package render

import (
	"image"
	"testing"
)

const sampleInterface = `[
  {"type": "rect", "bounds": [10, 10, 200, 120], "label": "STATUS", "hue": "gold"},
  {"type": "text", "bounds": [12, 20, 198, 60], "text": "Escort the ^Pcruiser^ home.", "hue": "sky-blue"},
  {"type": "picture", "bounds": [12, 64, 44, 96], "picture": "nebula"},
  {"type": "button", "bounds": [20, 100, 80, 116], "id": 7, "label": "Done", "key": "Return", "gamepad": 1, "hue": "green", "style": "small"},
  {"type": "radio", "bounds": [90, 100, 150, 112], "label": "Easy", "on": true},
  {"type": "checkbox", "bounds": [90, 114, 150, 126], "label": "Music"},
  {"type": "tab-box", "bounds": [210, 30, 400, 200], "hue": "red", "tabs": [
    {"id": 1, "width": 60, "label": "Keys", "content": [
      {"type": "button", "bounds": [220, 40, 300, 56], "label": "Reset"}
    ]},
    {"id": 2, "width": 60, "label": "Sound", "content": []}
  ]}
]`

func TestLoadInterface(t *testing.T) {
	items, err := LoadInterface([]byte(sampleInterface))
	if err != nil {
		t.Fatalf("LoadInterface: %v", err)
	}

	kinds := []string{"rect", "text", "picture", "button", "radio", "checkbox", "tab-box"}
	if len(items) != len(kinds) {
		t.Fatalf("got %d items, want %d", len(items), len(kinds))
	}
	for i, want := range kinds {
		if got := ItemKind(items[i]); got != want {
			t.Errorf("item %d kind = %q, want %q", i, got, want)
		}
	}

	button := items[3].(PlainButton)
	if button.Bounds != image.Rect(20, 100, 80, 116) {
		t.Errorf("button bounds = %v", button.Bounds)
	}
	if button.ID == nil || *button.ID != 7 {
		t.Errorf("button id = %v", button.ID)
	}
	if button.Hue != HueGreen || button.Style != StyleSmall || button.Key != "Return" {
		t.Errorf("button = %+v", button.Button)
	}
	if items[0].Frame().ID != nil {
		t.Error("rect without id got one")
	}
	if !items[4].(RadioButton).On || items[5].(CheckboxButton).On {
		t.Error("toggle states not carried")
	}

	box := items[6].(TabBox)
	if len(box.Tabs) != 2 || len(box.Tabs[0].Content) != 1 || box.Tabs[1].Label != "Sound" {
		t.Fatalf("tab box = %+v", box)
	}
	if ItemKind(box.Tabs[0].Content[0]) != "button" {
		t.Errorf("tab content kind = %q", ItemKind(box.Tabs[0].Content[0]))
	}
}

func TestLoadInterfaceErrors(t *testing.T) {
	cases := map[string]string{
		"unknown type":  `[{"type": "slider"}]`,
		"unknown style": `[{"type": "rect", "style": "huge"}]`,
		"unknown hue":   `[{"type": "rect", "hue": "mauve"}]`,
		"nested":        `[{"type": "tab-box", "tabs": [{"content": [{"type": "dial"}]}]}]`,
		"syntax":        `[{`,
	}
	for name, data := range cases {
		if _, err := LoadInterface([]byte(data)); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestDrawItems(t *testing.T) {
	items, err := LoadInterface([]byte(sampleInterface))
	if err != nil {
		t.Fatal(err)
	}
	env := DrawEnv{
		Font: TacticalFont(),
		Pictures: fakePictures{
			portraits: map[string]string{"cruiser": "portraits/cruiser"},
			sizes:     map[string]image.Point{"portraits/cruiser": {16, 16}, "nebula": {32, 32}},
		},
	}

	var c recordingCanvas
	for _, it := range items {
		if err := DrawItem(&c, it, env); err != nil {
			t.Fatalf("DrawItem(%s): %v", ItemKind(it), err)
		}
	}
	if len(c.textures) != 2 {
		t.Errorf("drew %d textures, want portrait and picture", len(c.textures))
	}
	if c.textures[1] != image.Pt(12, 64) {
		t.Errorf("picture rect drawn at %v", c.textures[1])
	}

	var reset bool
	for _, g := range c.glyphs {
		if g.r == 'R' {
			reset = true
		}
	}
	if !reset {
		t.Error("first tab content not drawn")
	}
}

func TestDrawItemMissingPicture(t *testing.T) {
	env := DrawEnv{Font: TacticalFont(), Pictures: fakePictures{}}
	var c recordingCanvas
	if err := DrawItem(&c, PictureRect{Picture: "absent"}, env); err == nil {
		t.Error("missing picture drew without error")
	}
}

func TestHueText(t *testing.T) {
	var h Hue
	if err := h.UnmarshalText([]byte("Pale-Purple")); err != nil || h != HuePalePurple {
		t.Fatalf("UnmarshalText = %v, %v", h, err)
	}
	if b, _ := HueSkyBlue.MarshalText(); string(b) != "sky-blue" {
		t.Errorf("MarshalText = %q", b)
	}
	if got := TranslateColorShade(HueRed, ShadeLightest); got.R != 255 || got.G != 0 {
		t.Errorf("lightest red = %v", got)
	}
	if got := TranslateColorShade(HueRed, 99); got != TranslateColorShade(HueRed, ShadeLightest) {
		t.Errorf("shade not clamped: %v", got)
	}
}

func TestItemBounds(t *testing.T) {
	items, err := LoadInterface([]byte(sampleInterface))
	if err != nil {
		t.Fatalf("LoadInterface: %v", err)
	}
	f := TacticalFont()

	if got := ItemBounds(items[0], f); got != image.Rect(10, 10, 200, 120) {
		t.Errorf("rect bounds = %v", got)
	}
	radio := ItemBounds(items[4], f)
	if !image.Rect(90, 100, 150, 112).In(radio) || radio.Max.Y != 100+f.Height {
		t.Errorf("radio bounds = %v", radio)
	}
	box := ItemBounds(items[6], f)
	if want := image.Rect(210, 30-f.Height-4, 400, 200); box != want {
		t.Errorf("tab box bounds = %v, want %v", box, want)
	}
}
