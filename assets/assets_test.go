package assets_test

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/spacehole-rogue/spacehole_tactical/assets"
	"github.com/spacehole-rogue/spacehole_tactical/internal/config"
	"github.com/spacehole-rogue/spacehole_tactical/internal/game"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/resource"
)

func TestFactoryLevelsConstruct(t *testing.T) {
	l := resource.NewLoader(1, assets.Factory())
	cat, err := l.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	for n := 0; l.Exists(levelPath(n)); n++ {
		lvl, err := l.Level(n, cat)
		if err != nil {
			t.Fatalf("level %d: %v", n, err)
		}
		s := game.NewSim(cat, int64(n))
		state := s.StartConstructLevel(lvl)
		for steps := 0; !state.Done; steps++ {
			if steps > state.Max {
				t.Fatalf("level %d: construction overran %d steps", n, state.Max)
			}
			if err := s.ConstructLevel(state); err != nil {
				t.Fatalf("level %d step %d: %v", n, state.Step, err)
			}
		}
		if s.Ship.IsNone() {
			t.Errorf("level %d: no player flagship", n)
		}
		if len(s.Media.Sprites()) == 0 {
			t.Errorf("level %d: no sprites queued", n)
		}
		for _, bp := range lvl.BriefPoints {
			if _, err := render.Retro(bp.Content, render.WrapMetrics{Font: render.TacticalFont(), Width: 300}, render.White, render.Black); err != nil {
				t.Errorf("level %d brief point %q: %v", n, bp.Title, err)
			}
		}
	}
}

func levelPath(n int) string {
	return fmt.Sprintf("levels/%d.json", n)
}

func TestFactoryInterface(t *testing.T) {
	l := resource.NewLoader(2, assets.Factory())
	cat, err := l.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	items, err := l.Interface("main")
	if err != nil {
		t.Fatalf("Interface: %v", err)
	}
	env := render.DrawEnv{Font: render.TacticalFont(), Pictures: resource.NewPictures(l, cat)}
	for i, it := range items {
		if err := render.DrawItem(nopCanvas{}, it, env); err != nil {
			t.Errorf("item %d (%s): %v", i, render.ItemKind(it), err)
		}
	}
}

func TestDefaultPrefs(t *testing.T) {
	p, err := config.Parse(assets.Prefs)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := p.Bindings()
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	if b.Name(game.UpKeyNum) != "ArrowUp" || b.Name(game.FirstHotKeyNum+9) != "Digit0" {
		t.Errorf("default bindings = %v", b)
	}
}

type nopCanvas struct{}

func (nopCanvas) FillRect(image.Rectangle, color.RGBA) {}
func (nopCanvas) DrawGlyph(*render.Font, image.Point, rune, color.RGBA) {}
func (nopCanvas) DrawTexture(render.Texture, image.Point) {}
