package game

import (
	"image"
	"strings"
	"testing"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
)

const briefedLevel = `{
  "name": "Briefed",
  "angle": 0,
  "players": [{"type": "human", "race": 100}],
  "initials": [
    {"type": "Fighter", "owner": 0, "at": [0, 0]},
    {"type": "Station", "owner": 0, "at": [2000, 0]}
  ],
  "briefing": [
    {"kind": "object", "object": 1, "title": "Home", "content": "Guard \\fDCthis\\r station."},
    {"kind": "freestanding", "content": "Good luck."}
  ]
}`

func TestBriefingPage(t *testing.T) {
	s, l := newTestSim(t, briefedLevel)
	constructAll(t, s, l)
	f := render.TacticalFont()
	area := image.Rect(0, 0, 300, 300)
	v := BriefingView(l, s.Angle, area)

	st, at, ok, err := s.BriefingPage(0, f, 200, v)
	if err != nil {
		t.Fatalf("BriefingPage(0): %v", err)
	}
	if !ok || !at.In(area) {
		t.Errorf("object brief point at %v, %v", at, ok)
	}
	if !strings.HasPrefix(st.Text(), "\\iHome\\r\n") {
		t.Errorf("text = %q", st.Text())
	}

	if _, _, ok, err := s.BriefingPage(1, f, 200, v); err != nil || ok {
		t.Errorf("freestanding page: ok %v, err %v", ok, err)
	}
	if _, _, _, err := s.BriefingPage(2, f, 200, v); err == nil {
		t.Error("out of range page accepted")
	}
}

func TestDrawBriefing(t *testing.T) {
	s, l := newTestSim(t, briefedLevel)
	constructAll(t, s, l)
	var c glyphCanvas
	if err := s.DrawBriefing(&c, render.TacticalFont(), image.Rect(0, 0, 300, 200), image.Rect(0, 210, 300, 400)); err != nil {
		t.Fatalf("DrawBriefing: %v", err)
	}
	got := c.text.String()
	for _, want := range []string{"Home", "Guard", "luck."} {
		if !strings.Contains(got, want) {
			t.Errorf("briefing glyphs %q lack %q", got, want)
		}
	}
	if !strings.ContainsRune(got, 'O') {
		t.Error("station missing from the star map")
	}
}
