package world

import (
	"image"
	"testing"
	"testing/fstest"
)

func TestAngles(t *testing.T) {
	cases := []struct{ a, b, add, diff int }{
		{10, 20, 30, -10},
		{350, 20, 10, -30},
		{20, 350, 10, 30},
		{0, 180, 180, 180},
		{-90, 0, 270, -90},
	}
	for _, tc := range cases {
		if got := AddAngle(tc.a, tc.b); got != tc.add {
			t.Errorf("AddAngle(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.add)
		}
		if got := AngleDifference(tc.a, tc.b); got != tc.diff {
			t.Errorf("AngleDifference(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.diff)
		}
	}
}

func TestAngleFromVector(t *testing.T) {
	// The stick points right; the pilot heads right once 180 is added.
	if got := AddAngle(AngleFromVector(1, 0), 180); got != 0 {
		t.Errorf("heading for +x = %d, want 0", got)
	}
	if got := AddAngle(AngleFromVector(0, 1), 180); got != 90 {
		t.Errorf("heading for +y = %d, want 90", got)
	}
}

func TestRotateCoords(t *testing.T) {
	const c = UniversalCenter
	cases := []struct {
		p        Point
		rotation int
		want     Point
	}{
		{Point{0, 0}, 123, Point{c, c}},
		{Point{100, 50}, 270, Point{c - 100, c - 50}},
		{Point{100, 50}, 0, Point{c + 50, c - 100}},
	}
	for _, tc := range cases {
		if got := RotateCoords(tc.p, tc.rotation); got != tc.want {
			t.Errorf("RotateCoords(%v, %d) = %v, want %v", tc.p, tc.rotation, got, tc.want)
		}
	}
}

func TestFullScaleAndCorner(t *testing.T) {
	l := &Level{Initials: []InitialObject{
		{Location: Point{0, 0}},
		{Location: Point{1000, 0}},
	}}
	corner, scale := FullScaleAndCorner(l, 270, image.Rect(0, 0, 200, 100))
	if scale != 327 {
		t.Errorf("scale = %d, want 327", scale)
	}
	want := Point{UniversalCenter - 1752, UniversalCenter - 626}
	if corner != want {
		t.Errorf("corner = %v, want %v", corner, want)
	}

	lone := &Level{Initials: []InitialObject{{Location: Point{5, 5}}}}
	if _, scale := FullScaleAndCorner(lone, 0, image.Rect(0, 0, 100, 100)); scale <= 0 {
		t.Errorf("lone object scale = %d", scale)
	}
}

func TestListScenarios(t *testing.T) {
	plugins := fstest.MapFS{
		"zeta/info.json":    {Data: []byte(`{"title": "Zeta", "author": "z", "version": "2"}`)},
		"alpha/info.json":   {Data: []byte(`{"title": "Alpha"}`)},
		"broken/info.json":  {Data: []byte(`{`)},
		"factory/info.json": {Data: []byte(`{"title": "Shadow"}`)},
		"loose.json":        {Data: []byte(`{}`)},
	}
	factory := ScenarioEntry{Identifier: FactoryScenario, Title: "Built In"}
	got, err := ListScenarios(factory, plugins)
	if err != nil {
		t.Fatalf("ListScenarios: %v", err)
	}
	var ids []string
	for _, e := range got {
		ids = append(ids, e.Identifier)
	}
	want := []string{"factory", "alpha", "zeta"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
	if got[0].Title != "Built In" || got[2].Author != "z" {
		t.Errorf("entries = %+v", got)
	}

	only, err := ListScenarios(factory, nil)
	if err != nil || len(only) != 1 {
		t.Errorf("nil plugins = %v, %v", only, err)
	}
}
