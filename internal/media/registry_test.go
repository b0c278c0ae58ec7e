package media

import "testing"

func TestRegistryDedupesInOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []int{30, 10, 30, 20, 10} {
		r.AddSprite(id)
	}
	r.LoadSound(5)
	r.LoadSound(5)

	want := []int{30, 10, 20}
	got := r.Sprites()
	if len(got) != len(want) {
		t.Fatalf("Sprites = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sprites = %v, want %v", got, want)
		}
	}
	if len(r.Sounds()) != 1 || !r.HasSound(5) || !r.HasSprite(20) || r.HasSprite(5) {
		t.Errorf("sounds = %v", r.Sounds())
	}

	r.Reset()
	if len(r.Sprites()) != 0 || len(r.Sounds()) != 0 || r.HasSprite(30) {
		t.Error("Reset left media queued")
	}
	r.AddSprite(30)
	if len(r.Sprites()) != 1 {
		t.Error("sprite not re-queued after Reset")
	}
}
