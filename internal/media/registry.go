// Package media queues the sprite tables and sounds a level needs. The host
// decodes and uploads them after level construction.
package media

// Registry records requested media ids in first-request order.
type Registry struct {
	sprites    []int
	sounds     []int
	spriteSeen map[int]bool
	soundSeen  map[int]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset forgets every queued id.
func (r *Registry) Reset() {
	r.sprites = r.sprites[:0]
	r.sounds = r.sounds[:0]
	r.spriteSeen = make(map[int]bool)
	r.soundSeen = make(map[int]bool)
}

// AddSprite queues a sprite table. Repeats are ignored.
func (r *Registry) AddSprite(id int) {
	if !r.spriteSeen[id] {
		r.spriteSeen[id] = true
		r.sprites = append(r.sprites, id)
	}
}

// LoadSound queues a sound. Repeats are ignored.
func (r *Registry) LoadSound(id int) {
	if !r.soundSeen[id] {
		r.soundSeen[id] = true
		r.sounds = append(r.sounds, id)
	}
}

// HasSprite reports whether id is queued.
func (r *Registry) HasSprite(id int) bool { return r.spriteSeen[id] }

// HasSound reports whether id is queued.
func (r *Registry) HasSound(id int) bool { return r.soundSeen[id] }

// Sprites returns the queued sprite tables.
func (r *Registry) Sprites() []int { return r.sprites }

// Sounds returns the queued sounds.
func (r *Registry) Sounds() []int { return r.sounds }
