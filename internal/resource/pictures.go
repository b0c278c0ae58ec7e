package resource

import (
	"image"

	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// Pictures resolves inline picture ids in interface text against a
// scenario's catalog and picture files. Decoded pictures are kept.
type Pictures struct {
	Loader  *Loader
	Catalog *world.Catalog

	cache map[string]image.Image
}

// NewPictures returns a picture source over l and cat. cat may be nil.
func NewPictures(l *Loader, cat *world.Catalog) *Pictures {
	return &Pictures{Loader: l, Catalog: cat, cache: make(map[string]image.Image)}
}

// Portrait returns the portrait of the base object named id.
func (p *Pictures) Portrait(id string) (string, bool) {
	if p.Catalog == nil {
		return "", false
	}
	n, ok := p.Catalog.Lookup(id)
	if !ok || p.Catalog.Get(n).Portrait == "" {
		return "", false
	}
	return p.Catalog.Get(n).Portrait, true
}

// Texture loads pictures/<name> at the best density.
func (p *Pictures) Texture(name string) (render.Texture, error) {
	if img, ok := p.cache[name]; ok {
		return img, nil
	}
	img, _, err := p.Loader.Picture(name)
	if err != nil {
		return nil, err
	}
	p.cache[name] = img
	return img, nil
}
