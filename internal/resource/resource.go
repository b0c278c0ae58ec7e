// Package resource looks up scenario files by logical path across an ordered
// list of file systems: the selected scenario first, then the factory data.
package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"

	"github.com/sirupsen/logrus"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// ErrNotFound is returned when no file system holds the requested path.
var ErrNotFound = errors.New("resource not found")

// Loader resolves logical resource paths.
type Loader struct {
	dirs []fs.FS
	// Scale is the display density; textures try name@<Scale>x.png first.
	Scale int
}

// NewLoader searches dirs in order. Nil entries are skipped.
func NewLoader(scale int, dirs ...fs.FS) *Loader {
	l := &Loader{Scale: max(scale, 1)}
	for _, d := range dirs {
		if d != nil {
			l.dirs = append(l.dirs, d)
		}
	}
	return l
}

// Bytes returns the contents of the first file named path.
func (l *Loader) Bytes(path string) ([]byte, error) {
	for _, d := range l.dirs {
		data, err := fs.ReadFile(d, path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Exists reports whether any file system holds path.
func (l *Loader) Exists(path string) bool {
	for _, d := range l.dirs {
		if st, err := fs.Stat(d, path); err == nil && !st.IsDir() {
			return true
		}
	}
	return false
}

// Strings reads the string list strings/<id>.json.
func (l *Loader) Strings(id int) ([]string, error) {
	path := fmt.Sprintf("strings/%d.json", id)
	data, err := l.Bytes(path)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}

// Text reads text/<id>.txt.
func (l *Loader) Text(id int) (string, error) {
	data, err := l.Bytes(fmt.Sprintf("text/%d.txt", id))
	return string(data), err
}

// Replay reads the recorded input replays/<id>.bin.
func (l *Loader) Replay(id int) ([]byte, error) {
	return l.Bytes(fmt.Sprintf("replays/%d.bin", id))
}

// Sound reads the WAV sample sounds/<id>.wav.
func (l *Loader) Sound(id int) ([]byte, error) {
	return l.Bytes(fmt.Sprintf("sounds/%d.wav", id))
}

// Interface reads and parses interfaces/<name>.json.
func (l *Loader) Interface(name string) ([]render.Item, error) {
	path := fmt.Sprintf("interfaces/%s.json", name)
	data, err := l.Bytes(path)
	if err != nil {
		return nil, err
	}
	items, err := render.LoadInterface(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Catalog reads info.json and objects.json.
func (l *Loader) Catalog() (*world.Catalog, error) {
	info, err := l.Bytes("info.json")
	if err != nil {
		return nil, err
	}
	objects, err := l.Bytes("objects.json")
	if err != nil {
		return nil, err
	}
	c, err := world.LoadCatalog(info, objects)
	if err != nil {
		return nil, fmt.Errorf("scenario catalog: %w", err)
	}
	return c, nil
}

// Level reads levels/<n>.json.
func (l *Loader) Level(n int, cat *world.Catalog) (*world.Level, error) {
	path := fmt.Sprintf("levels/%d.json", n)
	data, err := l.Bytes(path)
	if err != nil {
		return nil, err
	}
	lvl, err := world.LoadLevel(data, cat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// Image decodes a PNG at path.
func (l *Loader) Image(path string) (image.Image, error) {
	data, err := l.Bytes(path)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Picture loads pictures/<name> at the best available density.
func (l *Loader) Picture(name string) (image.Image, int, error) {
	return l.hidpi("pictures/" + name)
}

// Sprite loads the image of sprite table id at the best available density.
func (l *Loader) Sprite(id int) (image.Image, int, error) {
	return l.hidpi(fmt.Sprintf("sprites/%d/image", id))
}

// hidpi tries name@<scale>x.png, halving scale on each failure, and finally
// name.png. Only the last failure is returned.
func (l *Loader) hidpi(name string) (image.Image, int, error) {
	scale := l.Scale
	for {
		path := name + ".png"
		if scale > 1 {
			path = fmt.Sprintf("%s@%dx.png", name, scale)
		}
		img, err := l.Image(path)
		if err == nil {
			return img, scale, nil
		}
		if scale <= 1 {
			return nil, 0, err
		}
		logger.Log.WithFields(logrus.Fields{
			"path":  path,
			"scale": scale,
		}).Debug("texture variant unavailable, trying lower density")
		scale >>= 1
	}
}
