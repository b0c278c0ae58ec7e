// Package assets embeds the factory scenario and default preferences.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed factory
var files embed.FS

// Prefs is the default preferences document.
//
//go:embed prefs.json
var Prefs []byte

// Factory returns the built-in scenario rooted at its info.json.
func Factory() fs.FS {
	sub, err := fs.Sub(files, "factory")
	if err != nil {
		panic(err)
	}
	return sub
}
