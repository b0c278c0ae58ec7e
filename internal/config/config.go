// Package config loads player preferences: key bindings, volume, display
// density and the scenario directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spacehole-rogue/spacehole_tactical/internal/game"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
)

// AppName names the per-user config directory.
const AppName = "spacehole_tactical"

// ScenarioDirEnv overrides the scenario directory.
const ScenarioDirEnv = "TACTICAL_SCENARIO_DIR"

// Prefs are the merged preferences.
type Prefs struct {
	// Keys maps control names ("up", "hotkey-3") to host key names.
	Keys        map[string]string `json:"keys"`
	Volume      int               `json:"volume"`
	Scale       int               `json:"scale"`
	ScenarioDir string            `json:"scenario-dir"`
	Scenario    string            `json:"scenario"`
	Level       int               `json:"level"`
}

// overlay holds optional fields; only those present replace defaults.
type overlay struct {
	Keys        map[string]string `json:"keys"`
	Volume      *int              `json:"volume"`
	Scale       *int              `json:"scale"`
	ScenarioDir *string           `json:"scenario-dir"`
	Scenario    *string           `json:"scenario"`
	Level       *int              `json:"level"`
}

// Parse reads a full preferences document.
func Parse(data []byte) (Prefs, error) {
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs: %w", err)
	}
	if p.Keys == nil {
		p.Keys = map[string]string{}
	}
	return p, nil
}

// Merge applies a partial preferences document over p. Key entries merge
// per control.
func (p *Prefs) Merge(data []byte) error {
	var o overlay
	if err := json.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parse prefs overlay: %w", err)
	}
	for control, key := range o.Keys {
		p.Keys[control] = key
	}
	if o.Volume != nil {
		p.Volume = min(max(*o.Volume, 0), 8)
	}
	if o.Scale != nil {
		p.Scale = max(*o.Scale, 1)
	}
	if o.ScenarioDir != nil {
		p.ScenarioDir = *o.ScenarioDir
	}
	if o.Scenario != nil {
		p.Scenario = *o.Scenario
	}
	if o.Level != nil {
		p.Level = *o.Level
	}
	return nil
}

// Bindings converts the key table for the command interpreter.
func (p *Prefs) Bindings() (game.Bindings, error) {
	b, err := game.ParseBindings(p.Keys)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}
	return b, nil
}

// UserPath returns the per-user preferences file.
func UserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, AppName, "prefs.json"), nil
}

// Load merges defaults, the file at userPath (if it exists) and the
// environment. An empty userPath skips the file.
func Load(defaults []byte, userPath string) (Prefs, error) {
	p, err := Parse(defaults)
	if err != nil {
		return Prefs{}, err
	}
	if userPath != "" {
		data, err := os.ReadFile(userPath)
		switch {
		case err == nil:
			if err := p.Merge(data); err != nil {
				return Prefs{}, fmt.Errorf("%s: %w", userPath, err)
			}
			logger.Log.WithField("path", userPath).Debug("loaded user prefs")
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Prefs{}, fmt.Errorf("read %s: %w", userPath, err)
		}
	}
	if dir := os.Getenv(ScenarioDirEnv); dir != "" {
		p.ScenarioDir = dir
	}
	logger.Log.WithFields(logrus.Fields{
		"scenario_dir": p.ScenarioDir,
		"scale":        p.Scale,
		"keys":         len(p.Keys),
	}).Debug("prefs ready")
	return p, nil
}

// Save writes p to path, creating its directory.
func Save(p Prefs, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
