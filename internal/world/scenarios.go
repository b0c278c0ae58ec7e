package world

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// FactoryScenario identifies the built-in scenario.
const FactoryScenario = "factory"

// ScenarioEntry describes one installed scenario.
type ScenarioEntry struct {
	Identifier string
	Title      string
	Author     string
	Version    string
}

// ParseScenarioEntry reads the metadata of an info.json file.
func ParseScenarioEntry(id string, data []byte) (ScenarioEntry, error) {
	var info infoJSON
	if err := json.Unmarshal(data, &info); err != nil {
		return ScenarioEntry{}, fmt.Errorf("parse %s info: %w", id, err)
	}
	return ScenarioEntry{Identifier: id, Title: info.Title, Author: info.Author, Version: info.Version}, nil
}

// ListScenarios returns the factory scenario followed by every directory of
// plugins holding an info.json, sorted by identifier. A plugin whose info does
// not parse is skipped. plugins may be nil.
func ListScenarios(factory ScenarioEntry, plugins fs.FS) ([]ScenarioEntry, error) {
	out := []ScenarioEntry{factory}
	if plugins == nil {
		return out, nil
	}
	matches, err := fs.Glob(plugins, "*/info.json")
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		id := path.Dir(m)
		if id == factory.Identifier {
			continue
		}
		data, err := fs.ReadFile(plugins, m)
		if err != nil {
			continue
		}
		entry, err := ParseScenarioEntry(id, data)
		if err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}
