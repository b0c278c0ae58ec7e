package main

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spacehole-rogue/spacehole_tactical/assets"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

var (
	pickerTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4fb4ff"))
	pickerCursor   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd84f"))
	pickerItem     = lipgloss.NewStyle().Foreground(lipgloss.Color("#c8c8c8"))
	pickerSubtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6e6e"))
)

// picker lists installed scenarios and reports the one chosen.
type picker struct {
	entries []world.ScenarioEntry
	cursor  int
	chosen  bool
	quit    bool
}

func (m picker) Init() tea.Cmd {
	return nil
}

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m picker) View() string {
	if m.chosen || m.quit {
		return ""
	}
	var b strings.Builder
	b.WriteString(pickerTitle.Render("Scenarios"))
	b.WriteString("\n\n")
	for i, e := range m.entries {
		prefix := "  "
		style := pickerItem
		if i == m.cursor {
			prefix = "> "
			style = pickerCursor
		}
		b.WriteString(style.Render(prefix + e.Title))
		if e.Author != "" || e.Version != "" {
			b.WriteString(pickerSubtitle.Render(fmt.Sprintf("  %s %s", e.Author, e.Version)))
		}
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(pickerSubtitle.Render("up/down to move, enter to choose, q to quit"))
	b.WriteByte('\n')
	return b.String()
}

// scenarioEntries lists the factory scenario and those under dir.
func scenarioEntries(dir string) ([]world.ScenarioEntry, error) {
	info, err := fs.ReadFile(assets.Factory(), "info.json")
	if err != nil {
		return nil, err
	}
	factory, err := world.ParseScenarioEntry(world.FactoryScenario, info)
	if err != nil {
		return nil, err
	}
	var plugins fs.FS
	if dir != "" {
		plugins = os.DirFS(dir)
	}
	return world.ListScenarios(factory, plugins)
}

// runPicker lets the user choose a scenario and prints its identifier.
func runPicker(o options) error {
	entries, err := scenarioEntries(o.scenarioDir)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(picker{entries: entries}).Run()
	if err != nil {
		return err
	}
	if m := final.(picker); m.chosen {
		fmt.Println(m.entries[m.cursor].Identifier)
	}
	return nil
}
