// Command tactical-dump runs scenario levels without a window: it renders
// briefings to PNG, plays demos headlessly, prints styled text to the
// terminal and lists installed scenarios.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/spacehole-rogue/spacehole_tactical/assets"
	"github.com/spacehole-rogue/spacehole_tactical/internal/game"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
	"github.com/spacehole-rogue/spacehole_tactical/internal/resource"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

type options struct {
	scenarioDir string
	scenario    string
	level       int
	out         string
	seconds     int
	replay      string
	replayID    int
	width       int
	seed        int64
	copy        bool
}

func main() {
	logger.Init()

	var o options
	flag.StringVar(&o.scenarioDir, "scenarios", os.Getenv("TACTICAL_SCENARIO_DIR"), "directory of installed scenarios")
	flag.StringVar(&o.scenario, "scenario", world.FactoryScenario, "scenario identifier")
	flag.IntVar(&o.level, "level", 0, "level number")
	flag.StringVar(&o.out, "o", "", "output file (briefing, demo)")
	flag.IntVar(&o.seconds, "seconds", 60, "demo length in game seconds")
	flag.StringVar(&o.replay, "replay", "", "recorded input file to drive the demo")
	flag.IntVar(&o.replayID, "replay-id", -1, "scenario replay resource to drive the demo")
	flag.IntVar(&o.width, "width", 72, "wrap width in columns (text)")
	flag.Int64Var(&o.seed, "seed", 1, "random seed")
	flag.BoolVar(&o.copy, "copy", false, "also copy the text to the clipboard (text)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] briefing|demo|text|scenarios\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch mode := flag.Arg(0); mode {
	case "briefing":
		err = runBriefing(o)
	case "demo":
		err = runDemo(o)
	case "text":
		err = runText(o)
	case "scenarios":
		err = runPicker(o)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Log.WithError(err).Fatal(flag.Arg(0))
	}
}

// loadLevel reads the catalog and level n of the chosen scenario.
func loadLevel(o options) (*resource.Loader, *world.Catalog, *world.Level, error) {
	var scenario fs.FS
	if o.scenario != world.FactoryScenario {
		if o.scenarioDir == "" {
			return nil, nil, nil, fmt.Errorf("scenario %q needs -scenarios", o.scenario)
		}
		sub, err := fs.Sub(os.DirFS(o.scenarioDir), o.scenario)
		if err != nil {
			return nil, nil, nil, err
		}
		scenario = sub
	}
	loader := resource.NewLoader(1, scenario, assets.Factory())
	cat, err := loader.Catalog()
	if err != nil {
		return nil, nil, nil, err
	}
	lvl, err := loader.Level(o.level, cat)
	if err != nil {
		return nil, nil, nil, err
	}
	return loader, cat, lvl, nil
}

// construct runs every construction step of lvl at once.
func construct(s *game.Sim, lvl *world.Level) error {
	state := s.StartConstructLevel(lvl)
	for !state.Done {
		if err := s.ConstructLevel(state); err != nil {
			return fmt.Errorf("construct %s: %w", lvl.Name, err)
		}
	}
	return nil
}

// openLevel constructs level n with the -seed random seed.
func openLevel(o options) (*game.Sim, *resource.Loader, error) {
	loader, cat, lvl, err := loadLevel(o)
	if err != nil {
		return nil, nil, err
	}
	s := game.NewSim(cat, o.seed)
	if err := construct(s, lvl); err != nil {
		return nil, nil, err
	}
	return s, loader, nil
}
