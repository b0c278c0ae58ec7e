package main

import (
	"fmt"
	"image"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spacehole-rogue/spacehole_tactical/internal/game"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render/raster"
	"github.com/spacehole-rogue/spacehole_tactical/internal/resource"
)

const (
	demoWidth  = 640
	demoHeight = 480
)

// readReplay returns the recording chosen by -replay or -replay-id, or nil.
func readReplay(o options, loader *resource.Loader) (*game.ReplayInput, error) {
	var data []byte
	var err error
	switch {
	case o.replay != "":
		data, err = os.ReadFile(o.replay)
	case o.replayID >= 0:
		data, err = loader.Replay(o.replayID)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	return game.NewReplayInput(data)
}

// runDemo plays a level without a window, driven by a recording when one is
// given, and logs how it went.
func runDemo(o options) error {
	loader, cat, lvl, err := loadLevel(o)
	if err != nil {
		return err
	}
	replay, err := readReplay(o, loader)
	if err != nil {
		return err
	}
	seed := o.seed
	if replay != nil {
		seed = int64(replay.Seed)
	}

	s := game.NewSim(cat, seed)
	p := game.NewPlayerShip(s, game.Bindings{})
	if err := construct(s, lvl); err != nil {
		return err
	}

	end := s.StartTime + int64(o.seconds)*game.TicksPerSecond
	steps := 0
	for s.Time < end && !s.Finished() {
		if replay != nil {
			keys, ok := replay.Next()
			if !ok {
				logger.Log.WithField("step", steps).Debug("replay exhausted")
				replay = nil
			} else {
				p.Replay(keys)
			}
		}
		p.Update(false)
		s.MajorTick()
		steps++
	}

	fields := logrus.Fields{
		"level":   lvl.Name,
		"steps":   steps,
		"seconds": (s.Time - s.StartTime) / game.TicksPerSecond,
		"objects": s.Objects.Len(),
		"over":    s.GameOver,
	}
	if s.GameOver {
		fields["victor"] = s.Victor
		fields["next"] = s.NextLevel
	}
	logger.Log.WithFields(fields).Info("demo finished")
	for _, m := range s.Messages.Recent(10) {
		logger.Log.WithField("hue", m.Hue).Info(m.Text)
	}

	if o.out == "" {
		return nil
	}
	c := raster.NewCanvas(demoWidth, demoHeight)
	bounds := image.Rect(0, 0, demoWidth, demoHeight)
	s.DrawScene(c, render.TacticalFont(), s.ViewFor(bounds))
	return c.SavePNG(o.out)
}
