package game

import (
	"errors"
	"image"

	"github.com/sirupsen/logrus"
	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// ErrMissingBlessed is returned when a scenario leaves one of the four
// blessed objects undefined.
var ErrMissingBlessed = errors.New("missing blessed object")

// LoadPhase names the kind of work a construction step does.
type LoadPhase uint8

const (
	PhaseMedia LoadPhase = iota
	PhaseCreate
	PhaseDestinations
	PhaseConsolidate
	PhaseSimulate
)

var phaseNames = [...]string{"media", "create", "destinations", "consolidate", "simulate"}

func (p LoadPhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// LoadState is the progress of an incremental level construction.
type LoadState struct {
	Step int
	Max  int
	Done bool

	initials int
	needed   []uint16 // colors needed, per base object
	loaded   []uint16 // colors queued, per base object
}

// Phase returns the phase of the next step and the step's index within it.
func (ls *LoadState) Phase() (LoadPhase, int) {
	n := ls.initials
	switch {
	case ls.Step < n:
		return PhaseMedia, ls.Step
	case ls.Step < 2*n:
		return PhaseCreate, ls.Step - n
	case ls.Step < 3*n:
		return PhaseDestinations, ls.Step - 2*n
	case ls.Step == 3*n:
		return PhaseConsolidate, 0
	}
	return PhaseSimulate, ls.Step - 3*n - 1
}

// StartConstructLevel resets all per-level state, creates the level's
// admirals and returns the load state to drive ConstructLevel with.
func (s *Sim) StartConstructLevel(level *world.Level) *LoadState {
	s.Objects.Reset()
	s.actions = s.actions[:0]
	s.Labels.Reset()
	s.Messages.Reset()
	s.Media.Reset()
	s.Admirals = s.Admirals[:0]
	s.initials = s.initials[:0]

	s.Level = level
	s.Conditions = level.CloneConditions()
	s.Time = 0
	s.StartTime = -int64(level.StartTime) * TicksPerSecond
	s.KeyMask = 0
	s.Zoom = ZoomFoe
	s.Ship = None()
	s.PlayerAdmiral = NoAdmiral
	s.GameOver = false
	s.GameOverAt = 0
	s.Victor = NoAdmiral
	s.NextLevel = -1
	s.VictoryText = ""

	if level.Angle < 0 {
		s.Angle = s.Rand.Intn(world.RotPos)
	} else {
		s.Angle = level.Angle
	}

	for i, p := range level.Players {
		a := Admiral{
			Type:         p.Type,
			Race:         p.Race,
			Color:        p.Color,
			Name:         p.Name,
			EarningPower: p.EarningPower,
			Active:       true,
		}
		if a.Color == Gray {
			a.Color = s.Catalog.RaceColor(p.Race)
		}
		a.Cash += StartingCash
		s.Admirals = append(s.Admirals, a)
		if p.Type == world.SingleHumanPlayer {
			s.PlayerAdmiral = i
		}
	}

	if s.Player != nil {
		s.Player.Reset()
	}

	n := len(level.Initials)
	logger.Log.WithFields(logrus.Fields{
		"level":    level.Name,
		"initials": n,
		"angle":    s.Angle,
	}).Debug("constructing level")
	return &LoadState{
		Max:      3*n + 1 + level.StartTime,
		initials: n,
		needed:   make([]uint16, len(s.Catalog.Objects)),
		loaded:   make([]uint16, len(s.Catalog.Objects)),
	}
}

// ConstructLevel does one unit of construction work and advances the step.
// It must be called until Done.
func (s *Sim) ConstructLevel(state *LoadState) error {
	if state.Done {
		return nil
	}
	allColors := s.activeColors()

	if state.Step == 0 {
		if err := s.loadBlessedObjects(allColors, state); err != nil {
			return err
		}
	}

	phase, i := state.Phase()
	switch phase {
	case PhaseMedia:
		s.loadInitial(i, allColors, state)
	case PhaseCreate:
		if i == 0 {
			s.loadConditions(allColors, state)
		}
		s.createInitial(i)
	case PhaseDestinations:
		s.setInitialDestination(i)
	case PhaseConsolidate:
		if state.initials == 0 {
			s.loadConditions(allColors, state)
		}
		s.assignFlagships()
		s.RecalcAllAdmiralBuildData()
		s.Messages.Clear()
		s.Time = s.StartTime
	case PhaseSimulate:
		s.RunGame1s()
	}

	state.Step++
	if state.Step == state.Max {
		state.Done = true
		logger.Log.WithFields(logrus.Fields{
			"sprites": len(s.Media.Sprites()),
			"sounds":  len(s.Media.Sounds()),
			"objects": s.Objects.Len(),
		}).Info("level constructed")
	}
	return nil
}

// createInitial spawns initial i at its rotated location.
func (s *Sim) createInitial(i int) {
	in := &s.Level.Initials[i]
	at := world.RotateCoords(in.Location, s.Angle)
	if in.DistanceRange > 0 {
		at.H += int32(s.randn(int(in.DistanceRange))) - in.DistanceRange/2
		at.V += int32(s.randn(int(in.DistanceRange))) - in.DistanceRange/2
	}
	dir := world.AddAngle(in.RotationMin+s.randn(in.RotationRange), s.Angle)

	h := s.createObject(in.Base, in.Owner, at, dir, None())
	s.initials = append(s.initials, h)
	obj := s.Objects.Get(h)
	if obj == nil {
		return
	}
	obj.Earning = in.Earning
	obj.CanBuild = in.CanBuild
	if in.SpriteOverride >= 0 {
		obj.Sprite = in.SpriteOverride
	}
	if in.Name != "" {
		obj.Name = in.Name
	}
	if in.Flagship {
		s.makeFlagship(in.Owner, h)
	}
}

// setInitialDestination wires initial i to the object its destination
// initial spawned.
func (s *Sim) setInitialDestination(i int) {
	in := &s.Level.Initials[i]
	if in.InitialDestination < 0 {
		return
	}
	s.SetObjectDestination(s.Initial(i), s.Initial(in.InitialDestination))
}

func (s *Sim) makeFlagship(admiral int, h Handle) {
	a := s.admiral(admiral)
	obj := s.Objects.Get(h)
	if a == nil || obj == nil || !a.Flagship.IsNone() {
		return
	}
	a.Flagship, a.Control = h, h
	obj.Attributes |= world.IsPlayerShip
	if admiral == s.PlayerAdmiral {
		obj.Attributes |= world.IsHumanControlled
		s.Ship = h
	}
}

// assignFlagships gives every admiral without one its first ship.
func (s *Sim) assignFlagships() {
	for i := range s.Admirals {
		if !s.Admirals[i].Flagship.IsNone() {
			continue
		}
		for _, h := range s.admiralShips(i, None()) {
			if obj := s.Objects.Get(h); obj.Attributes&world.CanThink != 0 &&
				obj.Attributes&world.StaticDestination == 0 {
				s.makeFlagship(i, h)
				break
			}
		}
	}
}

// DeclareWinner ends the level. With no winner the game is over at once;
// otherwise the first admiral declared wins and play ends three seconds
// later.
func (s *Sim) DeclareWinner(admiral, nextLevel int, text string) {
	if s.admiral(admiral) == nil {
		s.NextLevel = nextLevel
		s.VictoryText = text
		s.GameOver = true
		s.GameOverAt = s.Time
		return
	}
	if s.Victor != NoAdmiral {
		return
	}
	s.Victor = admiral
	s.VictoryText = text
	s.NextLevel = nextLevel
	if !s.GameOver {
		s.GameOver = true
		s.GameOverAt = s.Time + gameOverDelay
	}
}

// LevelFullScaleAndCorner computes the briefing view that fits every
// visible initial object of level into bounds.
func LevelFullScaleAndCorner(level *world.Level, angle int, bounds image.Rectangle) (world.Point, int32) {
	return world.FullScaleAndCorner(level, angle, bounds)
}

// BriefingView is the view of the star map that shows the whole level.
func BriefingView(level *world.Level, angle int, bounds image.Rectangle) View {
	corner, scale := LevelFullScaleAndCorner(level, angle, bounds)
	return View{
		Center: world.Point{
			H: corner.H + int32(int64(bounds.Dx())*world.ScaleScale/int64(scale)/2),
			V: corner.V + int32(int64(bounds.Dy())*world.ScaleScale/int64(scale)/2),
		},
		Scale:  scale,
		Bounds: bounds,
	}
}
