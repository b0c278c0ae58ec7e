package game

import (
	"slices"

	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// NoAdmiral is the admiral index meaning "nobody".
const NoAdmiral = -1

// StartingCash is paid to every admiral when a level starts.
const StartingCash = 5000

// ScoreCounters is the number of per-admiral score counters.
const ScoreCounters = 3

// Admiral is a faction controller, human or computer.
type Admiral struct {
	Type         world.PlayerType
	Race         int
	Color        uint8
	Name         string
	EarningPower float64
	Active       bool
	Cash         float64
	Score        [ScoreCounters]int

	Flagship Handle
	Control  Handle
	Target   Handle

	// Builds lists the base objects this admiral can buy.
	Builds []int
}

func (s *Sim) admiral(i int) *Admiral {
	if i < 0 || i >= len(s.Admirals) {
		return nil
	}
	return &s.Admirals[i]
}

// activeColors returns the gray bit plus the color of every active admiral.
func (s *Sim) activeColors() uint16 {
	colors := uint16(1)
	for _, a := range s.Admirals {
		if a.Active {
			colors |= 1 << a.Color
		}
	}
	return colors
}

// RecalcAllAdmiralBuildData rebuilds every admiral's build list from the
// destinations it owns.
func (s *Sim) RecalcAllAdmiralBuildData() {
	for i := range s.Admirals {
		s.Admirals[i].Builds = s.Admirals[i].Builds[:0]
	}
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if obj == nil || !obj.Active || obj.Attributes&world.CanAcceptBuild == 0 {
			continue
		}
		a := s.admiral(obj.Owner)
		if a == nil {
			continue
		}
		for _, class := range obj.CanBuild {
			base := s.Catalog.ByClassRace(class, a.Race)
			if base >= 0 && !slices.Contains(a.Builds, base) {
				a.Builds = append(a.Builds, base)
			}
		}
	}
}

// shipCount counts the active ships an admiral owns.
func (s *Sim) shipCount(admiral int) int {
	n := 0
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if obj != nil && obj.Active && obj.Owner == admiral &&
			obj.Attributes&world.CanAcceptDestination != 0 {
			n++
		}
	}
	return n
}

// buildSite returns a destination owned by admiral that accepts builds.
// The admiral's control object is preferred.
func (s *Sim) buildSite(admiral int) Handle {
	a := s.admiral(admiral)
	if a == nil {
		return None()
	}
	accepts := func(h Handle) bool {
		obj := s.Objects.Get(h)
		return obj != nil && obj.Active && obj.Owner == admiral &&
			obj.Attributes&world.CanAcceptBuild != 0
	}
	if accepts(a.Control) {
		return a.Control
	}
	for _, h := range s.Objects.All() {
		if accepts(h) {
			return h
		}
	}
	return None()
}

// Build buys base for admiral at its build site. It reports whether the
// ship was built.
func (s *Sim) Build(admiral, base int) bool {
	a := s.admiral(admiral)
	b := s.Catalog.Get(base)
	if a == nil || b == nil || !slices.Contains(a.Builds, base) || a.Cash < float64(b.Price) {
		return false
	}
	site := s.buildSite(admiral)
	m := s.Objects.Motion(site)
	if m == nil {
		return false
	}
	a.Cash -= float64(b.Price)
	s.createObject(base, admiral, m.Location, 0, None())
	return true
}

// admiralThink pays earnings and lets computer admirals buy ships.
func (s *Sim) admiralThink() {
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if obj == nil || !obj.Active || obj.Earning == 0 {
			continue
		}
		if a := s.admiral(obj.Owner); a != nil && a.Active {
			a.Cash += obj.Earning * a.EarningPower * MajorTick
		}
	}
	if s.Time%computerBuildInterval != 0 {
		return
	}
	for i := range s.Admirals {
		a := &s.Admirals[i]
		if !a.Active || a.Type != world.ComputerPlayer {
			continue
		}
		best, price := -1, 0
		for _, base := range a.Builds {
			if b := s.Catalog.Get(base); b.Price <= int(a.Cash) && b.Price >= price {
				best, price = base, b.Price
			}
		}
		if best >= 0 {
			s.Build(i, best)
		}
	}
}
