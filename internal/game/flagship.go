package game

import (
	"github.com/sirupsen/logrus"

	"github.com/spacehole-rogue/spacehole_tactical/internal/logger"
	"github.com/spacehole-rogue/spacehole_tactical/internal/render"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// ChangePlayerShipNumber makes newShip the flagship of admiral. The admiral
// must still have a flagship; losing track of it is a programming error.
func (s *Sim) ChangePlayerShipNumber(admiral int, newShip Handle) {
	a := s.admiral(admiral)
	var flagship *SpaceObject
	if a != nil {
		flagship = s.Objects.Get(a.Flagship)
	}
	next := s.Objects.Get(newShip)
	if flagship == nil || next == nil {
		logger.Log.WithFields(logrus.Fields{
			"admiral":  admiral,
			"new_ship": newShip.String(),
		}).Panic("ship change without a flagship")
	}

	if admiral == s.PlayerAdmiral {
		flagship.Attributes &^= world.IsPlayerShip | world.IsHumanControlled
		s.Ship = newShip
		next.Attributes |= world.IsPlayerShip | world.IsHumanControlled
		if p := s.Player; p != nil {
			if newShip == a.Control {
				s.Labels.SetAge(p.controlLabel, s.Time)
			}
			if newShip == a.Target {
				s.Labels.SetAge(p.targetLabel, s.Time)
			}
		}
	} else {
		flagship.Attributes &^= world.IsPlayerShip
		next.Attributes |= world.IsPlayerShip
	}
	a.Flagship = newShip
}

// TogglePlayerAutoPilot switches a flagship between manual control and
// flying to its admiral's target.
func (s *Sim) TogglePlayerAutoPilot(h Handle) {
	obj := s.Objects.Get(h)
	if obj == nil {
		return
	}
	local := obj.Owner == s.PlayerAdmiral && obj.Attributes&world.IsPlayerShip != 0
	if obj.Attributes&world.OnAutoPilot != 0 {
		obj.Attributes &^= world.OnAutoPilot
		if local {
			s.Messages.SetStatus("Autopilot off", render.HueGreen, s.Time)
		}
		return
	}
	if a := s.admiral(obj.Owner); a != nil {
		s.SetObjectDestination(h, a.Target)
	}
	obj = s.Objects.Get(h)
	obj.Attributes |= world.OnAutoPilot
	if local {
		s.Messages.SetStatus("Autopilot on", render.HueGreen, s.Time)
	}
}

// PlayerShipGiveCommand sends the admiral's control object to its target.
func (s *Sim) PlayerShipGiveCommand(admiral int) {
	a := s.admiral(admiral)
	if a == nil || s.Objects.Get(a.Control) == nil {
		return
	}
	s.SetObjectDestination(a.Control, a.Target)
	if admiral == s.PlayerAdmiral {
		s.Sound.Order()
	}
}

// canFlagship reports whether h may take over as flagship for owner.
func (s *Sim) canFlagship(h Handle, owner int) bool {
	obj := s.Objects.Get(h)
	return obj != nil && obj.Active &&
		obj.Owner == owner &&
		obj.Attributes&world.CanThink != 0 &&
		obj.Attributes&world.StaticDestination == 0 &&
		obj.Attributes&world.CanAcceptDestination != 0
}

// PlayerShipBodyExpire hands a destroyed flagship's role to another ship:
// the admiral's control object if it qualifies, otherwise the first
// qualifying ship. With nothing left the game ends.
func (s *Sim) PlayerShipBodyExpire(h Handle) {
	obj := s.Objects.Get(h)
	if obj == nil {
		return
	}
	owner := obj.Owner
	a := s.admiral(owner)

	next := None()
	if a != nil {
		if a.Control != h && s.canFlagship(a.Control, owner) {
			next = a.Control
		} else {
			for _, c := range s.Objects.All() {
				if c != h && s.canFlagship(c, owner) {
					next = c
					break
				}
			}
		}
	}
	if !next.IsNone() {
		s.ChangePlayerShipNumber(owner, next)
		return
	}

	if !s.GameOver {
		s.GameOver = true
		s.GameOverAt = s.Time + gameOverDelay
	}
	switch {
	case s.Level == nil:
		s.VictoryText = ""
	case s.Level.Type == world.LevelSolo:
		s.VictoryText = s.Level.SoloNoShips
	case s.Level.Type == world.LevelNet && owner == s.PlayerAdmiral:
		s.VictoryText = s.Level.NetOwnNoShips
	case s.Level.Type == world.LevelNet:
		s.VictoryText = s.Level.NetFoeNoShips
	default:
		s.VictoryText = ""
	}
	if a != nil {
		a.Flagship = None()
	}
	if h == s.Ship {
		s.Ship = None()
	}
}
