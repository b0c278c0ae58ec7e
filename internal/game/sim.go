package game

import (
	"math/rand"

	"github.com/spacehole-rogue/spacehole_tactical/internal/media"
	"github.com/spacehole-rogue/spacehole_tactical/internal/sound"
	"github.com/spacehole-rogue/spacehole_tactical/internal/world"
)

// Tick intervals (at 60 TPS)
const (
	TicksPerSecond        = 60
	MajorTick             = 3   // simulation step
	ConditionTick         = 90  // level conditions are checked this often
	computerBuildInterval = 600 // computer admirals shop every 10 sec
	weaponCooldown        = 30
	gameOverDelay         = 3 * TicksPerSecond
)

const (
	collisionRadius = 32
	arrivalRadius   = 96
	warpFactor      = 4
	warpWarmup      = 60
	maxActionDepth  = 16
)

// commandKeys are set by the command interpreter and consumed by the
// simulation on its next step.
const commandKeys = GiveCommandKey | AdoptTargetKey | AutoPilotKey

type queuedAction struct {
	action  world.Action
	subject Handle
	direct  Handle
	at      int64
}

// Sim is the game simulation. It owns all per-level gameplay state.
type Sim struct {
	Catalog  *world.Catalog
	Level    *world.Level
	Objects  *Objects
	Admirals []Admiral
	Messages *Messages
	Labels   Labels
	Media    *media.Registry
	Sound    sound.Cues
	Rand     *rand.Rand

	// Time is the level clock in ticks. It is negative during a head start.
	Time      int64
	StartTime int64
	Angle     int
	Zoom      Zoom
	KeyMask   uint32

	Conditions []world.Condition

	// PlayerAdmiral is the local human admiral, or NoAdmiral.
	PlayerAdmiral int
	// Ship is the local player's flagship.
	Ship   Handle
	Player *PlayerShip

	GameOver    bool
	GameOverAt  int64
	Victor      int
	NextLevel   int
	VictoryText string

	initials    []Handle
	actions     []queuedAction
	actionDepth int
}

// NewSim creates a simulation over a scenario catalog.
func NewSim(cat *world.Catalog, seed int64) *Sim {
	return &Sim{
		Catalog:       cat,
		Objects:       NewObjects(),
		Messages:      NewMessages(50),
		Media:         media.NewRegistry(),
		Sound:         sound.Silent{},
		Rand:          rand.New(rand.NewSource(seed)),
		PlayerAdmiral: NoAdmiral,
		Victor:        NoAdmiral,
		Zoom:          ZoomFoe,
	}
}

// Finished reports whether the level is over and its grace period passed.
func (s *Sim) Finished() bool {
	return s.GameOver && s.Time >= s.GameOverAt
}

// Initial returns the object spawned for initial i, or None.
func (s *Sim) Initial(i int) Handle {
	if i < 0 || i >= len(s.initials) {
		return None()
	}
	return s.initials[i]
}

func (s *Sim) randn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.Rand.Intn(n)
}

func (s *Sim) base(obj *SpaceObject) *world.BaseObject {
	return s.Catalog.Get(obj.Base)
}

// MajorTick advances the simulation by one step of MajorTick ticks.
func (s *Sim) MajorTick() {
	s.Time += MajorTick
	s.moveObjects()
	s.nonplayerThink()
	s.admiralThink()
	s.executeActionQueue()
	s.collide()
	if (s.Time-s.StartTime)%ConditionTick == 0 {
		s.checkConditions()
	}
	s.cull()
}

// RunGame1s steps the simulation up to the next whole second.
func (s *Sim) RunGame1s() {
	for {
		s.MajorTick()
		if s.Time%TicksPerSecond == 0 {
			return
		}
	}
}

func (s *Sim) moveObjects() {
	s.Objects.Moving(func(_ *SpaceObject, m *Motion) {
		m.Location.H += m.VelH * MajorTick
		m.Location.V += m.VelV * MajorTick
	})
}

// createObject spawns base and runs its create actions.
func (s *Sim) createObject(base, owner int, at world.Point, direction int, dest Handle) Handle {
	b := s.Catalog.Get(base)
	if b == nil {
		return None()
	}
	obj := SpaceObject{
		Base:       base,
		Owner:      owner,
		Attributes: b.Attributes,
		Name:       b.Name,
		Sprite:     b.PixResID,
		Health:     b.Health,
		Direction:  world.AddAngle(direction, 0),
	}
	if b.Lifetime > 0 {
		obj.ExpireAt = s.Time + int64(b.Lifetime)
	}
	h := s.Objects.Spawn(obj, Motion{Location: at})
	if !dest.IsNone() {
		s.SetObjectDestination(h, dest)
	}
	s.runActions(b.Create, h, None())
	return h
}

// SetObjectDestination points an object at dest. None clears it.
func (s *Sim) SetObjectDestination(h, dest Handle) {
	obj := s.Objects.Get(h)
	if obj == nil {
		return
	}
	obj.Dest = None()
	obj.DestID = 0
	obj.Arrived = false
	if d := s.Objects.Get(dest); d != nil && d.Active && dest != h {
		obj.Dest = dest
		obj.DestID = d.ID
	}
}

func (s *Sim) destination(obj *SpaceObject) *Motion {
	d := s.Objects.Get(obj.Dest)
	if d == nil || !d.Active || d.ID != obj.DestID {
		return nil
	}
	return s.Objects.Motion(obj.Dest)
}

func (s *Sim) nonplayerThink() {
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if obj == nil || !obj.Active || obj.Attributes&world.CanThink == 0 {
			continue
		}
		if obj.Attributes&world.IsPlayerShip != 0 {
			s.thinkPlayerShip(h)
			continue
		}
		s.thinkToward(h)
	}
}

// thinkToward flies an object at its destination and fires its arrive
// actions once on arrival.
func (s *Sim) thinkToward(h Handle) {
	obj, m := s.Objects.Get(h), s.Objects.Motion(h)
	dm := s.destination(obj)
	if dm == nil {
		s.brake(m)
		return
	}
	if wideDistance(m.Location, dm.Location) <= arrivalRadius*arrivalRadius {
		s.brake(m)
		if !obj.Arrived {
			obj.Arrived = true
			dest := obj.Dest
			s.runActions(s.base(obj).Arrive, h, dest)
		}
		return
	}
	dx := float64(int64(dm.Location.H) - int64(m.Location.H))
	dy := float64(int64(dm.Location.V) - int64(m.Location.V))
	want := world.AddAngle(world.AngleFromVector(dx, dy), 180)
	s.turn(obj, int32(world.AngleDifference(want, obj.Direction)))
	s.thrust(obj, m, 1)
}

func (s *Sim) thinkPlayerShip(h Handle) {
	obj := s.Objects.Get(h)
	keys := obj.KeysDown
	obj.KeysDown &^= commandKeys

	if keys&GiveCommandKey != 0 {
		s.PlayerShipGiveCommand(obj.Owner)
	}
	if keys&AutoPilotKey != 0 {
		s.TogglePlayerAutoPilot(h)
	}
	if keys&AdoptTargetKey != 0 {
		if a := s.admiral(obj.Owner); a != nil {
			s.SetObjectDestination(h, a.Target)
		}
	}

	obj = s.Objects.Get(h)
	if obj.Attributes&world.OnAutoPilot != 0 {
		s.thinkToward(h)
	} else {
		m := s.Objects.Motion(h)
		switch {
		case keys&LeftKey != 0:
			s.turn(obj, -s.base(obj).TurnRate)
		case keys&RightKey != 0:
			s.turn(obj, s.base(obj).TurnRate)
		}
		if keys&WarpKey != 0 {
			obj.WarpCharge += MajorTick
		} else {
			obj.WarpCharge = 0
		}
		obj.Warping = obj.WarpCharge >= warpWarmup
		switch {
		case obj.Warping:
			s.thrust(obj, m, warpFactor)
		case keys&UpKey != 0:
			s.thrust(obj, m, 1)
		case keys&DownKey != 0:
			s.brake(m)
		}
	}

	for slot, bit := range [3]uint32{PulseKey, BeamKey, SpecialKey} {
		if keys&bit != 0 {
			s.fire(h, slot)
		}
	}
}

func (s *Sim) turn(obj *SpaceObject, by int32) {
	rate := s.base(obj).TurnRate
	by = max(-rate, min(rate, by))
	obj.Direction = world.AddAngle(obj.Direction, int(by))
}

func (s *Sim) thrust(obj *SpaceObject, m *Motion, factor int32) {
	cos, sin := world.RotPoint(obj.Direction)
	speed := s.base(obj).MaxVelocity * factor
	m.VelH = (cos * speed) >> 8
	m.VelV = (sin * speed) >> 8
}

func (s *Sim) brake(m *Motion) {
	m.VelH, m.VelV = 0, 0
}

// fire launches the weapon in slot (pulse, beam, special) if it is ready.
func (s *Sim) fire(h Handle, slot int) {
	obj := s.Objects.Get(h)
	w := s.base(obj).Weapons()[slot]
	if !w.Valid() || s.Time < obj.NextFire[slot] {
		return
	}
	obj.NextFire[slot] = s.Time + weaponCooldown
	m := *s.Objects.Motion(h)
	owner, dir := obj.Owner, obj.Direction

	shot := s.createObject(w.Base, owner, m.Location, dir, None())
	so, sm := s.Objects.Get(shot), s.Objects.Motion(shot)
	if so == nil {
		return
	}
	s.thrust(so, sm, 1)
	sm.VelH += m.VelH
	sm.VelV += m.VelV
}

// runActions executes immediate actions now and queues delayed ones.
func (s *Sim) runActions(list []world.Action, subject, direct Handle) {
	for _, a := range list {
		q := queuedAction{action: a, subject: subject, direct: direct, at: s.Time + int64(a.Delay)}
		if a.Delay > 0 || s.actionDepth >= maxActionDepth {
			s.actions = append(s.actions, q)
			continue
		}
		s.actionDepth++
		s.execute(q)
		s.actionDepth--
	}
}

// executeActionQueue runs the delayed actions that are due. Actions queued
// while it runs wait for the next step.
func (s *Sim) executeActionQueue() {
	pending := s.actions
	s.actions = nil
	var kept []queuedAction
	for _, q := range pending {
		if q.at > s.Time {
			kept = append(kept, q)
			continue
		}
		s.execute(q)
	}
	s.actions = append(kept, s.actions...)
}

func (s *Sim) owner(h Handle) int {
	if obj := s.Objects.Get(h); obj != nil {
		return obj.Owner
	}
	return NoAdmiral
}

func (s *Sim) execute(q queuedAction) {
	a := q.action
	object := q.direct
	if a.Reflexive {
		object = q.subject
	}
	player := a.Player
	if a.Relative {
		player = s.owner(q.subject)
	}

	switch a.Verb {
	case world.CreateObject, world.CreateObjectSetDest:
		subject := s.Objects.Get(q.subject)
		sm := s.Objects.Motion(q.subject)
		if subject == nil {
			return
		}
		from, owner, dir, dest := *sm, subject.Owner, subject.Direction, subject.Dest
		count := a.CountMin + s.randn(a.CountRange)
		for range count {
			at := from.Location
			if a.Distance > 0 {
				at.H += int32(s.randn(int(a.Distance)*2+1)) - a.Distance
				at.V += int32(s.randn(int(a.Distance)*2+1)) - a.Distance
			}
			d := s.randn(world.RotPos)
			if a.RelativeDirection {
				d = dir
			}
			target := None()
			if a.Verb == world.CreateObjectSetDest {
				target = dest
			}
			h := s.createObject(a.Base, owner, at, d, target)
			if m := s.Objects.Motion(h); m != nil && a.RelativeVelocity {
				m.VelH, m.VelV = from.VelH, from.VelV
			}
		}

	case world.PlaySound:
		s.Sound.Play(a.SoundMin + s.randn(a.SoundRange+1))

	case world.AlterBaseType:
		obj := s.Objects.Get(object)
		b := s.Catalog.Get(a.Base)
		if obj == nil || b == nil {
			return
		}
		keep := obj.Attributes & (world.IsPlayerShip | world.IsHumanControlled | world.OnAutoPilot)
		obj.Base = a.Base
		obj.Attributes = b.Attributes | keep
		obj.Name = b.Name
		obj.Sprite = b.PixResID
		obj.Health = b.Health

	case world.AlterOwner:
		obj := s.Objects.Get(object)
		if obj == nil {
			return
		}
		if a.Relative && object == q.subject {
			player = s.owner(q.direct)
		}
		obj.Owner = player
		s.RecalcAllAdmiralBuildData()

	case world.DeclareWinner:
		s.DeclareWinner(player, a.NextLevel, a.Text)

	case world.DisplayMessage:
		s.Messages.StartPages(a.Pages)

	case world.ChangeScore:
		if adm := s.admiral(player); adm != nil && a.Counter >= 0 && a.Counter < ScoreCounters {
			adm.Score[a.Counter] += a.Amount
		}
	}
}

func (s *Sim) collide() {
	all := s.Objects.All()
	for _, ha := range all {
		a := s.Objects.Get(ha)
		if a == nil || !a.Active || a.Attributes&world.CanCollide == 0 {
			continue
		}
		for _, hb := range all {
			a = s.Objects.Get(ha)
			b := s.Objects.Get(hb)
			if hb == ha || b == nil || !b.Active || !a.Active ||
				b.Attributes&world.CanBeHit == 0 || b.Owner == a.Owner {
				continue
			}
			if wideDistance(s.Objects.Motion(ha).Location, s.Objects.Motion(hb).Location) >
				collisionRadius*collisionRadius {
				continue
			}
			base := s.base(a)
			b.Health -= base.Damage
			if a.Attributes&world.CanBeHit == 0 {
				a.Active = false
			}
			dead := b.Health <= 0
			s.runActions(base.Collide, ha, hb)
			if dead {
				s.destroy(hb)
			}
		}
	}
}

// destroy deactivates an object and runs its destroy actions.
func (s *Sim) destroy(h Handle) {
	obj := s.Objects.Get(h)
	if obj == nil || !obj.Active {
		return
	}
	obj.Active = false
	player := obj.Attributes&world.IsPlayerShip != 0
	s.runActions(s.base(obj).Destroy, h, None())
	if player {
		s.PlayerShipBodyExpire(h)
	}
}

func (s *Sim) expireObjects() {
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if obj == nil || !obj.Active || obj.ExpireAt == 0 || s.Time < obj.ExpireAt {
			continue
		}
		obj.Active = false
		player := obj.Attributes&world.IsPlayerShip != 0
		s.runActions(s.base(obj).Expire, h, None())
		if player {
			s.PlayerShipBodyExpire(h)
		}
	}
}

func (s *Sim) cull() {
	s.expireObjects()
	s.Objects.Cull()
}

func (s *Sim) checkConditions() {
	for i := range s.Conditions {
		c := &s.Conditions[i]
		if !c.Active() || !s.conditionTrue(c) {
			continue
		}
		c.SetTrueYet(true)
		s.runActions(c.Actions, s.Initial(c.Subject), s.Initial(c.Direct))
	}
}

func (s *Sim) score(admiral, counter int) (int, bool) {
	a := s.admiral(admiral)
	if a == nil || counter < 0 || counter >= ScoreCounters {
		return 0, false
	}
	return a.Score[counter], true
}

func (s *Sim) conditionTrue(c *world.Condition) bool {
	subject := s.Initial(c.Subject)
	switch c.Kind {
	case world.TimeCondition:
		return s.Time >= int64(c.Ticks)
	case world.DestructionCondition:
		return !s.Objects.Live(subject)
	case world.NoShipsLeftCondition:
		return s.shipCount(c.Player) == 0
	case world.CounterCondition:
		v, ok := s.score(c.Player, c.Counter)
		return ok && v == c.Amount
	case world.CounterGreaterCondition:
		v, ok := s.score(c.Player, c.Counter)
		return ok && v > c.Amount
	case world.CounterNotCondition:
		v, ok := s.score(c.Player, c.Counter)
		return ok && v != c.Amount
	case world.OwnerCondition:
		obj := s.Objects.Get(subject)
		return obj != nil && obj.Active && obj.Owner == c.Player
	case world.HalfHealthCondition:
		obj := s.Objects.Get(subject)
		return obj == nil || !obj.Active || obj.Health <= s.base(obj).Health/2
	case world.ProximityCondition:
		a, b := s.Objects.Motion(subject), s.Objects.Motion(s.Initial(c.Direct))
		if !s.Objects.Live(subject) || !s.Objects.Live(s.Initial(c.Direct)) {
			return false
		}
		return wideDistance(a.Location, b.Location) <= uint64(c.Distance)*uint64(c.Distance)
	case world.ZoomLevelCondition:
		return int(s.Zoom) == c.Value
	case world.AutopilotCondition, world.NotAutopilotCondition:
		obj := s.Objects.Get(s.Ship)
		on := obj != nil && obj.Attributes&world.OnAutoPilot != 0
		return on == (c.Kind == world.AutopilotCondition)
	}
	return false
}

// admiralShips lists an admiral's active ships that can take orders.
func (s *Sim) admiralShips(admiral int, except Handle) []Handle {
	var out []Handle
	for _, h := range s.Objects.All() {
		obj := s.Objects.Get(h)
		if h != except && obj != nil && obj.Active && obj.Owner == admiral &&
			obj.Attributes&world.CanAcceptDestination != 0 {
			out = append(out, h)
		}
	}
	return out
}
