package game

import "math"

// Input is the player's intent for one tick: a world-space pointer target
// and whether boost is held.
type Input struct {
	TargetX, TargetY float64
	Boost            bool
}

// Step advances the simulation by one tick. Order matters: the player
// moves first, bots react, the camera and visibility window follow, out of
// scope chunks are evicted, new chunks are filled, and only then are
// collisions resolved, so the resolver sees this tick's entities and never
// a chunk that is about to be dropped.
func Step(s *State, in Input) {
	if s.Phase == PhasePaused || s.Phase == PhaseGameOver {
		return
	}
	s.Tick++
	s.Events = s.Events[:0]

	p := s.Player
	if s.Phase == PhasePlaying {
		updateEnergy(p, in.Boost)
		movePlayer(p, in)
	} else {
		p.Boosting = false
	}

	s.Visible = VisibleChunks(p.X, p.Y)
	s.updateBots()
	s.Camera.Follow(p)
	s.EvictOutOfScope(NewChunkSet(s.Visible))
	s.maintain()

	if s.Phase == PhasePlaying {
		s.resolveCollisions()
	}
}

// updateEnergy drains while boosting with energy left and regenerates
// otherwise; stamina slows the drain and speeds the regen.
func updateEnergy(p *Player, boost bool) {
	stamina := p.Multiplier(UpgradeStamina)
	p.Boosting = boost && p.Energy > 0
	if p.Boosting {
		p.Energy = math.Max(0, p.Energy-EnergyDrainPerTick/stamina)
		return
	}
	p.Energy = math.Min(p.MaxEnergy, p.Energy+EnergyRegenPerTick*stamina)
}

func movePlayer(p *Player, in Input) {
	dx, dy := in.TargetX-p.X, in.TargetY-p.Y
	d := math.Hypot(dx, dy)
	if d <= p.Radius/PlayerDeadbandDiv {
		return
	}
	speed := p.currentSpeed(p.Boosting)
	p.X += dx / d * speed
	p.Y += dy / d * speed
}
