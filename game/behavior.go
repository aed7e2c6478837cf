package game

import "math"

// sighting is one perceived entity relative to the observing bot.
type sighting struct {
	x, y, r float64
	dist    float64
}

type perception struct {
	threats []sighting
	prey    []sighting
	food    []sighting
}

// perceive gathers everything within the bot's detection range. Other
// circles are sorted by the dominance margin; peers inside the margin are
// neither threat nor prey.
func (s *State) perceive(b *Bot) perception {
	var p perception
	reach := DetectionRadii * b.R

	classify := func(x, y, r float64) {
		d := math.Hypot(x-b.X, y-b.Y)
		if d >= reach {
			return
		}
		switch {
		case Dominates(r, b.R):
			p.threats = append(p.threats, sighting{x, y, r, d})
		case Dominates(b.R, r):
			p.prey = append(p.prey, sighting{x, y, r, d})
		}
	}

	pl := s.Player
	classify(pl.X, pl.Y, pl.Radius)
	for _, k := range s.Visible {
		ch := s.Chunks[k]
		if ch == nil {
			continue
		}
		for _, o := range ch.Bots {
			if o != b {
				classify(o.X, o.Y, o.R)
			}
		}
		for _, f := range ch.Food {
			if d := math.Hypot(f.X-b.X, f.Y-b.Y); d < reach {
				p.food = append(p.food, sighting{f.X, f.Y, f.R, d})
			}
		}
	}
	return p
}

// nearest returns the closest sighting strictly inside within.
func nearest(ss []sighting, within float64) (sighting, bool) {
	best, found := sighting{}, false
	for _, t := range ss {
		if t.dist < within && (!found || t.dist < best.dist) {
			best, found = t, true
		}
	}
	return best, found
}

// Decide picks b's next behavior. home is the chunk b is stored under and
// bounds its flee and patrol targets. First match wins: flee, hunt, forage,
// patrol, wander.
func (s *State) Decide(b *Bot, home ChunkKey) Behavior {
	p := s.perceive(b)
	inner := BoundsOf(home).Inset(ChunkInset)

	if t, ok := nearest(p.threats, AlarmRadii*b.R); ok {
		dx, dy := b.X-t.x, b.Y-t.y
		d := t.dist
		if d == 0 {
			dx, dy, d = 1, 0, 1
		}
		tx, ty := inner.Clamp(b.X+dx/d*FleeRadii*b.R, b.Y+dy/d*FleeRadii*b.R)
		return Behavior{State: Fleeing, TargetX: tx, TargetY: ty}
	}

	if q, ok := nearest(p.prey, PursuitRadii*b.R); ok {
		return Behavior{State: Hunting, TargetX: q.x, TargetY: q.y}
	}

	if f, ok := safestFood(p); ok {
		return Behavior{State: Foraging, TargetX: f.x, TargetY: f.y}
	}

	return s.patrol(b, p.threats, home, inner)
}

// safestFood returns the closest food no threat is strictly closer to.
func safestFood(p perception) (sighting, bool) {
	best, found := sighting{}, false
	for _, f := range p.food {
		safe := true
		for _, t := range p.threats {
			if math.Hypot(t.x-f.x, t.y-f.y) < f.dist {
				safe = false
				break
			}
		}
		if safe && (!found || f.dist < best.dist) {
			best, found = f, true
		}
	}
	return best, found
}

// patrol samples a ring of candidate points and heads for the one farthest
// from known threats by inverse-distance weight.
func (s *State) patrol(b *Bot, threats []sighting, home ChunkKey, inner Bounds) Behavior {
	ring := PatrolRingRadii * b.R
	offset := s.Rand.Float64() * 2 * math.Pi

	best, found := Behavior{State: Patrolling}, false
	bestDanger := math.Inf(1)
	for i := 0; i < PatrolCandidates; i++ {
		a := offset + 2*math.Pi*float64(i)/PatrolCandidates
		cx, cy := b.X+math.Cos(a)*ring, b.Y+math.Sin(a)*ring
		if !inner.Contains(cx, cy) {
			continue
		}
		danger := 0.0
		for _, t := range threats {
			danger += 1 / math.Max(math.Hypot(t.x-cx, t.y-cy), 1)
		}
		if danger < bestDanger {
			best.TargetX, best.TargetY = cx, cy
			bestDanger, found = danger, true
		}
	}
	if found {
		return best
	}

	tx, ty := pointIn(s.Rand, BoundsOf(home))
	return Behavior{State: Wandering, TargetX: tx, TargetY: ty}
}

// advance moves b toward its target at its state-scaled speed.
func (b *Bot) advance() {
	dx, dy := b.Behavior.TargetX-b.X, b.Behavior.TargetY-b.Y
	d := math.Hypot(dx, dy)
	if d <= ArriveEpsilon {
		return
	}
	step := math.Min(b.Speed*b.Behavior.State.SpeedMult(), d)
	b.X += dx / d * step
	b.Y += dy / d * step
}

// updateBots is the behavior pass: re-evaluate, move, then graze.
func (s *State) updateBots() {
	for _, k := range s.Visible {
		ch := s.Chunks[k]
		if ch == nil {
			continue
		}
		for _, b := range ch.Bots {
			s.updateBot(b, k)
		}
	}
}

func (s *State) updateBot(b *Bot, home ChunkKey) {
	if s.Rand.Float64() < ReevaluateChance ||
		math.Hypot(b.Behavior.TargetX-b.X, b.Behavior.TargetY-b.Y) < ArrivalRadii*b.R {
		b.Behavior = s.Decide(b, home)
	}
	b.advance()
	s.graze(b)
}

// graze lets b swallow any food it overlaps; each meal is replaced
// somewhere in the window.
func (s *State) graze(b *Bot) {
	for _, k := range s.Visible {
		ch := s.Chunks[k]
		if ch == nil {
			continue
		}
		for i := len(ch.Food) - 1; i >= 0; i-- {
			f := ch.Food[i]
			if !Overlaps(b.X, b.Y, b.R, f.X, f.Y, f.R) {
				continue
			}
			b.R = Absorb(b.R, f.R, 1)
			ch.Food = removeFood(ch.Food, i)
			s.SpawnFood(s.RandomVisibleChunk())
		}
	}
}
