package game

import "math"

// Absorb returns the radius of the circle whose area is the area of a
// circle of radius r plus mult times the area of one of radius other.
func Absorb(r, other, mult float64) float64 {
	return math.Sqrt(r*r + mult*other*other)
}

// Dominates reports whether a circle of radius a may absorb one of radius b.
func Dominates(a, b float64) bool {
	return a > b*DominanceMargin
}

func Overlaps(ax, ay, ar, bx, by, br float64) bool {
	return math.Hypot(ax-bx, ay-by) < ar+br
}

// resolveCollisions runs the absorption pass over every visible chunk.
// It stops early once the player is defeated.
func (s *State) resolveCollisions() {
	for _, k := range s.Visible {
		ch := s.Chunks[k]
		if ch == nil {
			continue
		}
		s.playerEatsFood(ch)
		s.botsContest(ch)
		if s.playerMeetsBots(ch) {
			return
		}
	}
}

func (s *State) playerEatsFood(ch *Chunk) {
	p := s.Player
	for i := len(ch.Food) - 1; i >= 0; i-- {
		f := ch.Food[i]
		if !Overlaps(p.X, p.Y, p.Radius, f.X, f.Y, f.R) {
			continue
		}
		p.Radius = Absorb(p.Radius, f.R, p.Multiplier(UpgradeAbsorption))
		p.Score += int(math.Round(f.R * FoodScorePerR))
		ch.Food = removeFood(ch.Food, i)
		s.emit(Event{Kind: EventAteFood, X: f.X, Y: f.Y, R: f.R})
		s.SpawnFood(s.RandomVisibleChunk())
	}
}

// botsContest settles every overlapping pair of bots in the chunk once.
// Losers are marked and compacted afterwards so indices stay stable while
// a winner keeps growing through several meals.
func (s *State) botsContest(ch *Chunk) {
	bots := ch.Bots
	gone := make([]bool, len(bots))
	eaten := 0
	for i := 0; i < len(bots); i++ {
		if gone[i] {
			continue
		}
		a := bots[i]
		for j := i + 1; j < len(bots); j++ {
			if gone[j] {
				continue
			}
			b := bots[j]
			if !Overlaps(a.X, a.Y, a.R, b.X, b.Y, b.R) {
				continue
			}
			switch {
			case Dominates(a.R, b.R):
				a.R = Absorb(a.R, b.R, 1)
				gone[j] = true
				eaten++
				s.emit(Event{Kind: EventBotAteBot, X: a.X, Y: a.Y, R: a.R, BotID: b.ID})
			case Dominates(b.R, a.R):
				b.R = Absorb(b.R, a.R, 1)
				gone[i] = true
				eaten++
				s.emit(Event{Kind: EventBotAteBot, X: b.X, Y: b.Y, R: b.R, BotID: a.ID})
			}
			if gone[i] {
				break
			}
		}
	}
	if eaten == 0 {
		return
	}
	kept := bots[:0]
	for i, b := range bots {
		if !gone[i] {
			kept = append(kept, b)
		}
	}
	clear(bots[len(kept):])
	ch.Bots = kept
}

// playerMeetsBots returns true when a bot has defeated the player.
func (s *State) playerMeetsBots(ch *Chunk) bool {
	p := s.Player
	for i := len(ch.Bots) - 1; i >= 0; i-- {
		b := ch.Bots[i]
		if !Overlaps(p.X, p.Y, p.Radius, b.X, b.Y, b.R) {
			continue
		}
		switch {
		case Dominates(p.Radius, b.R):
			p.Radius = Absorb(p.Radius, b.R, 1)
			reward := BotRewardBase + math.Floor(b.R*BotRewardPerR)
			p.Money += reward * p.Multiplier(UpgradeMoneyBonus)
			p.Score += int(math.Round(b.R * BotScorePerR))
			ch.Bots = removeBot(ch.Bots, i)
			s.emit(Event{Kind: EventAteBot, X: b.X, Y: b.Y, R: b.R, BotID: b.ID})
			s.SpawnBot(s.RandomVisibleChunk())
		case Dominates(b.R, p.Radius):
			s.defeat(b)
			return true
		}
	}
	return false
}

func (s *State) defeat(by *Bot) {
	s.emit(Event{Kind: EventDefeated, X: by.X, Y: by.Y, R: by.R, BotID: by.ID})
	if s.OnDefeat != nil {
		s.OnDefeat(s.Player)
	}
	s.Phase = PhaseGameOver
}
