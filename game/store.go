package game

import (
	"slices"
	"strconv"

	uuid "github.com/satori/go.uuid"
)

// EnsureChunk returns the collections for k, creating empty ones when k is
// not tracked yet.
func (s *State) EnsureChunk(k ChunkKey) (*Chunk, bool) {
	if ch, ok := s.Chunks[k]; ok {
		return ch, false
	}
	ch := &Chunk{Key: k}
	s.Chunks[k] = ch
	return ch, true
}

// Populate tops the chunk up to its food and bot quotas. It never removes.
func (s *State) Populate(k ChunkKey) {
	ch, _ := s.EnsureChunk(k)
	for n := FoodQuota - len(ch.Food); n > 0; n-- {
		s.SpawnFood(k)
	}
	for n := BotQuota - len(ch.Bots); n > 0; n-- {
		s.SpawnBot(k)
	}
	ch.populated = true
}

// EvictOutOfScope drops every tracked chunk missing from visible and
// returns how many were dropped.
func (s *State) EvictOutOfScope(visible ChunkSet) int {
	n := 0
	for k := range s.Chunks {
		if !visible.Has(k) {
			delete(s.Chunks, k)
			n++
		}
	}
	return n
}

func (s *State) SpawnFood(k ChunkKey) *Food {
	ch, _ := s.EnsureChunk(k)
	x, y := pointIn(s.Rand, BoundsOf(k))
	f := &Food{
		X:     x,
		Y:     y,
		R:     FoodRadius,
		Color: Color{H: s.Rand.Float64() * 360, S: 1, L: 0.5},
	}
	ch.Food = append(ch.Food, f)
	return f
}

// SpawnBot places a wandering bot in k. Its size range follows the player
// so early sessions are not swamped by giants.
func (s *State) SpawnBot(k ChunkKey) *Bot {
	ch, _ := s.EnsureChunk(k)
	b := BoundsOf(k)
	pr := s.Player.Radius
	r := between(s.Rand, pr*BotMinRadiusMul, pr*BotMaxRadiusMul)
	x, y := pointIn(s.Rand, b)
	tx, ty := pointIn(s.Rand, b)
	bot := &Bot{
		ID:    s.nextBotID(),
		Name:  botNames[s.Rand.IntN(len(botNames))],
		X:     x,
		Y:     y,
		R:     r,
		Color: Color{H: s.Rand.Float64() * 360, S: 0.6, L: 0.5},
		Speed: BotSpeedBase * (BotSpeedRefR / r) * between(s.Rand, 1-BotSpeedJitter, 1+BotSpeedJitter),
		Behavior: Behavior{
			State:   Wandering,
			TargetX: tx,
			TargetY: ty,
		},
	}
	ch.Bots = append(ch.Bots, bot)
	return bot
}

func (s *State) nextBotID() string {
	s.botSeq++
	return uuid.NewV5(s.botNS, strconv.FormatUint(s.botSeq, 10)).String()
}

// RandomVisibleChunk picks a chunk of the current window uniformly.
func (s *State) RandomVisibleChunk() ChunkKey {
	if len(s.Visible) == 0 {
		return KeyOf(s.Player.X, s.Player.Y)
	}
	return s.Visible[s.Rand.IntN(len(s.Visible))]
}

// maintain populates visible chunks that have not been generated yet.
func (s *State) maintain() {
	for _, k := range s.Visible {
		ch, _ := s.EnsureChunk(k)
		if !ch.populated {
			s.Populate(k)
		}
	}
}

func removeFood(fs []*Food, i int) []*Food {
	return slices.Delete(fs, i, i+1)
}

func removeBot(bs []*Bot, i int) []*Bot {
	return slices.Delete(bs, i, i+1)
}
