package game

import (
	"testing"

	uuid "github.com/satori/go.uuid"
)

// fixedRand returns the same draw every time, so spawns land at chunk
// centers of the first visible chunk, far from test scenes.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int     { return r.n }

// emptyScene is a state around the origin whose visible chunks exist but
// hold nothing.
func emptyScene(t *testing.T) *State {
	t.Helper()
	p := NewPlayer("test")
	s := &State{
		Player: p,
		Chunks: make(map[ChunkKey]*Chunk),
		Rand:   fixedRand{f: 0.5},
		botNS:  uuid.NewV5(uuid.NamespaceOID, t.Name()),
	}
	s.Camera = Camera{ViewW: DefaultViewportW, ViewH: DefaultViewportH}
	s.Camera.Snap(p)
	s.Visible = VisibleChunks(p.X, p.Y)
	for _, k := range s.Visible {
		ch, _ := s.EnsureChunk(k)
		ch.populated = true
	}
	return s
}

func addBot(s *State, x, y, r float64) *Bot {
	k := KeyOf(x, y)
	ch, _ := s.EnsureChunk(k)
	b := &Bot{ID: s.nextBotID(), Name: "Bot", X: x, Y: y, R: r, Speed: 2,
		Behavior: Behavior{State: Wandering, TargetX: x, TargetY: y}}
	ch.Bots = append(ch.Bots, b)
	return b
}

func addFood(s *State, x, y, r float64) *Food {
	ch, _ := s.EnsureChunk(KeyOf(x, y))
	f := &Food{X: x, Y: y, R: r}
	ch.Food = append(ch.Food, f)
	return f
}

func countBots(s *State) int {
	n := 0
	for _, ch := range s.Chunks {
		n += len(ch.Bots)
	}
	return n
}

func countFood(s *State) int {
	n := 0
	for _, ch := range s.Chunks {
		n += len(ch.Food)
	}
	return n
}
