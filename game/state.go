package game

import (
	"fmt"

	uuid "github.com/satori/go.uuid"
)

// Internal truth authoritative simulation state for one session

type Phase uint8

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseShop
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseShop:
		return "shop"
	case PhaseGameOver:
		return "gameOver"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

type State struct {
	Tick    int
	Phase   Phase
	Player  *Player
	Camera  Camera
	Chunks  map[ChunkKey]*Chunk
	Visible []ChunkKey
	Events  []Event
	Rand    Rand

	// OnDefeat runs before the phase switches to game over.
	OnDefeat func(*Player)

	botNS  uuid.UUID
	botSeq uint64
}

// Chunk holds the entities generated for one cell while it is in scope.
type Chunk struct {
	Key  ChunkKey
	Food []*Food
	Bots []*Bot

	populated bool
}

type EventKind uint8

const (
	EventAteFood EventKind = iota
	EventAteBot
	EventBotAteBot
	EventDefeated
)

func (k EventKind) String() string {
	switch k {
	case EventAteFood:
		return "ateFood"
	case EventAteBot:
		return "ateBot"
	case EventBotAteBot:
		return "botAteBot"
	case EventDefeated:
		return "defeated"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event records something a renderer may want to react to this tick.
type Event struct {
	Kind  EventKind
	X, Y  float64
	R     float64
	BotID string
}

// NewState builds a fresh world around p. The namespace seeds bot ids so
// that two sessions never share one.
func NewState(p *Player, r Rand, namespace string) *State {
	p.Normalize()
	s := &State{
		Player: p,
		Chunks: make(map[ChunkKey]*Chunk),
		Rand:   r,
		botNS:  uuid.NewV5(uuid.NamespaceOID, namespace),
	}
	s.Camera = Camera{ViewW: DefaultViewportW, ViewH: DefaultViewportH}
	s.Camera.Snap(p)
	s.Visible = VisibleChunks(p.X, p.Y)
	s.maintain()
	return s
}

func (s *State) emit(e Event) {
	s.Events = append(s.Events, e)
}
