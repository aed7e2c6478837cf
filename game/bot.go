package game

import "fmt"

type BehaviorState uint8

const (
	Wandering BehaviorState = iota
	Patrolling
	Foraging
	Hunting
	Fleeing
)

func (s BehaviorState) String() string {
	switch s {
	case Wandering:
		return "wandering"
	case Patrolling:
		return "patrolling"
	case Foraging:
		return "foraging"
	case Hunting:
		return "hunting"
	case Fleeing:
		return "fleeing"
	}
	return fmt.Sprintf("BehaviorState(%d)", uint8(s))
}

// SpeedMult scales a bot's base speed while in this state.
func (s BehaviorState) SpeedMult() float64 {
	switch s {
	case Fleeing:
		return 1.6
	case Hunting:
		return 1.3
	case Foraging:
		return 1.1
	case Patrolling:
		return 0.9
	case Wandering:
		return 0.7
	}
	return 1
}

// Behavior is the selected state together with where it is heading.
type Behavior struct {
	State   BehaviorState
	TargetX float64
	TargetY float64
}

type Bot struct {
	ID    string
	Name  string
	X, Y  float64
	R     float64
	Color Color
	Speed float64

	Behavior Behavior
}

type Food struct {
	X, Y  float64
	R     float64
	Color Color
}

// Color is an HSL tag; hue in degrees, saturation and lightness in 0..1.
type Color struct {
	H, S, L float64
}

func (c Color) CSS() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.H, c.S*100, c.L*100)
}

var botNames = []string{
	"Bot", "Amoeba", "Blob", "Cell", "Drifter", "Glob", "Morsel", "Nibbler",
	"Ooze", "Plasm", "Spore", "Vesicle",
}
