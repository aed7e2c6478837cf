package session

import "absorb/game"

type Conn interface {
	Send([]byte) error
	Close() error
}

// Input: latest pointer target in world space
type Input struct {
	TargetX, TargetY float64
	Boost            bool
}

// Viewport: client canvas size, drives camera zoom
type Viewport struct {
	W, H float64
}

// Purchase: buy the next level of an upgrade; only while the shop is open
type Purchase struct {
	Upgrade game.UpgradeKind
	Reply   chan<- error
}

type SetPaused struct {
	Paused bool
}

type SetShop struct {
	Open bool
}

// Save: write the player to the session's slot
type Save struct {
	Reply chan<- error
}

// Restart: reload the slot and regenerate the world
type Restart struct{}

// Leave: issued on disconnect
type Leave struct{}

// inspect runs on the session goroutine.
type inspect func(*Session)
