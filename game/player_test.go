package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaultsOldRecords(t *testing.T) {
	p := &Player{
		Name:     "old",
		Radius:   42,
		Score:    -3,
		Money:    12.5,
		Upgrades: map[UpgradeKind]int{UpgradeSpeed: 4, UpgradeAbsorption: 0},
	}
	p.Normalize()

	assert.Equal(t, 42.0, p.Radius)
	assert.Equal(t, PlayerBaseSpeed, p.Speed)
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, EnergyMax, p.MaxEnergy)
	assert.Equal(t, 0.0, p.Energy)
	assert.Equal(t, 4, p.Upgrades[UpgradeSpeed])
	assert.Equal(t, 1, p.Upgrades[UpgradeAbsorption])
	assert.Equal(t, 1, p.Upgrades[UpgradeStamina])
	assert.Equal(t, "blue", p.Color)
}

func TestNormalizeRaisesTinyRadius(t *testing.T) {
	for _, r := range []float64{-5, 0, 3, 7.5} {
		p := &Player{Radius: r}
		p.Normalize()
		assert.Equal(t, PlayerStartRadius, p.Radius)
		// food never outgrows a restored player
		assert.True(t, Dominates(p.Radius, FoodRadius))
	}
}

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer("")
	assert.Equal(t, "Player", p.Name)
	assert.Equal(t, PlayerStartRadius, p.Radius)
	assert.Equal(t, EnergyMax, p.Energy)
	for _, k := range UpgradeOrder {
		assert.Equal(t, 1, p.Level(k))
	}
}
