package game

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrMaxLevel          = errors.New("upgrade at level cap")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type UpgradeConfig struct {
	Name      string
	BasePrice float64
	PriceMult float64
	Effect    float64

	// The cap starts at BaseCap, rises one level per ScorePerLevel points
	// and never exceeds MaxLevel.
	BaseCap       int
	ScorePerLevel int
	MaxLevel      int
}

var UpgradeOrder = []UpgradeKind{UpgradeSpeed, UpgradeMoneyBonus, UpgradeAbsorption, UpgradeStamina}

var UpgradeConfigs = map[UpgradeKind]UpgradeConfig{
	UpgradeSpeed:      {Name: "Speed", BasePrice: 100, PriceMult: 1.5, Effect: 0.2, BaseCap: 3, ScorePerLevel: 250, MaxLevel: 10},
	UpgradeMoneyBonus: {Name: "Money Bonus", BasePrice: 150, PriceMult: 1.8, Effect: 0.25, BaseCap: 3, ScorePerLevel: 250, MaxLevel: 10},
	UpgradeAbsorption: {Name: "Absorption", BasePrice: 200, PriceMult: 2, Effect: 0.15, BaseCap: 3, ScorePerLevel: 250, MaxLevel: 10},
	UpgradeStamina:    {Name: "Stamina", BasePrice: 120, PriceMult: 1.6, Effect: 0.2, BaseCap: 3, ScorePerLevel: 250, MaxLevel: 10},
}

// LevelCap is the highest level of k purchasable at the given score.
func LevelCap(k UpgradeKind, score int) int {
	cfg, ok := UpgradeConfigs[k]
	if !ok {
		return 0
	}
	c := cfg.BaseCap
	if cfg.ScorePerLevel > 0 && score > 0 {
		c += score / cfg.ScorePerLevel
	}
	return min(c, cfg.MaxLevel)
}

// UpgradeCost returns the price of the next level of k; ok is false when
// no further level can be bought right now.
func UpgradeCost(p *Player, k UpgradeKind) (cost int, ok bool) {
	cfg, known := UpgradeConfigs[k]
	if !known {
		return 0, false
	}
	lvl := p.Level(k)
	cost = int(math.Floor(cfg.BasePrice * math.Pow(cfg.PriceMult, float64(lvl-1))))
	return cost, lvl < LevelCap(k, p.Score)
}

func Purchase(p *Player, k UpgradeKind) error {
	if _, known := UpgradeConfigs[k]; !known {
		return fmt.Errorf("%w: %q", ErrUnknownUpgrade, k)
	}
	cost, ok := UpgradeCost(p, k)
	if !ok {
		return fmt.Errorf("%w: %s level %d", ErrMaxLevel, k, p.Level(k))
	}
	if p.Money < float64(cost) {
		return fmt.Errorf("%w: %s costs %d, have %.0f", ErrInsufficientFunds, k, cost, p.Money)
	}
	if p.Upgrades == nil {
		p.Upgrades = make(map[UpgradeKind]int, len(UpgradeOrder))
	}
	p.Money -= float64(cost)
	p.Upgrades[k] = p.Level(k) + 1
	return nil
}

// Offer describes one upgrade as the shop presents it.
type Offer struct {
	Kind  UpgradeKind
	Name  string
	Level int
	Cap   int
	Cost  int
	Maxed bool
}

func Offers(p *Player) []Offer {
	out := make([]Offer, 0, len(UpgradeOrder))
	for _, k := range UpgradeOrder {
		cost, ok := UpgradeCost(p, k)
		out = append(out, Offer{
			Kind:  k,
			Name:  UpgradeConfigs[k].Name,
			Level: p.Level(k),
			Cap:   LevelCap(k, p.Score),
			Cost:  cost,
			Maxed: !ok,
		})
	}
	return out
}
