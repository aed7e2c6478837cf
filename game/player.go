package game

type UpgradeKind string

const (
	UpgradeSpeed      UpgradeKind = "speed"
	UpgradeMoneyBonus UpgradeKind = "moneyBonus"
	UpgradeAbsorption UpgradeKind = "absorption"
	UpgradeStamina    UpgradeKind = "stamina"
)

// Player is also the persisted record body, hence the tags.
type Player struct {
	Name      string              `json:"name" msgpack:"name"`
	Color     string              `json:"color" msgpack:"color"`
	X         float64             `json:"x" msgpack:"x"`
	Y         float64             `json:"y" msgpack:"y"`
	Radius    float64             `json:"radius" msgpack:"radius"`
	Speed     float64             `json:"speed" msgpack:"speed"`
	Score     int                 `json:"score" msgpack:"score"`
	Money     float64             `json:"money" msgpack:"money"`
	Energy    float64             `json:"energy" msgpack:"energy"`
	MaxEnergy float64             `json:"maxEnergy" msgpack:"maxEnergy"`
	Boosting  bool                `json:"boosting" msgpack:"boosting"`
	Upgrades  map[UpgradeKind]int `json:"upgrades" msgpack:"upgrades"`
}

func NewPlayer(name string) *Player {
	if name == "" {
		name = "Player"
	}
	p := &Player{
		Name:      name,
		Color:     "blue",
		Radius:    PlayerStartRadius,
		Speed:     PlayerBaseSpeed,
		Energy:    EnergyMax,
		MaxEnergy: EnergyMax,
		Upgrades:  make(map[UpgradeKind]int, len(UpgradeOrder)),
	}
	for _, k := range UpgradeOrder {
		p.Upgrades[k] = 1
	}
	return p
}

func (p *Player) Level(k UpgradeKind) int {
	if lvl := p.Upgrades[k]; lvl > 1 {
		return lvl
	}
	return 1
}

// Multiplier is the effect of the player's current level of k,
// 1 at level 1 growing linearly by the upgrade's effect per level.
func (p *Player) Multiplier(k UpgradeKind) float64 {
	cfg, ok := UpgradeConfigs[k]
	if !ok {
		return 1
	}
	return 1 + float64(p.Level(k)-1)*cfg.Effect
}

// Normalize repairs a player decoded from an older or damaged record.
func (p *Player) Normalize() {
	if p.Name == "" {
		p.Name = "Player"
	}
	if p.Color == "" {
		p.Color = "blue"
	}
	// the player never shrinks, so a smaller radius is damage
	if p.Radius < PlayerStartRadius {
		p.Radius = PlayerStartRadius
	}
	if p.Speed <= 0 {
		p.Speed = PlayerBaseSpeed
	}
	if p.Score < 0 {
		p.Score = 0
	}
	if p.Money < 0 {
		p.Money = 0
	}
	if p.MaxEnergy <= 0 {
		p.MaxEnergy = EnergyMax
	}
	p.Energy = clamp(p.Energy, 0, p.MaxEnergy)
	if p.Upgrades == nil {
		p.Upgrades = make(map[UpgradeKind]int, len(UpgradeOrder))
	}
	for _, k := range UpgradeOrder {
		if p.Upgrades[k] < 1 {
			p.Upgrades[k] = 1
		}
	}
}

// currentSpeed is the per-tick distance the player covers toward its target.
func (p *Player) currentSpeed(boosting bool) float64 {
	s := p.Speed * p.Multiplier(UpgradeSpeed)
	s /= 1 + PlayerDragPerUnit*p.Radius
	if boosting {
		s *= BoostMult
	}
	return s
}
