package protocol

type Welcome struct {
	SessionID string `json:"sessionId"`
	TickHz    int    `json:"tickHz"`
	Slot      int    `json:"slot"`
}

// State is everything a renderer needs for one frame.
type State struct {
	Tick   int             `json:"tick"`
	Phase  string          `json:"phase"`
	Player PlayerSnapshot  `json:"player"`
	Camera CameraSnapshot  `json:"camera"`
	Chunks []ChunkSnapshot `json:"chunks"`
	Events []EventSnapshot `json:"events,omitempty"`
}

type PlayerSnapshot struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	R         float64 `json:"r"`
	Size      string  `json:"size"`
	Score     int     `json:"score"`
	Money     float64 `json:"money"`
	Energy    float64 `json:"energy"`
	MaxEnergy float64 `json:"maxEnergy"`
	Boosting  bool    `json:"boosting,omitempty"`
}

type CameraSnapshot struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

type ChunkSnapshot struct {
	X    int            `json:"x"`
	Y    int            `json:"y"`
	Food []FoodSnapshot `json:"food"`
	Bots []BotSnapshot  `json:"bots"`
}

type FoodSnapshot struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color string  `json:"color"`
}

type BotSnapshot struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color string  `json:"color"`
	State string  `json:"state"`
}

type EventSnapshot struct {
	Kind  string  `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	BotID string  `json:"botId,omitempty"`
}

type Shop struct {
	Money float64    `json:"money"`
	Items []ShopItem `json:"items"`
}

type ShopItem struct {
	Upgrade string `json:"upgrade"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
	Cap     int    `json:"cap"`
	Cost    int    `json:"cost"`
	Maxed   bool   `json:"maxed,omitempty"`
}

type GameOver struct {
	Score int     `json:"score"`
	Size  string  `json:"size"`
	Money float64 `json:"money"`
}

type Saved struct {
	Slot int `json:"slot"`
}

type Error struct {
	Msg string `json:"msg"`
}
