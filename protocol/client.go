package protocol

//input structs coming in from the client.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
	Slot int    `json:"slot"`           // save slot to resume
}

// Input targets are world coordinates; the client converts the cursor.
type Input struct {
	TX    float64 `json:"tx"`
	TY    float64 `json:"ty"`
	Boost bool    `json:"boost,omitempty"`
}

type Viewport struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Buy struct {
	Upgrade string `json:"upgrade"`
}

type Pause struct {
	Paused bool `json:"paused"`
}

type OpenShop struct {
	Open bool `json:"open"`
}

type Save struct{}

type Restart struct{}
