package protocol

import (
	"encoding/json"
)

// client -> server
const (
	MsgHello    = "hello"
	MsgInput    = "input"
	MsgViewport = "viewport"
	MsgBuy      = "buy"
	MsgPause    = "pause"
	MsgOpenShop = "openShop"
	MsgSave     = "save"
	MsgRestart  = "restart"
)

// server -> client
const (
	MsgWelcome  = "welcome"
	MsgState    = "state"
	MsgShop     = "shop"
	MsgGameOver = "gameover"
	MsgSaved    = "saved"
	MsgError    = "error"
)

const (
	Version     = 1
	SimTickHz   = 60
	BroadcastHz = 30
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
