// Package save persists the player record by numbered slot.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"absorb/game"
)

var (
	// ErrNoSave means the slot is empty or its record could not be read.
	ErrNoSave      = errors.New("no save in slot")
	ErrInvalidSlot = errors.New("invalid slot")
)

type Record struct {
	Player    *game.Player `json:"player" msgpack:"player"`
	Timestamp int64        `json:"timestamp" msgpack:"timestamp"` // unix millis
}

func NewRecord(p *game.Player, at time.Time) Record {
	return Record{Player: p, Timestamp: at.UnixMilli()}
}

func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// SlotInfo is the summary a slot picker shows.
type SlotInfo struct {
	Slot  int       `json:"slot"`
	Empty bool      `json:"empty"`
	Money float64   `json:"money,omitempty"`
	Score int       `json:"score,omitempty"`
	Saved time.Time `json:"saved,omitempty"`
}

type Store interface {
	Load(slot int) (Record, error)
	Save(slot int, rec Record) error
	List(slots ...int) []SlotInfo
}

func Encode(rec Record) ([]byte, error) {
	if rec.Player == nil {
		return nil, fmt.Errorf("encode record: nil player")
	}
	return msgpack.Marshal(&rec)
}

// wire defers decoding the player so it can start from defaults.
type wire[R any] struct {
	Player    R     `json:"player" msgpack:"player"`
	Timestamp int64 `json:"timestamp" msgpack:"timestamp"`
}

// Decode reads a msgpack record, or a JSON one as written by the browser
// build. Fields missing from older records keep the new-player defaults.
func Decode(b []byte) (Record, error) {
	if len(b) == 0 {
		return Record{}, fmt.Errorf("%w: empty record", ErrNoSave)
	}
	p := game.NewPlayer("")
	var (
		ts  int64
		err error
	)
	if b[0] == '{' {
		var w wire[json.RawMessage]
		if err = json.Unmarshal(b, &w); err == nil {
			if len(w.Player) == 0 || string(w.Player) == "null" {
				return Record{}, fmt.Errorf("%w: record without player", ErrNoSave)
			}
			ts = w.Timestamp
			err = json.Unmarshal(w.Player, p)
		}
	} else {
		var w wire[msgpack.RawMessage]
		if err = msgpack.Unmarshal(b, &w); err == nil {
			if len(w.Player) == 0 || (len(w.Player) == 1 && w.Player[0] == msgpcode.Nil) {
				return Record{}, fmt.Errorf("%w: record without player", ErrNoSave)
			}
			ts = w.Timestamp
			err = msgpack.Unmarshal(w.Player, p)
		}
	}
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}
	p.Normalize()
	return Record{Player: p, Timestamp: ts}, nil
}

// list summarizes the given slots; unreadable slots show as empty.
func list(load func(int) (Record, error), slots []int) []SlotInfo {
	out := make([]SlotInfo, 0, len(slots))
	for _, n := range slots {
		rec, err := load(n)
		if err != nil {
			out = append(out, SlotInfo{Slot: n, Empty: true})
			continue
		}
		out = append(out, SlotInfo{
			Slot:  n,
			Money: rec.Player.Money,
			Score: rec.Player.Score,
			Saved: rec.Time(),
		})
	}
	return out
}

func checkSlot(slot int) error {
	if slot < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return nil
}
