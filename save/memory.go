package save

import "sync"

// MemoryStore keeps encoded records in memory.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[int][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[int][]byte)}
}

func (s *MemoryStore) Load(slot int) (Record, error) {
	if err := checkSlot(slot); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	b, ok := s.slots[slot]
	s.mu.Unlock()
	if !ok {
		return Record{}, ErrNoSave
	}
	return Decode(b)
}

func (s *MemoryStore) Save(slot int, rec Record) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	b, err := Encode(rec)
	if err != nil {
		return err
	}
	s.PutRaw(slot, b)
	return nil
}

func (s *MemoryStore) List(slots ...int) []SlotInfo {
	return list(s.Load, slots)
}

// PutRaw stores bytes as-is, bypassing the encoder.
func (s *MemoryStore) PutRaw(slot int, b []byte) {
	s.mu.Lock()
	s.slots[slot] = b
	s.mu.Unlock()
}
