package save

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one msgpack file per slot under a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("slot_%d.msgpack", slot))
}

func (s *FileStore) Load(slot int) (Record, error) {
	if err := checkSlot(slot); err != nil {
		return Record{}, err
	}
	b, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, ErrNoSave
	}
	if err != nil {
		return Record{}, fmt.Errorf("read slot %d: %w", slot, err)
	}
	return Decode(b)
}

// Save writes through a temp file so a crash never leaves half a record.
func (s *FileStore) Save(slot int, rec Record) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	b, err := Encode(rec)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("save slot %d: %w", slot, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("save slot %d: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save slot %d: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		return fmt.Errorf("save slot %d: %w", slot, err)
	}
	return nil
}

func (s *FileStore) List(slots ...int) []SlotInfo {
	return list(s.Load, slots)
}
