package session

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Info is returned by the API for the session list.
type Info struct {
	ID   string `json:"id"`
	Slot int    `json:"slot"`
}

// Manager holds live sessions by code. Sessions are removed when they end.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
	seq      uint64
}

func NewManager(opts Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Open creates a session for conn under a fresh code and starts it.
func (m *Manager) Open(conn Conn, name string, slot int) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := generateCode(6)
	for m.sessions[code] != nil {
		code = generateCode(6)
	}
	opts := m.opts
	m.seq++
	if opts.Seed != 0 {
		// reproducible per run, distinct per session
		opts.Seed += m.seq
	}
	s := New(code, conn, name, slot, opts)
	s.OnEnd = m.remove
	m.sessions[code] = s
	go s.Run()
	return s
}

func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// List returns all live sessions.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Info, 0, len(m.sessions))
	for id, s := range m.sessions {
		out = append(out, Info{ID: id, Slot: s.Slot})
	}
	return out
}

// Shutdown stops every session and waits for them to finish, so each one
// closes its connection before the process exits.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.RLock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.RUnlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range live {
		g.Go(func() error {
			s.Stop()
			select {
			case <-s.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}
