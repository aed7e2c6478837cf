package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"absorb/game"
	"absorb/protocol"
	"absorb/save"
)

var (
	ErrClosed     = errors.New("session closed")
	ErrShopClosed = errors.New("shop is closed")
	ErrNoSlot     = errors.New("session has no save slot")
	ErrNoStore    = errors.New("no save store configured")
)

type Options struct {
	TickHz      int
	BroadcastHz int

	// Seed feeds the world generator; 0 picks one from the clock.
	Seed   uint64
	Store  save.Store
	Logger *slog.Logger
	Now    func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TickHz <= 0 {
		o.TickHz = protocol.SimTickHz
	}
	if o.BroadcastHz <= 0 || o.BroadcastHz > o.TickHz {
		o.BroadcastHz = min(protocol.BroadcastHz, o.TickHz)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Session runs one player's world on its own goroutine. Everything that
// touches the game state goes through Inbox.
type Session struct {
	Inbox chan any
	ID    string
	Slot  int // 0 means unsaved
	OnEnd func(id string)

	tickHz         int
	broadcastEvery int
	name           string
	seed           uint64
	generation     uint64
	state          *game.State
	input          game.Input
	pending        []game.Event
	viewW, viewH   float64
	ticker         *time.Ticker

	conn  Conn
	store save.Store
	log   *slog.Logger
	now   func() time.Time

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func New(id string, conn Conn, name string, slot int, opts Options) *Session {
	opts = opts.withDefaults()
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(opts.Now().UnixNano())
	}
	return &Session{
		Inbox:          make(chan any, 256),
		ID:             id,
		Slot:           slot,
		tickHz:         opts.TickHz,
		broadcastEvery: opts.TickHz / opts.BroadcastHz,
		name:           name,
		seed:           seed,
		conn:           conn,
		store:          opts.Store,
		log:            opts.Logger.With("session", id, "slot", slot),
		now:            opts.Now,
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
}

// Done is closed once Run has returned and the connection is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Send queues cmd for the session goroutine.
func (s *Session) Send(cmd any) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.Inbox <- cmd:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

func (s *Session) Run() {
	defer close(s.done)
	defer s.halt()

	if !s.start() {
		return
	}
	for {
		// nil while paused or after defeat, which blocks forever
		var tick <-chan time.Time
		if s.ticker != nil {
			tick = s.ticker.C
		}
		select {
		case <-s.quit:
			return
		case cmd := <-s.Inbox:
			if !s.handleCommand(cmd) {
				return
			}
		case <-tick:
			if !s.tick() {
				return
			}
		}
	}
}

// start (re)builds the world from the slot. The old ticker is stopped and
// dropped first so no tick scheduled for the previous world can land on
// the new one.
func (s *Session) start() bool {
	s.stopTicker()
	s.generation++
	s.pending = s.pending[:0]

	p := s.loadPlayer()
	rng := rand.New(rand.NewPCG(s.seed, s.generation))
	s.state = game.NewState(p, rng, fmt.Sprintf("%s/%d", s.ID, s.generation))
	s.state.OnDefeat = s.saveOnDeath
	if s.viewW > 0 && s.viewH > 0 {
		s.state.Camera.SetViewport(s.viewW, s.viewH)
		s.state.Camera.Snap(p)
	}
	s.input = game.Input{TargetX: p.X, TargetY: p.Y}
	s.startTicker()

	s.log.Info("world started", "generation", s.generation, "score", p.Score, "radius", p.Radius)
	return s.send(protocol.MsgWelcome, protocol.Welcome{
		SessionID: s.ID,
		TickHz:    s.tickHz,
		Slot:      s.Slot,
	}) && s.sendState()
}

func (s *Session) loadPlayer() *game.Player {
	if s.Slot == 0 || s.store == nil {
		return game.NewPlayer(s.name)
	}
	rec, err := s.store.Load(s.Slot)
	switch {
	case errors.Is(err, save.ErrNoSave):
		s.log.Debug("empty slot, new player", "err", err)
		return game.NewPlayer(s.name)
	case err != nil:
		s.log.Warn("load slot failed, new player", "err", err)
		return game.NewPlayer(s.name)
	}
	return rec.Player
}

func (s *Session) startTicker() {
	if s.ticker == nil {
		s.ticker = time.NewTicker(time.Second / time.Duration(s.tickHz))
	}
}

func (s *Session) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

func (s *Session) tick() bool {
	game.Step(s.state, s.input)
	s.pending = append(s.pending, s.state.Events...)

	if s.state.Phase == game.PhaseGameOver {
		s.stopTicker()
		p := s.state.Player
		s.log.Info("player defeated", "tick", s.state.Tick, "score", p.Score, "radius", p.Radius)
		return s.sendState() && s.send(protocol.MsgGameOver, protocol.GameOver{
			Score: p.Score,
			Size:  game.FormatSize(p.Radius),
			Money: p.Money,
		})
	}
	if s.state.Tick%s.broadcastEvery == 0 {
		return s.sendState()
	}
	return true
}

// handleCommand reports false when the session should end.
func (s *Session) handleCommand(cmd any) bool {
	switch c := cmd.(type) {
	case Input:
		if s.state.Phase == game.PhasePlaying {
			s.input = game.Input{TargetX: c.TargetX, TargetY: c.TargetY, Boost: c.Boost}
		}
	case Viewport:
		s.viewW, s.viewH = c.W, c.H
		s.state.Camera.SetViewport(c.W, c.H)
	case Purchase:
		err := s.purchase(c.Upgrade)
		if c.Reply != nil {
			c.Reply <- err
		}
		if err != nil {
			return s.send(protocol.MsgError, protocol.Error{Msg: err.Error()})
		}
		return s.sendShop()
	case SetPaused:
		return s.setPaused(c.Paused)
	case SetShop:
		return s.setShop(c.Open)
	case Save:
		err := s.save()
		if c.Reply != nil {
			c.Reply <- err
		}
		if err != nil {
			s.log.Warn("save failed", "err", err)
			return s.send(protocol.MsgError, protocol.Error{Msg: err.Error()})
		}
		return s.send(protocol.MsgSaved, protocol.Saved{Slot: s.Slot})
	case Restart:
		return s.start()
	case Leave:
		return false
	case inspect:
		c(s)
	default:
		s.log.Warn("unknown command", "type", fmt.Sprintf("%T", cmd))
	}
	return true
}

func (s *Session) purchase(k game.UpgradeKind) error {
	if s.state.Phase != game.PhaseShop {
		return ErrShopClosed
	}
	if err := game.Purchase(s.state.Player, k); err != nil {
		return err
	}
	s.log.Info("upgrade bought", "upgrade", k, "level", s.state.Player.Level(k))
	return nil
}

// setPaused freezes the ticker entirely; nothing moves while paused.
func (s *Session) setPaused(paused bool) bool {
	switch {
	case paused && s.state.Phase == game.PhasePlaying:
		s.state.Phase = game.PhasePaused
		s.stopTicker()
	case !paused && s.state.Phase == game.PhasePaused:
		s.state.Phase = game.PhasePlaying
		s.startTicker()
	default:
		return true
	}
	return s.sendState()
}

// setShop keeps the world ticking; bots roam while the player shops.
func (s *Session) setShop(open bool) bool {
	switch {
	case open && s.state.Phase == game.PhasePlaying:
		s.state.Phase = game.PhaseShop
		s.input.Boost = false
		return s.sendShop()
	case !open && s.state.Phase == game.PhaseShop:
		s.state.Phase = game.PhasePlaying
		return s.sendState()
	}
	return true
}

func (s *Session) save() error {
	if s.Slot == 0 {
		return ErrNoSlot
	}
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Save(s.Slot, save.NewRecord(s.state.Player, s.now())); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (s *Session) saveOnDeath(*game.Player) {
	if err := s.save(); err != nil && !errors.Is(err, ErrNoSlot) {
		s.log.Warn("save on death failed", "err", err)
	}
}

func (s *Session) halt() {
	s.stopTicker()
	_ = s.conn.Close()
	if s.OnEnd != nil {
		s.OnEnd(s.ID)
	}
	s.log.Info("session ended")
}

// send reports false when the client is gone.
func (s *Session) send(t string, payload any) bool {
	b, err := protocol.Encode(t, payload)
	if err != nil {
		s.log.Error("encode", "type", t, "err", err)
		return true
	}
	if err := s.conn.Send(b); err != nil {
		s.log.Info("send failed, dropping session", "type", t, "err", err)
		return false
	}
	return true
}

func (s *Session) sendState() bool {
	snap := s.buildSnapshot()
	s.pending = s.pending[:0]
	return s.send(protocol.MsgState, snap)
}

func (s *Session) sendShop() bool {
	return s.send(protocol.MsgShop, buildShop(s.state.Player))
}
