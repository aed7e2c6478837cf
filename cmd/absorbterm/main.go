// absorbterm plays a local session in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"absorb/config"
	"absorb/game"
	"absorb/protocol"
	"absorb/save"
	"absorb/session"
	"absorb/termview"
)

var errClosed = errors.New("local connection closed")

// localConn hands session frames to the UI loop in-process.
type localConn struct {
	frames chan []byte
	closed chan struct{}
	once   sync.Once
}

func newLocalConn() *localConn {
	return &localConn{frames: make(chan []byte, 64), closed: make(chan struct{})}
}

func (c *localConn) Send(b []byte) error {
	select {
	case c.frames <- b:
		return nil
	case <-c.closed:
		return errClosed
	}
}

func (c *localConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func main() {
	var (
		slot    = flag.Int("slot", 1, "save slot, 0 plays without saving")
		name    = flag.String("name", "", "player name for a new slot")
		logPath = flag.String("log", "", "write logs to this file")
		mute    = flag.Bool("mute", false, "disable sound")
	)
	flag.Parse()

	if err := run(*slot, *name, *logPath, *mute); err != nil {
		fmt.Fprintln(os.Stderr, "absorbterm:", err)
		os.Exit(1)
	}
}

func run(slot int, name, logPath string, mute bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// the screen belongs to tcell, so logs only go to a file
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

	store, err := save.NewFileStore(cfg.SaveDir)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	snd := newSounds()
	if !mute {
		if err := snd.init(); err != nil {
			// Non-fatal, game can run without sound
			log.Warn("audio init failed", "err", err)
		}
	}
	defer snd.close()

	conn := newLocalConn()
	sess := session.New("local", conn, name, slot, session.Options{
		TickHz:      cfg.TickHz,
		BroadcastHz: cfg.BroadcastHz,
		Seed:        cfg.Seed,
		Store:       store,
		Logger:      log,
	})
	go sess.Run()
	defer func() {
		// unblock a session stuck handing us a frame
		conn.Close()
		sess.Stop()
		<-sess.Done()
	}()

	c := &client{
		sess:   sess,
		view:   termview.New(screen),
		sounds: snd,
		log:    log,
	}
	c.resize()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !c.handleEvent(ev) {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
		case b := <-conn.frames:
			c.handleFrame(b)
		case <-sess.Done():
			return nil
		}
		c.view.Draw(c.frame)
	}
}

type client struct {
	sess   *session.Session
	view   *termview.Renderer
	sounds *sounds
	log    *slog.Logger

	frame  termview.Frame
	target [2]float64
	boost  bool

	// last pointer cell; the target is re-derived from it every frame
	cursor    [2]int
	hasCursor bool
}

func (c *client) send(cmd any) {
	if err := c.sess.Send(cmd); err != nil {
		c.log.Debug("send", "err", err)
	}
}

func (c *client) resize() {
	w, h := c.view.Viewport()
	c.send(session.Viewport{W: w, H: h})
}

func (c *client) phase() string {
	if c.frame.State == nil {
		return ""
	}
	return c.frame.State.Phase
}

// aim points the target at the world under the cursor through the current
// camera, so a still cursor off centre keeps the player moving.
func (c *client) aim() {
	if !c.hasCursor || c.frame.State == nil {
		return
	}
	c.target[0], c.target[1] = termview.CellToWorld(c.frame.State.Camera, c.cursor[0], c.cursor[1])
	c.steer()
}

func (c *client) steer() {
	c.send(session.Input{TargetX: c.target[0], TargetY: c.target[1], Boost: c.boost})
}

// handleEvent reports false when the user quits.
func (c *client) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.resize()
	case *tcell.EventMouse:
		if c.frame.State == nil {
			return true
		}
		col, row := ev.Position()
		c.cursor, c.hasCursor = [2]int{col, row}, true
		c.aim()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		return c.handleRune(ev.Rune())
	}
	return true
}

func (c *client) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		// terminals report no key release, so boost toggles
		c.boost = !c.boost
		c.steer()
	case 'p':
		c.send(session.SetPaused{Paused: c.phase() != "paused"})
	case 's':
		c.send(session.SetShop{Open: c.phase() != "shop"})
	case 'w':
		c.send(session.Save{})
	case 'r':
		if c.frame.Over != nil {
			c.send(session.Restart{})
		}
	case '1', '2', '3', '4':
		if i := int(r - '1'); i < len(game.UpgradeOrder) && c.phase() == "shop" {
			c.send(session.Purchase{Upgrade: game.UpgradeOrder[i]})
		}
	}
	return true
}

func (c *client) handleFrame(b []byte) {
	env, err := protocol.DecodeEnvelope(b)
	if err != nil {
		c.log.Warn("bad frame", "err", err)
		return
	}
	switch env.T {
	case protocol.MsgWelcome:
		w, err := protocol.DecodePayload[protocol.Welcome](env)
		if err != nil {
			return
		}
		c.frame.Over, c.frame.Shop = nil, nil
		c.boost = false
		c.frame.Status = slotLabel(w.Slot)
	case protocol.MsgState:
		st, err := protocol.DecodePayload[protocol.State](env)
		if err != nil {
			c.log.Warn("bad state", "err", err)
			return
		}
		if c.frame.State == nil {
			c.target = [2]float64{st.Player.X, st.Player.Y}
		}
		c.frame.State = &st
		if st.Phase == "playing" {
			c.aim()
		}
		c.playEvents(st.Events)
	case protocol.MsgShop:
		shop, err := protocol.DecodePayload[protocol.Shop](env)
		if err != nil {
			return
		}
		if c.frame.Shop != nil && shop.Money < c.frame.Shop.Money {
			c.sounds.bought()
		}
		c.frame.Shop = &shop
	case protocol.MsgGameOver:
		over, err := protocol.DecodePayload[protocol.GameOver](env)
		if err != nil {
			return
		}
		c.frame.Over = &over
		c.sounds.defeated()
	case protocol.MsgSaved:
		saved, err := protocol.DecodePayload[protocol.Saved](env)
		if err == nil {
			c.frame.Status = fmt.Sprintf("saved to slot %d", saved.Slot)
		}
	case protocol.MsgError:
		e, err := protocol.DecodePayload[protocol.Error](env)
		if err == nil {
			c.frame.Status = e.Msg
		}
	}
}

func (c *client) playEvents(events []protocol.EventSnapshot) {
	for _, e := range events {
		switch e.Kind {
		case game.EventAteFood.String():
			c.sounds.ateFood()
		case game.EventAteBot.String():
			c.sounds.ateBot()
		}
	}
}

func slotLabel(slot int) string {
	if slot == 0 {
		return "unsaved"
	}
	return fmt.Sprintf("slot %d", slot)
}
