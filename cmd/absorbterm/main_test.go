package main

import (
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absorb/game"
	"absorb/protocol"
	"absorb/session"
	"absorb/termview"
)

// newTestClient wires a client to a session that is never run, so every
// command it sends stays queued in the inbox.
func newTestClient(t *testing.T) (*client, *session.Session) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	sess := session.New("T", newLocalConn(), "", 0, session.Options{})
	return &client{
		sess:   sess,
		view:   termview.New(screen),
		sounds: newSounds(),
		log:    slog.New(slog.DiscardHandler),
	}, sess
}

func queued(t *testing.T, s *session.Session) any {
	t.Helper()
	select {
	case cmd := <-s.Inbox:
		return cmd
	default:
		t.Fatalf("no command queued")
		return nil
	}
}

func frame(t *testing.T, typ string, payload any) []byte {
	t.Helper()
	b, err := protocol.Encode(typ, payload)
	require.NoError(t, err)
	return b
}

func TestLocalConnClose(t *testing.T) {
	c := newLocalConn()
	require.NoError(t, c.Send([]byte("x")))
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())

	// buffer full or not, a closed conn never blocks
	for i := 0; i < 100; i++ {
		if err := c.Send([]byte("y")); err != nil {
			assert.ErrorIs(t, err, errClosed)
			return
		}
	}
	t.Fatalf("send kept succeeding after close")
}

func TestClientKeys(t *testing.T) {
	c, sess := newTestClient(t)
	c.handleFrame(frame(t, protocol.MsgState, protocol.State{Phase: "playing", Player: protocol.PlayerSnapshot{X: 5, Y: 6}}))

	assert.True(t, c.handleRune(' '))
	assert.Equal(t, session.Input{TargetX: 5, TargetY: 6, Boost: true}, queued(t, sess))

	c.handleRune('p')
	assert.Equal(t, session.SetPaused{Paused: true}, queued(t, sess))

	c.handleRune('s')
	assert.Equal(t, session.SetShop{Open: true}, queued(t, sess))

	// buying only works in the shop
	c.handleRune('1')
	c.handleFrame(frame(t, protocol.MsgState, protocol.State{Phase: "shop"}))
	c.handleRune('2')
	assert.Equal(t, session.Purchase{Upgrade: game.UpgradeMoneyBonus}, queued(t, sess))

	// restart only after game over
	c.handleRune('r')
	c.handleFrame(frame(t, protocol.MsgGameOver, protocol.GameOver{Score: 1}))
	c.handleRune('r')
	assert.Equal(t, session.Restart{}, queued(t, sess))

	assert.False(t, c.handleRune('q'))
	assert.False(t, c.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestClientMouseSteers(t *testing.T) {
	c, sess := newTestClient(t)
	c.handleFrame(frame(t, protocol.MsgState, protocol.State{
		Phase:  "playing",
		Camera: protocol.CameraSnapshot{Zoom: 1, W: 640, H: 384},
	}))
	c.handleEvent(tcell.NewEventMouse(40, 12, tcell.ButtonNone, tcell.ModNone))

	in, ok := queued(t, sess).(session.Input)
	require.True(t, ok)
	assert.InDelta(t, 4, in.TargetX, 1e-9)
	assert.InDelta(t, 8, in.TargetY, 1e-9)
}

func TestClientSteersAsCameraMoves(t *testing.T) {
	c, sess := newTestClient(t)
	state := func(camX float64) []byte {
		return frame(t, protocol.MsgState, protocol.State{
			Phase:  "playing",
			Camera: protocol.CameraSnapshot{X: camX, Zoom: 1, W: 640, H: 384},
		})
	}
	c.handleFrame(state(0))
	c.handleEvent(tcell.NewEventMouse(79, 12, tcell.ButtonNone, tcell.ModNone))
	first, ok := queued(t, sess).(session.Input)
	require.True(t, ok)
	assert.InDelta(t, 316, first.TargetX, 1e-9)

	// cursor stays put at the right edge while the camera catches up
	c.handleFrame(state(300))
	next, ok := queued(t, sess).(session.Input)
	require.True(t, ok)
	assert.InDelta(t, 616, next.TargetX, 1e-9)
	assert.InDelta(t, first.TargetY, next.TargetY, 1e-9)

	// no steering outside play
	c.handleFrame(frame(t, protocol.MsgState, protocol.State{Phase: "paused", Camera: protocol.CameraSnapshot{X: 600, Zoom: 1, W: 640, H: 384}}))
	select {
	case cmd := <-sess.Inbox:
		t.Fatalf("unexpected command while paused: %#v", cmd)
	default:
	}
}

func TestClientFrames(t *testing.T) {
	c, _ := newTestClient(t)
	c.handleFrame(frame(t, protocol.MsgWelcome, protocol.Welcome{SessionID: "T", Slot: 2}))
	assert.Equal(t, "slot 2", c.frame.Status)

	c.handleFrame(frame(t, protocol.MsgGameOver, protocol.GameOver{Score: 9}))
	require.NotNil(t, c.frame.Over)
	assert.Equal(t, 9, c.frame.Over.Score)

	c.handleFrame(frame(t, protocol.MsgWelcome, protocol.Welcome{SessionID: "T"}))
	assert.Nil(t, c.frame.Over)
	assert.Equal(t, "unsaved", c.frame.Status)

	c.handleFrame(frame(t, protocol.MsgSaved, protocol.Saved{Slot: 2}))
	assert.Equal(t, "saved to slot 2", c.frame.Status)

	c.handleFrame(frame(t, protocol.MsgError, protocol.Error{Msg: "shop is closed"}))
	assert.Equal(t, "shop is closed", c.frame.Status)

	// unknown frames are ignored
	c.handleFrame([]byte(`{"t":"mystery","p":{}}`))
	c.handleFrame([]byte(`garbage`))
}
