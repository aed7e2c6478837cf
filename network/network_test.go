package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absorb/game"
	"absorb/protocol"
	"absorb/save"
	"absorb/session"
)

func newTestServer(t *testing.T, store save.Store) (*httptest.Server, *session.Manager) {
	t.Helper()
	m := session.NewManager(session.Options{TickHz: 100, BroadcastHz: 50, Seed: 1, Store: store})
	ts := httptest.NewServer(NewServer(m, store, nil).Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = m.Shutdown(context.Background())
	})
	return ts, m
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func send(t *testing.T, c *websocket.Conn, typ string, payload any) {
	t.Helper()
	b, err := protocol.Encode(typ, payload)
	require.NoError(t, err)
	require.NoError(t, c.WriteMessage(websocket.TextMessage, b))
}

// next reads until a message of type typ arrives.
func next(t *testing.T, c *websocket.Conn, typ string) protocol.Envelope {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, b, err := c.ReadMessage()
		require.NoError(t, err)
		env, err := protocol.DecodeEnvelope(b)
		require.NoError(t, err)
		if env.T == typ {
			return env
		}
	}
}

func TestJoinReceivesWelcomeAndState(t *testing.T) {
	ts, m := newTestServer(t, save.NewMemoryStore())
	c := dial(t, ts)
	send(t, c, protocol.MsgHello, protocol.Hello{V: protocol.Version, Name: "ws", Slot: 1})

	w, err := protocol.DecodePayload[protocol.Welcome](next(t, c, protocol.MsgWelcome))
	require.NoError(t, err)
	assert.Equal(t, 1, w.Slot)
	assert.Equal(t, 100, w.TickHz)
	assert.NotNil(t, m.Get(w.SessionID))

	st, err := protocol.DecodePayload[protocol.State](next(t, c, protocol.MsgState))
	require.NoError(t, err)
	assert.Equal(t, "ws", st.Player.Name)
}

func TestClientCommandsReachSession(t *testing.T) {
	ts, _ := newTestServer(t, save.NewMemoryStore())
	c := dial(t, ts)
	send(t, c, protocol.MsgHello, protocol.Hello{V: protocol.Version, Slot: 2})
	next(t, c, protocol.MsgWelcome)

	send(t, c, protocol.MsgPause, protocol.Pause{Paused: true})
	for {
		st, err := protocol.DecodePayload[protocol.State](next(t, c, protocol.MsgState))
		require.NoError(t, err)
		if st.Phase == "paused" {
			break
		}
	}

	send(t, c, protocol.MsgSave, protocol.Save{})
	saved, err := protocol.DecodePayload[protocol.Saved](next(t, c, protocol.MsgSaved))
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Slot)

	send(t, c, protocol.MsgBuy, protocol.Buy{Upgrade: "speed"})
	e, err := protocol.DecodePayload[protocol.Error](next(t, c, protocol.MsgError))
	require.NoError(t, err)
	assert.Equal(t, session.ErrShopClosed.Error(), e.Msg)
}

func TestHelloRequired(t *testing.T) {
	ts, m := newTestServer(t, nil)
	c := dial(t, ts)
	send(t, c, protocol.MsgInput, protocol.Input{TX: 1})

	e, err := protocol.DecodePayload[protocol.Error](next(t, c, protocol.MsgError))
	require.NoError(t, err)
	assert.Contains(t, e.Msg, "expected hello")
	assert.Empty(t, m.List())
}

func TestHelloVersionMismatch(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	c := dial(t, ts)
	send(t, c, protocol.MsgHello, protocol.Hello{V: protocol.Version + 1})

	e, err := protocol.DecodePayload[protocol.Error](next(t, c, protocol.MsgError))
	require.NoError(t, err)
	assert.Contains(t, e.Msg, "not supported")
}

func TestDisconnectEndsSession(t *testing.T) {
	ts, m := newTestServer(t, nil)
	c := dial(t, ts)
	send(t, c, protocol.MsgHello, protocol.Hello{V: protocol.Version})
	w, err := protocol.DecodePayload[protocol.Welcome](next(t, c, protocol.MsgWelcome))
	require.NoError(t, err)

	c.Close()
	assert.Eventually(t, func() bool { return m.Get(w.SessionID) == nil }, 2*time.Second, 10*time.Millisecond)
}

func TestCommandMapping(t *testing.T) {
	env := func(typ, p string) protocol.Envelope {
		return protocol.Envelope{T: typ, P: json.RawMessage(p)}
	}
	cmd, err := command(env(protocol.MsgInput, `{"tx":3,"ty":4,"boost":true}`))
	require.NoError(t, err)
	assert.Equal(t, session.Input{TargetX: 3, TargetY: 4, Boost: true}, cmd)

	cmd, err = command(env(protocol.MsgBuy, `{"upgrade":"stamina"}`))
	require.NoError(t, err)
	assert.Equal(t, session.Purchase{Upgrade: game.UpgradeStamina}, cmd)

	cmd, err = command(env(protocol.MsgOpenShop, `{"open":true}`))
	require.NoError(t, err)
	assert.Equal(t, session.SetShop{Open: true}, cmd)

	cmd, err = command(env(protocol.MsgRestart, ``))
	require.NoError(t, err)
	assert.Equal(t, session.Restart{}, cmd)

	_, err = command(env("teleport", `{}`))
	assert.ErrorIs(t, err, ErrUnknownMessage)

	_, err = command(env(protocol.MsgViewport, `{"w":"wide"}`))
	assert.Error(t, err)
}

func TestSlotsEndpoint(t *testing.T) {
	store := save.NewMemoryStore()
	p := game.NewPlayer("saved")
	p.Money = 42
	require.NoError(t, store.Save(2, save.NewRecord(p, time.UnixMilli(1000))))
	ts, _ := newTestServer(t, store)

	res, err := http.Get(ts.URL + "/slots?n=1,2")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var infos []save.SlotInfo
	require.NoError(t, json.NewDecoder(res.Body).Decode(&infos))
	require.Len(t, infos, 2)
	assert.True(t, infos[0].Empty)
	assert.Equal(t, 42.0, infos[1].Money)

	bad, err := http.Get(ts.URL + "/slots?n=x")
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}
