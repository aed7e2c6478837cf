package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"absorb/game"
	"absorb/protocol"
	"absorb/save"
	"absorb/session"
)

var ErrUnknownMessage = errors.New("unknown message type")

var defaultSlots = []int{1, 2, 3}

type Server struct {
	sessions *session.Manager
	store    save.Store
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewServer(m *session.Manager, store save.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		sessions: m,
		store:    store,
		log:      log,
		upgrader: websocket.Upgrader{
			// For dev, allow all origins. Lock this down in prod.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	mux.HandleFunc("GET /slots", s.slotsHandler)
	mux.HandleFunc("GET /sessions", s.sessionsHandler)
	return mux
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	// Upgrade HTTP -> WebSocket
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade", "err", err)
		return
	}
	conn := newWSConn(c)

	hello, err := s.readHello(conn)
	if err != nil {
		s.log.Info("bad hello", "remote", r.RemoteAddr, "err", err)
		s.reject(conn, err)
		return
	}

	sess := s.sessions.Open(conn, hello.Name, hello.Slot)
	log := s.log.With("session", sess.ID)
	log.Info("client joined", "remote", r.RemoteAddr, "slot", hello.Slot)
	go conn.pingLoop(sess.Done())

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			log.Debug("read", "err", err)
			break
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			log.Debug("bad envelope", "err", err)
			continue
		}
		cmd, err := command(env)
		if err != nil {
			log.Debug("bad message", "type", env.T, "err", err)
			s.sendError(conn, err)
			continue
		}
		if err := sess.Send(cmd); err != nil {
			break
		}
	}
	_ = sess.Send(session.Leave{})
}

func (s *Server) readHello(conn *wsConn) (protocol.Hello, error) {
	_, msg, err := conn.c.ReadMessage()
	if err != nil {
		return protocol.Hello{}, err
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	if env.T != protocol.MsgHello {
		return protocol.Hello{}, fmt.Errorf("expected %s, got %s", protocol.MsgHello, env.T)
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		return protocol.Hello{}, err
	}
	if hello.V != protocol.Version {
		return protocol.Hello{}, fmt.Errorf("protocol version %d not supported", hello.V)
	}
	if hello.Slot < 0 {
		return protocol.Hello{}, fmt.Errorf("%w: %d", save.ErrInvalidSlot, hello.Slot)
	}
	return hello, nil
}

func (s *Server) reject(conn *wsConn, err error) {
	s.sendError(conn, err)
	_ = conn.Close()
}

func (s *Server) sendError(conn *wsConn, err error) {
	b, encErr := protocol.Encode(protocol.MsgError, protocol.Error{Msg: err.Error()})
	if encErr != nil {
		return
	}
	_ = conn.Send(b)
}

// command turns a client message into a session command.
func command(env protocol.Envelope) (any, error) {
	switch env.T {
	case protocol.MsgInput:
		in, err := protocol.DecodePayload[protocol.Input](env)
		return session.Input{TargetX: in.TX, TargetY: in.TY, Boost: in.Boost}, err
	case protocol.MsgViewport:
		v, err := protocol.DecodePayload[protocol.Viewport](env)
		return session.Viewport{W: v.W, H: v.H}, err
	case protocol.MsgBuy:
		b, err := protocol.DecodePayload[protocol.Buy](env)
		return session.Purchase{Upgrade: game.UpgradeKind(b.Upgrade)}, err
	case protocol.MsgPause:
		p, err := protocol.DecodePayload[protocol.Pause](env)
		return session.SetPaused{Paused: p.Paused}, err
	case protocol.MsgOpenShop:
		o, err := protocol.DecodePayload[protocol.OpenShop](env)
		return session.SetShop{Open: o.Open}, err
	case protocol.MsgSave:
		return session.Save{}, nil
	case protocol.MsgRestart:
		return session.Restart{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, env.T)
}

// slotsHandler lists save slots, e.g. /slots?n=1,2,3.
func (s *Server) slotsHandler(w http.ResponseWriter, r *http.Request) {
	slots := defaultSlots
	if q := r.URL.Query().Get("n"); q != "" {
		slots = slots[:0:0]
		for _, part := range strings.Split(q, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 0 {
				http.Error(w, "bad slot list", http.StatusBadRequest)
				return
			}
			slots = append(slots, n)
		}
	}
	var infos []save.SlotInfo
	if s.store != nil {
		infos = s.store.List(slots...)
	}
	writeJSON(w, infos)
}

func (s *Server) sessionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.sessions.List())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
