package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/app/orch"
	"github.com/huddlekit/huddle/internal/config"
	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type SignalWSController struct {
	Orch       *orch.Orchestrator
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	return &SignalWSController{
		Orch:       o,
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// broadcastPeers fans an event out to an already-resolved peer set and
// applies the backpressure policy to anyone who could not take it.
func (ctl *SignalWSController) broadcastPeers(roomID domain.RoomID, peers []core.MemberSnap, v any) {
	res := core.PublishResult{}
	frame, err := encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("broadcast marshal")
		return
	}
	for _, snap := range peers {
		if err := snap.Session.Signal().TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, snap.Session)
			continue
		}
		res.SentTo++
	}
	if len(res.Dropped) > 0 {
		if room, ok := ctl.Orch.Rooms.Get(roomID); ok {
			for _, dep := range ctl.Orch.HandleBackpressure(room, res) {
				ctl.broadcastPeers(dep.Room, dep.Peers, memberLeftEvent(dep))
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	// The session id is minted per upgrade, never taken from the client
	// token: a second tab or a reconnect sharing the cookie must not be
	// able to tear down its sibling's binding.
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("ct", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	user := ctl.Orch.Registry.GetOrCreateUser(sid)
	meta := domain.NewMember(user)
	sess := core.NewMemberSession(meta).UpdateSignal(conn)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.BindSignal(sid, sess, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
