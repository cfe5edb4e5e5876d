package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, sid core.SessionID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctl.onDisconnect(sid)
		c.Close()
	}()

	pongWait := ctl.PingPeriod * 10 / 9
	c.conn.SetReadLimit(ctl.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.handleSignal(sid, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(sid core.SessionID, c core.SignalConnection, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "join":
		ctl.handleJoin(sid, c, data)
	case "leave":
		ctl.handleLeave(sid, c)
	case "signal":
		ctl.handleForward(sid, c, data)
	case "signal_reply":
		ctl.handleForwardReply(sid, c, data)
	case "toggle_media":
		ctl.handleToggleMedia(sid, c, data)
	case "toggle_screen":
		ctl.handleToggleScreen(sid, c)
	case "chat":
		ctl.handleChat(sid, c, data)
	case "notes":
		ctl.handleNotes(sid, c, data)
	case "pin":
		ctl.handlePin(sid, c, data)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

// onDisconnect runs exactly one departure notification even when an
// explicit leave already happened; the orchestrator reports whether
// this call actually removed membership.
func (ctl *SignalWSController) onDisconnect(sid core.SessionID) {
	res, ok := ctl.Orch.Disconnect(sid)
	if !ok {
		return
	}
	ctl.broadcastPeers(res.Room, res.Peers, memberLeftEvent(res))
}

func encode(v any) (core.Frame, error) {
	return json.Marshal(v)
}

func (ctl *SignalWSController) sendJSON(c core.SignalConnection, v any) {
	b, err := encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(c core.SignalConnection, code, msg string) {
	ctl.sendJSON(c, struct {
		Type  string `json:"type"`
		Code  string `json:"code"`
		Error string `json:"error"`
	}{
		Type:  "error",
		Code:  code,
		Error: msg,
	})
}
