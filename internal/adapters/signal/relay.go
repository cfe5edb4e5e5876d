package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
)

// Targeted relay of connection-setup payloads (offers, answers, ICE).
// The payload is an opaque blob: it is forwarded byte-for-byte, plus the
// sender's identity, and never inspected here.

type forwardPayload struct {
	Type    string          `json:"type"`
	Target  string          `json:"target"`
	Payload json.RawMessage `json:"payload"`
}

func (ctl *SignalWSController) handleForward(
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	var p forwardPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Target == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad signal payload")
		ctl.sendError(conn, core.ErrCodeBadPayload, "bad signal payload")
		return
	}

	peer, ok := ctl.Orch.PeerInRoom(sid, core.SessionID(p.Target))
	if !ok {
		// Expected race with a disconnect; nothing to tell the sender.
		return
	}
	ctl.sendJSON(peer.Signal(), struct {
		Type     string          `json:"type"`
		From     core.SessionID  `json:"from"`
		FromName string          `json:"from_name"`
		Payload  json.RawMessage `json:"payload"`
	}{
		Type:     "signal",
		From:     sid,
		FromName: ctl.Orch.Registry.Username(sid),
		Payload:  p.Payload,
	})
}

func (ctl *SignalWSController) handleForwardReply(
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	var p forwardPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Target == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad signal_reply payload")
		ctl.sendError(conn, core.ErrCodeBadPayload, "bad signal_reply payload")
		return
	}

	peer, ok := ctl.Orch.PeerInRoom(sid, core.SessionID(p.Target))
	if !ok {
		return
	}
	ctl.sendJSON(peer.Signal(), struct {
		Type    string          `json:"type"`
		From    core.SessionID  `json:"from"`
		Payload json.RawMessage `json:"payload"`
	}{
		Type:    "signal_reply",
		From:    sid,
		Payload: p.Payload,
	})
}
