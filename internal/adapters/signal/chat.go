package signal

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
)

const maxChatMessageLen = 4000

func (ctl *SignalWSController) handleChat(
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	type chatPayload struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad chat payload")
		ctl.sendError(conn, core.ErrCodeBadPayload, "bad chat payload")
		return
	}
	if p.Text == "" {
		return
	}
	if len(p.Text) > maxChatMessageLen {
		// Cut on a rune boundary so a multibyte character straddling
		// the limit is dropped whole rather than mangled.
		cut := maxChatMessageLen
		for cut > 0 && !utf8.RuneStart(p.Text[cut]) {
			cut--
		}
		p.Text = p.Text[:cut]
	}

	// Chat echoes to the whole room, sender included.
	peers, roomID, ok := ctl.Orch.RoomPeers(sid)
	if !ok {
		return
	}
	ctl.broadcastPeers(roomID, peers, struct {
		Type     string         `json:"type"`
		From     core.SessionID `json:"from"`
		FromName string         `json:"from_name"`
		Text     string         `json:"text"`
	}{
		Type:     "chat",
		From:     sid,
		FromName: ctl.Orch.Registry.Username(sid),
		Text:     p.Text,
	})
}

func (ctl *SignalWSController) handleNotes(
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	type notesPayload struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	var p notesPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad notes payload")
		ctl.sendError(conn, core.ErrCodeBadPayload, "bad notes payload")
		return
	}

	res, ok := ctl.Orch.SetNotes(sid, p.Text)
	if !ok {
		return
	}
	ctl.broadcastPeers(res.Room, res.Peers, struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{
		Type: "notes_synced",
		Text: res.Text,
	})
}

func (ctl *SignalWSController) handlePin(
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	type pinPayload struct {
		Type   string `json:"type"`
		Target string `json:"target"`
	}
	var p pinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Target == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad pin payload")
		ctl.sendError(conn, core.ErrCodeBadPayload, "bad pin payload")
		return
	}

	// Pin state is client-local; the server only tells the room who
	// was pinned, sender included.
	peers, roomID, ok := ctl.Orch.RoomPeers(sid)
	if !ok {
		return
	}
	ctl.broadcastPeers(roomID, peers, struct {
		Type string         `json:"type"`
		SID  core.SessionID `json:"sid"`
	}{
		Type: "pinned",
		SID:  core.SessionID(p.Target),
	})
}
