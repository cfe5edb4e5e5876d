package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

func (ctl *SignalWSController) handleToggleMedia(
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	type togglePayload struct {
		Type  string `json:"type"`
		Field string `json:"field"`
	}
	var p togglePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad toggle payload")
		ctl.sendError(conn, core.ErrCodeBadPayload, "bad toggle payload")
		return
	}
	field := domain.MediaField(p.Field)
	if field != domain.FieldAudio && field != domain.FieldVideo {
		ctl.sendError(conn, core.ErrCodeBadPayload, "field must be audio or video")
		return
	}

	res, ok := ctl.Orch.Toggle(sid, field)
	if !ok {
		// Toggle outside a room is a no-op, not an error.
		return
	}
	ctl.broadcastPeers(res.Room, res.Peers, struct {
		Type     string         `json:"type"`
		SID      core.SessionID `json:"sid"`
		Username string         `json:"username"`
		Field    string         `json:"field"`
		Enabled  bool           `json:"enabled"`
	}{
		Type:     "media_toggled",
		SID:      res.SID,
		Username: res.Username,
		Field:    string(res.Field),
		Enabled:  res.Enabled,
	})
}

func (ctl *SignalWSController) handleToggleScreen(
	sid core.SessionID,
	_ core.SignalConnection,
) {
	res, ok := ctl.Orch.Toggle(sid, domain.FieldScreen)
	if !ok {
		return
	}
	ctl.broadcastPeers(res.Room, res.Peers, struct {
		Type     string         `json:"type"`
		SID      core.SessionID `json:"sid"`
		Username string         `json:"username"`
		Sharing  bool           `json:"sharing"`
	}{
		Type:     "screen_toggled",
		SID:      res.SID,
		Username: res.Username,
		Sharing:  res.Enabled,
	})
}
