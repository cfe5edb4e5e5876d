package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/app/orch"
	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

func memberLeftEvent(res *orch.LeaveResult) any {
	return struct {
		Type     string         `json:"type"`
		SID      core.SessionID `json:"sid"`
		Username string         `json:"username"`
	}{
		Type:     "member_left",
		SID:      res.SID,
		Username: res.Username,
	}
}

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	type joinPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
		Name string `json:"name"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, core.ErrCodeBadPayload, "bad join payload")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.Room).Str("name", p.Name).Msg("join")
	res, err := ctl.Orch.Join(sid, domain.RoomID(p.Room), p.Name)
	if err != nil {
		var ce *core.CoreError
		if errors.As(err, &ce) {
			ctl.sendError(conn, ce.Code, ce.Message)
		} else {
			ctl.sendError(conn, core.ErrCodeBadPayload, err.Error())
		}
		return
	}

	// Departure from the previous room when this was a re-join.
	if res.Departed != nil {
		ctl.broadcastPeers(res.Departed.Room, res.Departed.Peers, memberLeftEvent(res.Departed))
	}

	// Roster snapshot goes to the joiner only, before anyone else
	// hears about the join.
	ctl.sendJSON(conn, struct {
		Type    string           `json:"type"`
		Room    domain.RoomID    `json:"room"`
		SID     core.SessionID   `json:"sid"`
		Members []core.MemberDTO `json:"members"`
		Notes   string           `json:"notes,omitempty"`
		Count   int              `json:"count"`
	}{
		Type:    "room_state",
		Room:    res.Room,
		SID:     res.SID,
		Members: res.Roster,
		Notes:   res.Notes,
		Count:   len(res.Roster) + 1,
	})

	ctl.broadcastPeers(res.Room, res.Peers, struct {
		Type     string         `json:"type"`
		SID      core.SessionID `json:"sid"`
		Username string         `json:"username"`
	}{
		Type:     "member_joined",
		SID:      res.SID,
		Username: res.Username,
	})
}

// handleLeave removes the session from its room; the connection stays up.
func (ctl *SignalWSController) handleLeave(
	sid core.SessionID,
	conn core.SignalConnection,
) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("leave")
	res, ok := ctl.Orch.Leave(sid)

	ctl.sendJSON(conn, struct {
		Type string `json:"type"`
	}{Type: "left"})

	if ok {
		ctl.broadcastPeers(res.Room, res.Peers, memberLeftEvent(res))
	}
}
