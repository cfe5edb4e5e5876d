package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

// PeerInRoom resolves a targeted relay: the target must currently share
// a room with the sender. A false return means drop; signaling races
// with disconnects are expected and never surfaced to the sender.
func (o *Orchestrator) PeerInRoom(sid, target core.SessionID) (core.MemberSession, bool) {
	roomID, _, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil, false
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return nil, false
	}
	peer, ok := room.Member(target)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("target", string(target)).Msg("relay target gone, dropping")
		return nil, false
	}
	return peer, true
}

// RoomPeers returns every member of the sender's room, sender included.
// Used for room-wide relays such as chat and pin notifications.
func (o *Orchestrator) RoomPeers(sid core.SessionID) ([]core.MemberSnap, domain.RoomID, bool) {
	roomID, _, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil, "", false
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return nil, "", false
	}
	return room.Sessions(), roomID, true
}
