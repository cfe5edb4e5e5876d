package orch

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

// JoinResult carries everything the transport needs to announce a join:
// the pre-join roster for the joiner and the peers to notify.
type JoinResult struct {
	Room     domain.RoomID
	SID      core.SessionID
	Username string
	Roster   []core.MemberDTO
	Notes    string
	Peers    []core.MemberSnap
	// Departed is set when the join implied leaving a previous room
	// (duplicate join is treated as leave-then-join).
	Departed *LeaveResult
}

// LeaveResult describes a completed departure. Peers holds the members
// remaining in the room after the removal.
type LeaveResult struct {
	Room     domain.RoomID
	SID      core.SessionID
	Username string
	Peers    []core.MemberSnap
	Empty    bool
}

// ToggleResult describes a media flag change to broadcast.
type ToggleResult struct {
	Room     domain.RoomID
	SID      core.SessionID
	Username string
	Field    domain.MediaField
	Enabled  bool
	Peers    []core.MemberSnap
}

// NotesResult describes a shared-notes update to broadcast.
type NotesResult struct {
	Room  domain.RoomID
	SID   core.SessionID
	Text  string
	Peers []core.MemberSnap
}

// Join validates before it mutates: a name conflict leaves every piece
// of state exactly as it was, including membership in a previous room.
func (o *Orchestrator) Join(sid core.SessionID, roomID domain.RoomID, name string) (*JoinResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Names are stored trimmed, so conflicts are checked on the
	// trimmed form too.
	name = strings.TrimSpace(name)
	sess, ok := o.Registry.GetSession(sid)
	if !ok {
		return nil, core.NewCoreError(core.ErrCodeNoSession, "no live session")
	}
	if err := domain.ValidateName(name); err != nil {
		return nil, core.NewCoreError(core.ErrCodeEmptyName, err.Error())
	}
	if room, ok := o.Rooms.Get(roomID); ok && room.NameTaken(name, sid) {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Str("name", name).Msg("join rejected, name taken")
		return nil, core.NewCoreError(core.ErrCodeNameConflict, "display name already in use")
	}

	res := &JoinResult{Room: roomID, SID: sid, Username: name}
	if _, _, ok := o.Registry.RoomOf(sid); ok {
		res.Departed = o.leaveLocked(sid)
	}

	if err := o.Registry.UpdateUsername(sid, name); err != nil {
		return nil, core.NewCoreError(core.ErrCodeEmptyName, err.Error())
	}
	res.Roster, res.Notes = o.Rooms.AddMember(roomID, sid, sess)
	o.Registry.UpdateRoom(sid, roomID)

	if room, ok := o.Rooms.Get(roomID); ok {
		for _, snap := range room.Sessions() {
			if snap.SID != sid {
				res.Peers = append(res.Peers, snap)
			}
		}
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Str("name", name).Msg("joined room")
	return res, nil
}

// Leave removes the session from its current room. The second return is
// false when the session was not in any room, which makes the operation
// idempotent: a disconnect racing an explicit leave notifies peers once.
func (o *Orchestrator) Leave(sid core.SessionID) (*LeaveResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	res := o.leaveLocked(sid)
	return res, res != nil
}

// Disconnect is transport-initiated leave plus teardown of the binding.
// Any relay resolving to this sid afterwards is a drop.
func (o *Orchestrator) Disconnect(sid core.SessionID) (*LeaveResult, bool) {
	o.mu.Lock()
	res := o.leaveLocked(sid)
	o.mu.Unlock()

	o.Registry.Cancel(sid)
	o.Registry.Unbind(sid)
	return res, res != nil
}

func (o *Orchestrator) leaveLocked(sid core.SessionID) *LeaveResult {
	roomID, _, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil
	}
	username := o.Registry.Username(sid)
	o.Registry.ClearRoom(sid)

	removed, empty := o.Rooms.RemoveMember(roomID, sid)
	if !removed {
		return nil
	}
	res := &LeaveResult{Room: roomID, SID: sid, Username: username, Empty: empty}
	if !empty {
		if room, ok := o.Rooms.Get(roomID); ok {
			res.Peers = room.Sessions()
		}
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("left room")
	return res
}

// Toggle flips a media flag. Sessions outside a room are ignored.
func (o *Orchestrator) Toggle(sid core.SessionID, field domain.MediaField) (*ToggleResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	roomID, _, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil, false
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return nil, false
	}
	enabled, ok := room.ToggleMember(sid, field)
	if !ok {
		return nil, false
	}
	res := &ToggleResult{
		Room:     roomID,
		SID:      sid,
		Username: o.Registry.Username(sid),
		Field:    field,
		Enabled:  enabled,
	}
	for _, snap := range room.Sessions() {
		if snap.SID != sid {
			res.Peers = append(res.Peers, snap)
		}
	}
	log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("field", string(field)).Bool("enabled", enabled).Msg("media toggled")
	return res, true
}

// SetNotes stores the room's shared notes, last writer wins.
func (o *Orchestrator) SetNotes(sid core.SessionID, text string) (*NotesResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	roomID, _, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil, false
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return nil, false
	}
	room.SetNotes(text)
	res := &NotesResult{Room: roomID, SID: sid, Text: text}
	for _, snap := range room.Sessions() {
		if snap.SID != sid {
			res.Peers = append(res.Peers, snap)
		}
	}
	return res, true
}
