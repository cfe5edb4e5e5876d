package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/domain"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	room  *domain.Room
	mu    sync.RWMutex
	order []SessionID
	bySID map[SessionID]MemberSession
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:  room,
		bySID: make(map[SessionID]MemberSession),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySID)
}

func (r *roomImpl) AddMember(sid SessionID, ms MemberSession) []MemberDTO {
	r.mu.Lock()
	defer r.mu.Unlock()
	roster := r.snapshotLocked()
	if _, ok := r.bySID[sid]; !ok {
		r.order = append(r.order, sid)
	}
	ms.Meta().Reset()
	r.bySID[sid] = ms
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(sid)).Msg("member added")
	return roster
}

func (r *roomImpl) RemoveMember(sid SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySID[sid]; !ok {
		return false
	}
	delete(r.bySID, sid)
	for i, id := range r.order {
		if id == sid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(sid)).Msg("member removed")
	return true
}

func (r *roomImpl) Member(sid SessionID) (MemberSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ms, ok := r.bySID[sid]
	return ms, ok
}

func (r *roomImpl) NameTaken(name string, self SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for sid, ms := range r.bySID {
		if sid == self {
			continue
		}
		if ms.Meta().User.Username == name {
			return true
		}
	}
	return false
}

func (r *roomImpl) ToggleMember(sid SessionID, f domain.MediaField) (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ms, ok := r.bySID[sid]
	if !ok {
		return false, false
	}
	return ms.Meta().Toggle(f), true
}

func (r *roomImpl) Notes() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.room.Notes
}

func (r *roomImpl) SetNotes(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.room.Notes = text
}

func (r *roomImpl) MembersSnapshot() []MemberDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *roomImpl) Sessions() []MemberSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MemberSnap, 0, len(r.order))
	for _, sid := range r.order {
		out = append(out, MemberSnap{SID: sid, Session: r.bySID[sid]})
	}
	return out
}

func (r *roomImpl) snapshotLocked() []MemberDTO {
	out := make([]MemberDTO, 0, len(r.order))
	for _, sid := range r.order {
		meta := r.bySID[sid].Meta()
		out = append(out, MemberDTO{
			SID:           sid,
			Username:      meta.User.Username,
			AudioEnabled:  meta.AudioEnabled,
			VideoEnabled:  meta.VideoEnabled,
			ScreenSharing: meta.ScreenSharing,
		})
	}
	return out
}
