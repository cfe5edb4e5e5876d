package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

// RoomManagerImpl implements core.RoomDirectory. Rooms live only while
// they have members: creation happens inside AddMember and deletion
// inside RemoveMember, both under the manager lock, so no caller can
// observe a memberless room.
type RoomManagerImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]core.RoomService
}

func NewRoomManager() core.RoomDirectory {
	return &RoomManagerImpl{rooms: make(map[domain.RoomID]core.RoomService)}
}

func (f *RoomManagerImpl) Get(id domain.RoomID) (core.RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *RoomManagerImpl) Exists(id domain.RoomID) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.rooms[id]
	return ok
}

func (f *RoomManagerImpl) AddMember(id domain.RoomID, sid core.SessionID, ms core.MemberSession) ([]core.MemberDTO, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		room = core.NewRoomService(&domain.Room{ID: id})
		f.rooms[id] = room
		log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room created")
	}
	roster := room.AddMember(sid, ms)
	return roster, room.Notes()
}

func (f *RoomManagerImpl) RemoveMember(id domain.RoomID, sid core.SessionID) (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return false, false
	}
	removed := room.RemoveMember(sid)
	if room.MemberCount() > 0 {
		return removed, false
	}
	delete(f.rooms, id)
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room deleted")
	return removed, true
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for id, r := range f.rooms {
		out = append(out, core.RoomInfo{ID: id, MemberCount: r.MemberCount()})
	}
	return out
}
