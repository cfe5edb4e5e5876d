package core

import (
	"testing"

	"github.com/huddlekit/huddle/internal/domain"
)

type fakeConn struct {
	frames chan Frame
}

func newFakeConn() *fakeConn {
	return &fakeConn{frames: make(chan Frame, 32)}
}

func (c *fakeConn) TrySend(f Frame) error {
	c.frames <- f
	return nil
}

func (c *fakeConn) Close() {}

func newTestSession(name string) MemberSession {
	user := domain.NewUser(name + "-sid")
	_ = user.SetUsername(name)
	return NewMemberSession(domain.NewMember(user)).UpdateSignal(newFakeConn())
}

func TestRoomAddMemberReturnsPriorRoster(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})

	first := room.AddMember("a", newTestSession("alice"))
	if len(first) != 0 {
		t.Fatalf("first joiner should see empty roster, got %d", len(first))
	}

	second := room.AddMember("b", newTestSession("bob"))
	if len(second) != 1 || second[0].Username != "alice" {
		t.Fatalf("second joiner should see [alice], got %+v", second)
	}
	for _, m := range second {
		if m.SID == "b" {
			t.Fatalf("roster snapshot must not contain the joiner")
		}
	}
	if !second[0].AudioEnabled || !second[0].VideoEnabled {
		t.Fatalf("media flags should default to enabled: %+v", second[0])
	}
}

func TestRoomRosterPreservesJoinOrder(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	room.AddMember("a", newTestSession("alice"))
	room.AddMember("b", newTestSession("bob"))
	room.AddMember("c", newTestSession("carol"))

	snap := room.MembersSnapshot()
	want := []SessionID{"a", "b", "c"}
	if len(snap) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(snap))
	}
	for i, sid := range want {
		if snap[i].SID != sid {
			t.Fatalf("roster out of join order at %d: %+v", i, snap)
		}
	}
}

func TestRoomRemoveMemberIdempotent(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	room.AddMember("a", newTestSession("alice"))

	if !room.RemoveMember("a") {
		t.Fatalf("first remove should report true")
	}
	if room.RemoveMember("a") {
		t.Fatalf("second remove should report false")
	}
	if room.MemberCount() != 0 {
		t.Fatalf("room should be empty")
	}
}

func TestRoomNameTaken(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	room.AddMember("a", newTestSession("alice"))

	if !room.NameTaken("alice", "b") {
		t.Fatalf("alice should be taken for another session")
	}
	if room.NameTaken("alice", "a") {
		t.Fatalf("a member does not conflict with its own name")
	}
	if room.NameTaken("carol", "b") {
		t.Fatalf("carol should be free")
	}
}

func TestRoomToggleMember(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	room.AddMember("a", newTestSession("alice"))

	enabled, ok := room.ToggleMember("a", domain.FieldVideo)
	if !ok || enabled {
		t.Fatalf("first video toggle should disable: enabled=%v ok=%v", enabled, ok)
	}
	enabled, ok = room.ToggleMember("a", domain.FieldVideo)
	if !ok || !enabled {
		t.Fatalf("second video toggle should re-enable: enabled=%v ok=%v", enabled, ok)
	}
	if _, ok := room.ToggleMember("ghost", domain.FieldAudio); ok {
		t.Fatalf("toggle for unknown member should report !ok")
	}
}

func TestRoomNotesLastWriterWins(t *testing.T) {
	room := NewRoomService(&domain.Room{ID: "r1"})
	room.SetNotes("draft one")
	room.SetNotes("draft two")
	if got := room.Notes(); got != "draft two" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}
