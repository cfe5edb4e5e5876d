package app

import (
	"testing"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

func bindTestSession(r *Registry, sid core.SessionID) core.MemberSession {
	user := r.GetOrCreateUser(sid)
	sess := core.NewMemberSession(domain.NewMember(user))
	r.BindSignal(sid, sess, nil)
	return sess
}

func TestRegistryBindLookupUnbind(t *testing.T) {
	reg := NewRegistry()
	sess := bindTestSession(reg, "s1")

	got, ok := reg.GetSession("s1")
	if !ok || got != sess {
		t.Fatalf("lookup after bind failed")
	}

	reg.Unbind("s1")
	if _, ok := reg.GetSession("s1"); ok {
		t.Fatalf("lookup after unbind should miss")
	}

	// Unbind of an unknown sid is a no-op, disconnect races leave.
	reg.Unbind("s1")
	reg.Unbind("never-bound")
}

func TestRegistryRoomAssociation(t *testing.T) {
	reg := NewRegistry()
	bindTestSession(reg, "s1")

	if _, _, ok := reg.RoomOf("s1"); ok {
		t.Fatalf("fresh session should have no room")
	}
	if !reg.UpdateRoom("s1", "r1") {
		t.Fatalf("update room for bound session should succeed")
	}
	roomID, _, ok := reg.RoomOf("s1")
	if !ok || roomID != "r1" {
		t.Fatalf("expected room r1, got %q ok=%v", roomID, ok)
	}

	reg.ClearRoom("s1")
	if _, _, ok := reg.RoomOf("s1"); ok {
		t.Fatalf("room association should be cleared")
	}

	if reg.UpdateRoom("ghost", "r1") {
		t.Fatalf("update room for unknown session should fail")
	}
}

func TestRegistryUsername(t *testing.T) {
	reg := NewRegistry()
	bindTestSession(reg, "s1")

	if err := reg.UpdateUsername("s1", "alice"); err != nil {
		t.Fatalf("set username: %v", err)
	}
	if got := reg.Username("s1"); got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}
	if err := reg.UpdateUsername("s1", ""); err == nil {
		t.Fatalf("empty username must be rejected")
	}
	if got := reg.Username("s1"); got != "alice" {
		t.Fatalf("rejected rename must not mutate, got %q", got)
	}
}
