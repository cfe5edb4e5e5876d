package orch

import (
	"errors"

	"github.com/huddlekit/huddle/internal/app"
	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

type fakeConn struct {
	frames chan core.Frame
}

func newFakeConn() *fakeConn {
	return &fakeConn{frames: make(chan core.Frame, 32)}
}

func (c *fakeConn) TrySend(f core.Frame) error {
	select {
	case c.frames <- f:
		return nil
	default:
		return errors.New("backpressure")
	}
}

func (c *fakeConn) Close() {}

func newTestOrchestrator() *Orchestrator {
	return &Orchestrator{
		Registry: app.NewRegistry(),
		Rooms:    app.NewRoomManager(),
		Policy:   app.SimplePolicy{},
	}
}

// connect simulates the transport binding a fresh session.
func connect(o *Orchestrator, sid core.SessionID) *fakeConn {
	conn := newFakeConn()
	user := o.Registry.GetOrCreateUser(sid)
	sess := core.NewMemberSession(domain.NewMember(user)).UpdateSignal(conn)
	o.Registry.BindSignal(sid, sess, nil)
	return conn
}

func peerSIDs(peers []core.MemberSnap) []core.SessionID {
	out := make([]core.SessionID, 0, len(peers))
	for _, p := range peers {
		out = append(out, p.SID)
	}
	return out
}

func containsSID(sids []core.SessionID, want core.SessionID) bool {
	for _, sid := range sids {
		if sid == want {
			return true
		}
	}
	return false
}
