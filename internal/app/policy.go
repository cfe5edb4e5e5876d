package app

import "github.com/huddlekit/huddle/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

type Policy interface {
	OnBackPressure(room core.RoomService, member core.MemberSession) BackpressureAction
}

// SimplePolicy drops frames for slow consumers. Signaling messages are
// fire-and-forget; a stalled client recovers from the next roster it
// receives, so kicking is not warranted here.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(room core.RoomService, member core.MemberSession) BackpressureAction {
	return DropFrame
}
