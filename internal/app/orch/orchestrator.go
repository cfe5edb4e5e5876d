package orch

import (
	"sync"

	"github.com/huddlekit/huddle/internal/app"
	"github.com/huddlekit/huddle/internal/core"
)

// Orchestrator coordinates the registry and the room directory. Lifecycle
// operations (Join/Leave/Disconnect/Toggle) are serialized by mu so that
// roster computation and membership mutation happen atomically per event;
// relay resolution and broadcasts only take read paths.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomDirectory
	Policy   app.Policy

	mu sync.Mutex
}

// HandleBackpressure applies the configured policy to slow consumers
// reported by a room fan-out. Kicked members come back as departures so
// the transport can announce them; a kick must not lose the member-left
// notification.
func (o *Orchestrator) HandleBackpressure(room core.RoomService, res core.PublishResult) []*LeaveResult {
	if o.Policy == nil {
		return nil
	}
	var kicked []*LeaveResult
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			for _, snap := range room.Sessions() {
				if snap.Session == slow {
					if dep, ok := o.Disconnect(snap.SID); ok {
						kicked = append(kicked, dep)
					}
				}
			}
		case app.DropFrame, app.NoAction:
		}
	}
	return kicked
}
