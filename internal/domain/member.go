package domain

// MediaField names a toggleable media flag on a member.
type MediaField string

const (
	FieldAudio  MediaField = "audio"
	FieldVideo  MediaField = "video"
	FieldScreen MediaField = "screen"
)

// Member represents user's participation meta for a room.
// No transport or lifecycle logic here; flag access is guarded
// by the owning room.
type Member struct {
	User          *User
	AudioEnabled  bool
	VideoEnabled  bool
	ScreenSharing bool
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(user *User) *Member {
	m := &Member{User: user}
	m.Reset()
	return m
}

// Reset returns the flags to their join-time defaults.
func (m *Member) Reset() {
	m.AudioEnabled = true
	m.VideoEnabled = true
	m.ScreenSharing = false
}

// Toggle flips the named flag and returns its new value.
func (m *Member) Toggle(f MediaField) bool {
	switch f {
	case FieldAudio:
		m.AudioEnabled = !m.AudioEnabled
		return m.AudioEnabled
	case FieldVideo:
		m.VideoEnabled = !m.VideoEnabled
		return m.VideoEnabled
	case FieldScreen:
		m.ScreenSharing = !m.ScreenSharing
		return m.ScreenSharing
	}
	return false
}
