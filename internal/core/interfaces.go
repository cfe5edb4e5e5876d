package core

import "github.com/huddlekit/huddle/internal/domain"

// Frame is a raw signaling payload handed to a transport as-is.
type Frame []byte

// SessionID identifies one live connection. Issued by the transport
// layer, stable for the connection lifetime, never reused.
type SessionID string

// SignalConnection abstracts for a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds domain.Member and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	Meta() *domain.Member
	Signal() SignalConnection
	UpdateSignal(SignalConnection) MemberSession
}

// PublishResult reports fan-out delivery stats so the orchestrator can
// apply a backpressure policy to the dropped sessions.
type PublishResult struct {
	SentTo  int
	Dropped []MemberSession
}

// MemberDTO is a read-only view for roster snapshots (no transport fields).
type MemberDTO struct {
	SID           SessionID `json:"sid"`
	Username      string    `json:"username"`
	AudioEnabled  bool      `json:"audio_enabled"`
	VideoEnabled  bool      `json:"video_enabled"`
	ScreenSharing bool      `json:"screen_sharing"`
}

// MemberSnap pairs a session id with its live session for fan-out.
type MemberSnap struct {
	SID     SessionID
	Session MemberSession
}

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	Room() *domain.Room
	MemberCount() int
	MembersSnapshot() []MemberDTO
	Sessions() []MemberSnap

	// AddMember inserts a member and returns the roster as it was
	// just before the insert, in join order. The returned snapshot
	// never contains the joiner itself.
	AddMember(sid SessionID, ms MemberSession) []MemberDTO
	// RemoveMember reports whether the member was actually present.
	RemoveMember(sid SessionID) bool
	Member(sid SessionID) (MemberSession, bool)

	// NameTaken reports whether another member (not self) already
	// holds the given display name.
	NameTaken(name string, self SessionID) bool

	// ToggleMember flips a media flag on a member, returning the new
	// value. ok is false when the member is not in the room.
	ToggleMember(sid SessionID, f domain.MediaField) (enabled bool, ok bool)

	Notes() string
	SetNotes(text string)
}

type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"member_count"`
}

// RoomDirectory tracks live rooms. Rooms are created implicitly on the
// first AddMember and garbage collected the instant their member set
// becomes empty; an empty room is never observable through Get or List.
type RoomDirectory interface {
	Get(id domain.RoomID) (RoomService, bool)
	Exists(id domain.RoomID) bool
	List() []RoomInfo

	AddMember(id domain.RoomID, sid SessionID, ms MemberSession) (roster []MemberDTO, notes string)
	// RemoveMember removes sid from the room and deletes the room in
	// the same critical section when it became empty.
	RemoveMember(id domain.RoomID, sid SessionID) (removed bool, empty bool)
}
