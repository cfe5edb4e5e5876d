package domain

type RoomID string

type Room struct {
	ID RoomID
	// Notes is the shared free-text blob, last writer wins.
	// Guarded by the room service that owns this record.
	Notes string
}
