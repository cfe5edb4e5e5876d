package core

// Error codes surfaced to clients as error events.
const (
	ErrCodeNameConflict = "name_conflict"
	ErrCodeEmptyName    = "empty_name"
	ErrCodeBadPayload   = "bad_payload"
	ErrCodeNoSession    = "no_session"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func NewCoreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
