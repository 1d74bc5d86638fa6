package state

// Session stores conversation state for one user: the current form step
// token, collected field values, and the inline-keyboard tracking slots
// used by the keyboard cleanup middleware. LastInlineID is the message id
// of the interactive message shown on a previous turn; NextInlineID is the
// hand-off slot for a message sent during the current turn, promoted to
// LastInlineID once the wrapping middleware finishes.
type Session struct {
	StepToken    string
	Fields       map[string]string
	LastInlineID int
	NextInlineID int
}

// InFlow reports whether the session currently points at a form step.
func (s *Session) InFlow() bool {
	return s != nil && s.StepToken != ""
}

// Manager owns per-user sessions. Implementations must be safe for
// concurrent use across users; a single user's updates are assumed to be
// handled one at a time by the transport.
type Manager interface {
	// StepToken returns the current step token, or "" when the user is
	// not in a flow.
	StepToken(userID int64) string
	SetStep(userID int64, token string)
	InFlow(userID int64) bool

	// UpdateData merges the given fields into the session.
	UpdateData(userID int64, fields map[string]string)
	// Data returns a copy of the collected fields.
	Data(userID int64) map[string]string

	// Clear resets the step and drops all collected fields. Keyboard
	// tracking slots survive so the cleanup middleware can still strip a
	// stale keyboard after a cancel.
	Clear(userID int64)

	LastInline(userID int64) int
	SetLastInline(userID int64, messageID int)
	SetNextInline(userID int64, messageID int)
	// TakeNextInline returns the pending inline message id and resets the
	// slot to zero.
	TakeNextInline(userID int64) int
}
