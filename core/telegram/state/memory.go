package state

import "sync"

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs an in-memory Manager implementation.
// Sessions are created lazily on first write and are lost on restart.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
	}
}

func (m *memoryManager) session(userID int64) *Session {
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{Fields: make(map[string]string)}
		m.sessions[userID] = sess
	}
	return sess
}

// StepToken returns the current step token, or "" for users not in a flow.
func (m *memoryManager) StepToken(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.StepToken
	}
	return ""
}

// SetStep stores the current step token, creating the session if needed.
func (m *memoryManager) SetStep(userID int64, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).StepToken = token
}

// InFlow reports whether the user currently has an active step.
func (m *memoryManager) InFlow(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[userID].InFlow()
}

// UpdateData merges fields into the user's collected values.
func (m *memoryManager) UpdateData(userID int64, fields map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.session(userID)
	for k, v := range fields {
		sess.Fields[k] = v
	}
}

// Data returns a copy of the collected fields for the user.
func (m *memoryManager) Data(userID int64) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string)
	if sess, ok := m.sessions[userID]; ok {
		for k, v := range sess.Fields {
			out[k] = v
		}
	}
	return out
}

// Clear resets the step and field map but keeps keyboard tracking slots.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return
	}
	sess.StepToken = ""
	sess.Fields = make(map[string]string)
}

// LastInline returns the tracked interactive message id, 0 when none.
func (m *memoryManager) LastInline(userID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.LastInlineID
	}
	return 0
}

// SetLastInline records the tracked interactive message id (0 clears it).
func (m *memoryManager) SetLastInline(userID int64, messageID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).LastInlineID = messageID
}

// SetNextInline records a freshly sent interactive message id for hand-off.
func (m *memoryManager) SetNextInline(userID int64, messageID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).NextInlineID = messageID
}

// TakeNextInline pops the pending inline id so it can be promoted to last.
func (m *memoryManager) TakeNextInline(userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return 0
	}
	id := sess.NextInlineID
	sess.NextInlineID = 0
	return id
}
