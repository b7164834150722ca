// ABOUTME: Thread is a conversation: an id, a display title and ordered messages
// ABOUTME: The title may be set once, when the scope is resolved
package models

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultThreadTitle is shown until the thread is renamed
const DefaultThreadTitle = "Nova conversa"

// Thread holds the messages of one conversation. Safe for concurrent use.
type Thread struct {
	id       string
	title    string
	renamed  bool
	messages []Message
	mu       sync.RWMutex
}

// NewThread creates an empty thread with a fresh id
func NewThread() *Thread {
	return &Thread{
		id:    uuid.NewString(),
		title: DefaultThreadTitle,
	}
}

// ID returns the thread's opaque identifier
func (t *Thread) ID() string {
	return t.id
}

// Title returns the current display title
func (t *Thread) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// Renamed reports whether Rename has already taken effect
func (t *Thread) Renamed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.renamed
}

// Rename sets the title. Only the first call has any effect; it returns false afterwards.
func (t *Thread) Rename(title string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.renamed {
		return false
	}
	t.title = title
	t.renamed = true
	return true
}

// Append adds a message at the end of the thread
func (t *Thread) Append(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the history
func (t *Thread) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages
func (t *Thread) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Last returns the newest message, if any
func (t *Thread) Last() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
