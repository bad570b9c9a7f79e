package domain

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Display limits for derived session fields.
const (
	TitleLimit   = 30
	PreviewLimit = 50
)

// Message represents a single entry in a conversation transcript.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Session is a saved conversation. The JSON field names match what the
// browser client persisted to localStorage, so stored collections survive
// the rewrite.
type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	LastMessage string    `json:"lastMessage"`
	Timestamp   string    `json:"timestamp"`
}

// SessionList is an ordered collection of sessions, newest first.
type SessionList []Session

// Prepend returns a new list with s at the front.
func (l SessionList) Prepend(s Session) SessionList {
	out := make(SessionList, 0, len(l)+1)
	out = append(out, s)
	return append(out, l...)
}

// Upsert returns a new list with the session matching updated.ID replaced.
// A list without a matching ID is returned unchanged.
func (l SessionList) Upsert(updated Session) SessionList {
	out := make(SessionList, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}
	return out
}

// Remove returns a new list without the session matching id.
func (l SessionList) Remove(id string) SessionList {
	out := make(SessionList, 0, len(l))
	for _, s := range l {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the session matching id.
func (l SessionList) Find(id string) (Session, bool) {
	for _, s := range l {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// Truncate clips s to at most limit characters.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
