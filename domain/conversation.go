// Package domain defines the chat data model shared across the gateway.
package domain

// DefaultGreeting opens every new conversation.
const DefaultGreeting = "Hello! I'm your AI assistant. How can I help you today?"

// Conversation is the single live transcript for a user, optionally bound
// to a saved session. It is transient state; SessionList is what persists.
type Conversation struct {
	Messages        []Message
	ActiveSessionID string
}

// NewConversation returns a conversation holding only the default greeting.
func NewConversation() Conversation {
	return Conversation{
		Messages: []Message{{Role: RoleAssistant, Text: DefaultGreeting}},
	}
}

// Append adds a message to the end of the transcript.
func (c *Conversation) Append(m Message) {
	c.Messages = append(c.Messages, m)
}

// HasContent reports whether the transcript holds anything beyond the
// greeting.
func (c *Conversation) HasContent() bool {
	return len(c.Messages) > 1
}

// FirstUserText returns the text of the earliest user message.
func (c *Conversation) FirstUserText() (string, bool) {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return m.Text, true
		}
	}
	return "", false
}

// LastText returns the text of the final message, or "" for an empty
// transcript.
func (c *Conversation) LastText() string {
	if len(c.Messages) == 0 {
		return ""
	}
	return c.Messages[len(c.Messages)-1].Text
}

// UserMessageCount counts user-authored messages in the transcript.
func (c *Conversation) UserMessageCount() int {
	n := 0
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}
