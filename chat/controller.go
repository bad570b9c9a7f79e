// Package chat orchestrates one active conversation per user: optimistic
// sends against the remote backend, silent fallback to the local responder,
// and write-through persistence of the session collection.
package chat

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ammu2244/chatgpt-gateway/backend"
	"github.com/ammu2244/chatgpt-gateway/domain"
	"github.com/ammu2244/chatgpt-gateway/responder"
	"github.com/ammu2244/chatgpt-gateway/store"
)

var (
	ErrEmptyMessage    = errors.New("chat: empty message")
	ErrSessionNotFound = errors.New("chat: session not found")
)

// ackReply substitutes for a 2xx backend response with no reply text.
const ackReply = "I received your message!"

// fallbackTitle names a committed conversation that somehow has no user
// message.
const fallbackTitle = "New Chat"

// attachmentMarker prefixes the filename in the displayed message.
const attachmentMarker = "📎 "

// timestampLayout renders session timestamps the way the browser client
// did (en-US locale string).
const timestampLayout = "1/2/2006, 3:04:05 PM"

// defaultFallbackDelay imitates the assistant "thinking" before a local
// reply when the network is down. It has no correctness role.
const defaultFallbackDelay = 800 * time.Millisecond

// Backend is the remote chat service surface the controller needs.
type Backend interface {
	History(ctx context.Context, userEmail string) ([]backend.HistoryMessage, error)
	ClearHistory(ctx context.Context, userEmail string) error
	Send(ctx context.Context, userEmail, message string) (string, error)
}

// Controller manages the live conversation for a single user. The identity
// is fixed at construction; there is no ambient current-user state.
//
// A mutex serializes all state transitions. The two network calls and the
// fallback delay run outside the lock, so concurrent operations interleave
// there: a send in flight does not block switching or deleting sessions.
type Controller struct {
	userID    string
	store     *store.SessionStore
	backend   Backend
	responder *responder.Responder

	now           func() time.Time
	newID         func() string
	fallbackDelay time.Duration

	mu         sync.Mutex
	conv       domain.Conversation
	sessions   domain.SessionList
	pending    int
	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator injects the session ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// WithFallbackDelay sets the artificial delay before a local fallback reply
// on transport failure.
func WithFallbackDelay(d time.Duration) Option {
	return func(c *Controller) { c.fallbackDelay = d }
}

// New creates a controller for userID. Call Activate before use.
func New(userID string, st *store.SessionStore, be Backend, rsp *responder.Responder, opts ...Option) *Controller {
	c := &Controller{
		userID:        userID,
		store:         st,
		backend:       be,
		responder:     rsp,
		now:           time.Now,
		fallbackDelay: defaultFallbackDelay,
		conv:          domain.NewConversation(),
	}
	c.newID = func() string {
		return strconv.FormatInt(c.now().UnixNano(), 10)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State is a point-in-time snapshot of the live conversation.
type State struct {
	Messages        []domain.Message `json:"messages"`
	ActiveSessionID string           `json:"active_session_id"`
	Pending         bool             `json:"pending"`
}

// Activate loads the saved session collection and seeds the transcript from
// the remote history. A failed or empty fetch seeds the default greeting
// instead; activation cannot fail.
func (c *Controller) Activate(ctx context.Context) {
	remote, err := c.backend.History(ctx, c.userID)
	if err != nil {
		log.Printf("WARN: history fetch failed for %s: %v", c.userID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions = c.store.Load(ctx, c.userID)
	c.conv = domain.NewConversation()
	if err == nil && len(remote) > 0 {
		transcript := make([]domain.Message, 0, len(remote))
		for _, m := range remote {
			transcript = append(transcript, domain.Message{Role: m.Role, Text: m.Message})
		}
		c.conv.Messages = transcript
	}
	c.generation++
}

// State returns a snapshot of the live conversation.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages := make([]domain.Message, len(c.conv.Messages))
	copy(messages, c.conv.Messages)
	return State{
		Messages:        messages,
		ActiveSessionID: c.conv.ActiveSessionID,
		Pending:         c.pending > 0,
	}
}

// Sessions returns the saved collection, newest first.
func (c *Controller) Sessions() domain.SessionList {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(domain.SessionList, len(c.sessions))
	copy(out, c.sessions)
	return out
}

// NewChat commits the current conversation if it is unsaved, asks the
// backend to clear its transcript (fire and forget), and resets to the
// greeting.
func (c *Controller) NewChat(ctx context.Context) {
	c.mu.Lock()
	c.commitCurrentLocked(ctx)
	c.resetLocked()
	c.mu.Unlock()

	go func() {
		if err := c.backend.ClearHistory(context.WithoutCancel(ctx), c.userID); err != nil {
			log.Printf("WARN: clear history failed for %s: %v", c.userID, err)
		}
	}()
}

// LoadChat commits the current conversation if it is unsaved, then binds
// the transcript to the named session.
func (c *Controller) LoadChat(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions.Find(sessionID)
	if !ok {
		return ErrSessionNotFound
	}

	c.commitCurrentLocked(ctx)
	messages := make([]domain.Message, len(sess.Messages))
	copy(messages, sess.Messages)
	c.conv = domain.Conversation{Messages: messages, ActiveSessionID: sess.ID}
	c.generation++
	return nil
}

// DeleteChat removes a session from the collection. Deleting the active
// session resets the transcript to the greeting without committing it.
func (c *Controller) DeleteChat(ctx context.Context, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions = c.sessions.Remove(sessionID)
	if c.conv.ActiveSessionID == sessionID {
		c.resetLocked()
	}
	c.persistLocked(ctx)
}

// Send appends the user message optimistically, forwards the raw text to
// the backend, and appends the assistant reply. A backend error never
// surfaces: a bad status degrades to the local responder immediately, a
// transport failure degrades after the typing delay. The reply is returned
// to the caller; if the conversation changed while the request was in
// flight, the reply is not applied to the newer transcript.
func (c *Controller) Send(ctx context.Context, text, attachment string) (domain.Message, error) {
	if strings.TrimSpace(text) == "" && attachment == "" {
		return domain.Message{}, ErrEmptyMessage
	}

	display := text
	if attachment != "" {
		display = attachmentMarker + attachment
		if text != "" {
			display += "\n" + text
		}
	}

	token := uuid.NewString()

	c.mu.Lock()
	c.conv.Append(domain.Message{Role: domain.RoleUser, Text: display})
	if c.conv.ActiveSessionID == "" && c.conv.UserMessageCount() == 1 {
		// First user message of an unsaved conversation: create and bind
		// the session synchronously so the sidebar shows it right away.
		id := c.newID()
		c.conv.ActiveSessionID = id
		messages := make([]domain.Message, len(c.conv.Messages))
		copy(messages, c.conv.Messages)
		c.sessions = c.sessions.Prepend(domain.Session{
			ID:          id,
			Title:       domain.Truncate(display, domain.TitleLimit),
			Messages:    messages,
			LastMessage: domain.Truncate(display, domain.PreviewLimit),
			Timestamp:   c.now().Format(timestampLayout),
		})
		c.persistLocked(ctx)
	} else {
		c.syncActiveLocked(ctx)
	}
	gen := c.generation
	c.pending++
	c.mu.Unlock()

	replyText, err := c.backend.Send(ctx, c.userID, text)
	var reply domain.Message
	switch {
	case err == nil:
		if replyText == "" {
			replyText = ackReply
		}
		reply = domain.Message{Role: domain.RoleAssistant, Text: replyText}
	case errors.Is(err, backend.ErrBadStatus):
		reply = domain.Message{Role: domain.RoleAssistant, Text: c.responder.Respond(text)}
	default:
		time.Sleep(c.fallbackDelay)
		reply = domain.Message{Role: domain.RoleAssistant, Text: c.responder.Respond(text)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--
	if gen != c.generation {
		log.Printf("WARN: dropping reply %s for %s: conversation changed while in flight", token, c.userID)
		return reply, nil
	}
	c.conv.Append(reply)
	c.syncActiveLocked(ctx)
	return reply, nil
}

// commitCurrentLocked saves the live transcript as a new session when it
// has content beyond the greeting and is not already bound.
func (c *Controller) commitCurrentLocked(ctx context.Context) {
	if !c.conv.HasContent() || c.conv.ActiveSessionID != "" {
		return
	}

	title := fallbackTitle
	if text, ok := c.conv.FirstUserText(); ok {
		title = domain.Truncate(text, domain.TitleLimit)
	}
	messages := make([]domain.Message, len(c.conv.Messages))
	copy(messages, c.conv.Messages)
	c.sessions = c.sessions.Prepend(domain.Session{
		ID:          c.newID(),
		Title:       title,
		Messages:    messages,
		LastMessage: domain.Truncate(c.conv.LastText(), domain.PreviewLimit),
		Timestamp:   c.now().Format(timestampLayout),
	})
	c.persistLocked(ctx)
}

// syncActiveLocked mirrors the live transcript into its bound session.
func (c *Controller) syncActiveLocked(ctx context.Context) {
	if c.conv.ActiveSessionID == "" || !c.conv.HasContent() {
		return
	}
	sess, ok := c.sessions.Find(c.conv.ActiveSessionID)
	if !ok {
		return
	}
	messages := make([]domain.Message, len(c.conv.Messages))
	copy(messages, c.conv.Messages)
	sess.Messages = messages
	sess.LastMessage = domain.Truncate(c.conv.LastText(), domain.PreviewLimit)
	c.sessions = c.sessions.Upsert(sess)
	c.persistLocked(ctx)
}

// resetLocked restores the greeting transcript and invalidates replies
// still in flight for the previous conversation.
func (c *Controller) resetLocked() {
	c.conv = domain.NewConversation()
	c.generation++
}

// persistLocked writes the collection through to the store. Persistence
// failures are logged and swallowed; the conversation keeps working in
// memory.
func (c *Controller) persistLocked(ctx context.Context) {
	if err := c.store.Save(ctx, c.userID, c.sessions); err != nil {
		log.Printf("WARN: session save failed for %s: %v", c.userID, err)
	}
}
