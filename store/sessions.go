package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ammu2244/chatgpt-gateway/domain"
)

// sessionKeyPrefix namespaces each user's collection.
const sessionKeyPrefix = "sessions:"

// Identity keys written by the (out-of-scope) login flow. The session layer
// only ever reads them.
const (
	KeyUserEmail   = "user_email"
	KeyAccessToken = "access_token"
)

// SessionStore persists one SessionList per user, whole-collection on every
// write. There are no partial updates: the value under sessions:<userID> is
// always a complete JSON snapshot.
type SessionStore struct {
	kv KV
}

// NewSessionStore creates a session store on the given KV.
func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Load returns the saved collection for userID. A missing key, a read
// error, or an unparseable value all read as an empty collection; corrupt
// state must never take the conversation down.
func (s *SessionStore) Load(ctx context.Context, userID string) domain.SessionList {
	val, ok, err := s.kv.Get(ctx, sessionKeyPrefix+userID)
	if err != nil {
		log.Printf("WARN: session load failed for %s: %v", userID, err)
		return domain.SessionList{}
	}
	if !ok {
		return domain.SessionList{}
	}

	var list domain.SessionList
	if err := json.Unmarshal([]byte(val), &list); err != nil {
		log.Printf("WARN: discarding unparseable sessions for %s: %v", userID, err)
		return domain.SessionList{}
	}
	return list
}

// Save overwrites the persisted collection for userID. Callers treat a
// failure as non-fatal and keep operating in memory.
func (s *SessionStore) Save(ctx context.Context, userID string, list domain.SessionList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	return s.kv.Set(ctx, sessionKeyPrefix+userID, string(data))
}

// Identity reads the stored user email and access token. Both are empty
// when no login has happened.
func (s *SessionStore) Identity(ctx context.Context) (email, token string) {
	email, _, _ = s.kv.Get(ctx, KeyUserEmail)
	token, _, _ = s.kv.Get(ctx, KeyAccessToken)
	return email, token
}

// Close releases the underlying KV.
func (s *SessionStore) Close() error {
	return s.kv.Close()
}
