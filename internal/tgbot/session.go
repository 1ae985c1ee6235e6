package tgbot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Flow names.
const (
	FlowCreateEvent = "create_event"
)

// Session is the per-chat conversation state. It lives in Redis so an
// in-progress form survives bot restarts.
type Session struct {
	ChatID int64  `json:"chat_id"`
	Flow   string `json:"flow"`
	Step   string `json:"step"`
	Draft  Draft  `json:"draft"`
}

// sessionTTL bounds abandoned conversations.
const sessionTTL = 30 * time.Minute

// SessionStore persists bot sessions in Redis.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("bot:session:%d", chatID)
}

// Get returns the chat's session, or nil when none exists.
func (s *SessionStore) Get(ctx context.Context, chatID int64) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(chatID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save writes the session with a fresh TTL.
func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ChatID), raw, sessionTTL).Err()
}

// Delete removes the chat's session.
func (s *SessionStore) Delete(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, sessionKey(chatID)).Err()
}
