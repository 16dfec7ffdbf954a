package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/curryhouse/menubot/backend/internal/config"
	"github.com/curryhouse/menubot/backend/internal/model/chat"
)

var (
	ErrMessageRequired  = errors.New("message is required")
	ErrModelUnavailable = errors.New("chat model is not configured")
	ErrUpstream         = errors.New("chat model request failed")
)

// Responder produces one assistant reply for a user message given the
// session's prior turns.
type Responder interface {
	Reply(ctx context.Context, history []chat.Turn, userMessage string) (string, error)
}

// session is the live conversation context for one session id. turns holds
// the retained history resupplied to the model on every exchange.
type session struct {
	id        string
	createdAt time.Time

	mu    sync.Mutex
	turns []chat.Turn
}

// Service owns the session store and drives one chat turn end to end.
type Service struct {
	responder    Responder
	turnLog      chat.TurnLog
	historyLimit int
	now          func() time.Time

	// mu makes lookup+insert atomic so concurrent first messages for one
	// session id construct exactly one context.
	mu       sync.Mutex
	sessions *lru.LRU[string, *session]
}

// NewService bootstraps the chat service with a bounded session store.
// A nil responder means the upstream credential is absent; every exchange
// then fails with ErrModelUnavailable.
func NewService(responder Responder, turnLog chat.TurnLog, cfg config.SessionConfig) *Service {
	return &Service{
		responder:    responder,
		turnLog:      turnLog,
		historyLimit: cfg.HistoryLimit,
		now:          time.Now,
		sessions:     lru.NewLRU[string, *session](cfg.Capacity, nil, cfg.TTL),
	}
}

// Result is the outcome of one completed chat turn. Persisted is false when
// the reply was produced but the conversation log write failed.
type Result struct {
	SessionID string
	Response  string
	Timestamp time.Time
	Persisted bool
}

// Exchange resolves the session, forwards the message to the model, and
// appends the completed turn to the conversation log. A log failure never
// discards the produced reply.
func (s *Service) Exchange(ctx context.Context, sessionID, message string) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{}, ErrMessageRequired
	}
	if s.responder == nil {
		return Result{}, ErrModelUnavailable
	}

	sess, created := s.resolveOrCreate(sessionID)
	if created {
		log.Printf("[chat] created session %s", sess.id)
	}

	// Serialize turns within a session so messages reach the context in
	// arrival order.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	response, err := s.responder.Reply(ctx, sess.turns, message)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	now := s.now().UTC()
	turn := chat.Turn{
		SessionID:         sess.id,
		UserMessage:       message,
		AssistantResponse: response,
		Timestamp:         now,
	}

	sess.turns = append(sess.turns, turn)
	if len(sess.turns) > s.historyLimit {
		sess.turns = sess.turns[len(sess.turns)-s.historyLimit:]
	}

	result := Result{
		SessionID: sess.id,
		Response:  response,
		Timestamp: now,
		Persisted: true,
	}

	if err := s.turnLog.Append(ctx, turn); err != nil {
		log.Printf("[chat] failed to append conversation log, session=%s: %v", sess.id, err)
		result.Persisted = false
	}

	return result, nil
}

// resolveOrCreate returns the context mapped to sessionID, creating it when
// the id is absent or unmapped. An empty id gets a fresh unique one.
func (s *Service) resolveOrCreate(sessionID string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if sess, ok := s.sessions.Get(sessionID); ok {
		return sess, false
	}

	sess := &session{id: sessionID, createdAt: s.now().UTC()}
	s.sessions.Add(sessionID, sess)
	return sess, true
}

// Lookup reports the stored descriptor for a session id.
func (s *Service) Lookup(sessionID string) (chat.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return chat.Session{}, false
	}
	return chat.Session{ID: sess.id, CreatedAt: sess.createdAt}, true
}

// ActiveSessions returns the number of contexts currently retained.
func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Len()
}
