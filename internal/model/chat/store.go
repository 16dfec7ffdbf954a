package chat

import (
	"context"
	"sync"
)

// TurnLog records completed turns. The chat path only ever writes;
// reads exist for tooling and tests.
type TurnLog interface {
	Append(ctx context.Context, turn Turn) error
}

// MemoryLog implements TurnLog with an in-memory slice, suitable for
// development and tests.
type MemoryLog struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewMemoryLog returns an empty in-memory turn log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Append records a turn in arrival order.
func (l *MemoryLog) Append(_ context.Context, turn Turn) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, turn)
	return nil
}

// Turns returns a copy of all recorded turns.
func (l *MemoryLog) Turns() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Turn(nil), l.turns...)
}
