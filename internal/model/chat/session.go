package chat

import "time"

// Session describes one ongoing conversation bound to the chat model.
type Session struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
