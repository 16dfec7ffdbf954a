package chat

import "time"

// Turn persists one completed exchange for audit/analytics.
type Turn struct {
	SessionID         string    `bson:"session_id" json:"session_id"`
	UserMessage       string    `bson:"user_message" json:"user_message"`
	AssistantResponse string    `bson:"assistant_response" json:"assistant_response"`
	Timestamp         time.Time `bson:"timestamp" json:"timestamp"`
}
