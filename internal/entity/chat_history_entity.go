package entity

import "time"

type ChatHistory struct {
	Id             int64
	ConversationId string
	Role           string
	Content        string
	CreatedAt      time.Time
}

// ConversationSummary is the aggregate row behind the conversation listing:
// one row per conversation_id, first user message and earliest timestamp.
type ConversationSummary struct {
	ConversationId string
	FirstMessage   string
	CreatedAt      time.Time
}
