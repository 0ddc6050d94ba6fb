package dto

import "time"

type SendChatRequest struct {
	Query          string `json:"query" validate:"required"`
	ConversationId string `json:"conversation_id"`
}

type SendChatResponse struct {
	Answer         string `json:"answer"`
	ConversationId string `json:"conversation_id"`
}

type ChatHistoryResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ConversationResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
