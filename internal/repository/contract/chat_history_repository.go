package contract

import (
	"context"

	"rag-chat-be/internal/entity"
)

type ChatHistoryRepository interface {
	Create(ctx context.Context, message *entity.ChatHistory) error
	// FindByConversationId returns all turns of a conversation in ascending
	// creation order. An unknown id yields an empty slice, not an error.
	FindByConversationId(ctx context.Context, conversationId string) ([]*entity.ChatHistory, error)
	// ListConversations aggregates user turns per conversation, ordered by
	// most recent activity first.
	ListConversations(ctx context.Context) ([]*entity.ConversationSummary, error)
	DeleteAll(ctx context.Context) error
}
