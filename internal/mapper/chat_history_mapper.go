package mapper

import (
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/model"
)

type ChatHistoryMapper struct{}

func NewChatHistoryMapper() *ChatHistoryMapper {
	return &ChatHistoryMapper{}
}

func (m *ChatHistoryMapper) ToEntity(msg *model.ChatHistory) *entity.ChatHistory {
	if msg == nil {
		return nil
	}

	return &entity.ChatHistory{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ChatHistoryMapper) ToModel(msg *entity.ChatHistory) *model.ChatHistory {
	if msg == nil {
		return nil
	}

	return &model.ChatHistory{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ChatHistoryMapper) ToEntities(msgs []*model.ChatHistory) []*entity.ChatHistory {
	entities := make([]*entity.ChatHistory, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
