package implementation

import (
	"context"
	"time"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/mapper"
	"rag-chat-be/internal/model"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatHistoryMapper
}

func NewChatHistoryRepository(db *gorm.DB) contract.ChatHistoryRepository {
	return &ChatHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatHistoryMapper(),
	}
}

func (r *ChatHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatHistoryRepositoryImpl) Create(ctx context.Context, message *entity.ChatHistory) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatHistoryRepositoryImpl) FindByConversationId(ctx context.Context, conversationId string) ([]*entity.ChatHistory, error) {
	var models []*model.ChatHistory
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.Filter("conversation_id", conversationId),
		specification.OrderBy{Field: "created_at"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatHistoryRepositoryImpl) ListConversations(ctx context.Context) ([]*entity.ConversationSummary, error) {
	type conversationRow struct {
		ConversationId string
		FirstMessage   string
		CreatedAt      time.Time
	}
	var rows []conversationRow

	query := r.applySpecifications(
		r.db.WithContext(ctx).
			Model(&model.ChatHistory{}).
			Select("conversation_id, MIN(content) AS first_message, MIN(created_at) AS created_at"),
		specification.Filter("role", constant.ChatMessageRoleUser),
	)
	err := query.
		Group("conversation_id").
		Order("MAX(created_at) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.ConversationSummary, len(rows))
	for i, row := range rows {
		summaries[i] = &entity.ConversationSummary{
			ConversationId: row.ConversationId,
			FirstMessage:   row.FirstMessage,
			CreatedAt:      row.CreatedAt,
		}
	}
	return summaries, nil
}

func (r *ChatHistoryRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.ChatHistory{}).Error
}
