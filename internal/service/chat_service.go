package service

import (
	"context"
	"fmt"
	"strings"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, conversationId string) ([]*dto.ChatHistoryResponse, error)
	ListConversations(ctx context.Context) ([]*dto.ConversationResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	llmProvider       llm.LLMProvider
	ai                config.AIConfig
	logger            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	llmProvider llm.LLMProvider,
	ai config.AIConfig,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		ai:                ai,
		logger:            sysLogger,
	}
}

// SendChat answers a query against the uploaded documents: embed the query,
// retrieve the nearest chunks, replay the conversation, and generate. The
// user/model turn pair is persisted only after generation succeeds.
func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.DocumentChunkRepository().Count(ctx)
	if err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}
	if count == 0 {
		return nil, serverutils.NewPreconditionError("No documents found. Please upload a document first.")
	}

	conversationId := strings.TrimSpace(req.ConversationId)
	if conversationId == "" {
		conversationId = uuid.NewString()
	}

	pastMessages, err := uow.ChatHistoryRepository().FindByConversationId(ctx, conversationId)
	if err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	queryEmbedding, err := s.embeddingProvider.Embed(ctx, req.Query, s.ai.EmbeddingDimension)
	if err != nil {
		s.logger.Error("chat", "query embedding failed", map[string]interface{}{
			"conversation_id": conversationId,
			"error":           err.Error(),
		})
		return nil, serverutils.NewUpstreamError(err.Error(), err)
	}

	relevantChunks, err := uow.DocumentChunkRepository().SearchNearest(ctx, queryEmbedding, s.ai.TopKChunks)
	if err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	contextParts := make([]string, len(relevantChunks))
	for i, chunk := range relevantChunks {
		contextParts[i] = chunk.Content
	}
	contextText := strings.Join(contextParts, constant.ContextSeparator)

	history := make([]llm.Message, 0, len(pastMessages)+1)
	for _, msg := range pastMessages {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: fmt.Sprintf(constant.RAGPromptTemplate, contextText, req.Query),
	})

	answer, err := s.llmProvider.Chat(ctx, history,
		llm.WithSystemInstruction(constant.SystemPrompt),
	)
	if err != nil {
		s.logger.Error("chat", "generation failed", map[string]interface{}{
			"conversation_id": conversationId,
			"error":           err.Error(),
		})
		return nil, serverutils.NewUpstreamError(err.Error(), err)
	}

	s.logger.Info("chat", "answer generated", map[string]interface{}{
		"conversation_id":  conversationId,
		"retrieved_chunks": len(relevantChunks),
		"history_turns":    len(pastMessages),
	})

	// The stored user turn is the raw question, not the context-augmented
	// prompt the model actually received.
	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}
	defer uow.Rollback()

	userTurn := &entity.ChatHistory{
		ConversationId: conversationId,
		Role:           constant.ChatMessageRoleUser,
		Content:        req.Query,
	}
	if err := uow.ChatHistoryRepository().Create(ctx, userTurn); err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	modelTurn := &entity.ChatHistory{
		ConversationId: conversationId,
		Role:           constant.ChatMessageRoleModel,
		Content:        answer,
	}
	if err := uow.ChatHistoryRepository().Create(ctx, modelTurn); err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	return &dto.SendChatResponse{
		Answer:         answer,
		ConversationId: conversationId,
	}, nil
}

func (s *chatService) GetChatHistory(ctx context.Context, conversationId string) ([]*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatHistoryRepository().FindByConversationId(ctx, conversationId)
	if err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	response := make([]*dto.ChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, &dto.ChatHistoryResponse{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return response, nil
}

func (s *chatService) ListConversations(ctx context.Context) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summaries, err := uow.ChatHistoryRepository().ListConversations(ctx)
	if err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	response := make([]*dto.ConversationResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, &dto.ConversationResponse{
			Id:        summary.ConversationId,
			Title:     truncateTitle(summary.FirstMessage, constant.ConversationTitleMaxLen),
			CreatedAt: summary.CreatedAt,
		})
	}
	return response, nil
}

func truncateTitle(message string, maxLen int) string {
	runes := []rune(message)
	if len(runes) <= maxLen {
		return message
	}
	return string(runes[:maxLen]) + "..."
}
