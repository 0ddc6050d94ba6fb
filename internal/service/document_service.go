package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/extractor"
	"rag-chat-be/pkg/utils"
)

type IDocumentService interface {
	Upload(ctx context.Context, filename string, data []byte) (*dto.UploadDocumentResponse, error)
	Status(ctx context.Context) (*dto.DocumentStatusResponse, error)
	Clear(ctx context.Context) (*dto.ClearDocumentsResponse, error)
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	ai                config.AIConfig
	logger            logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	ai config.AIConfig,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		ai:                ai,
		logger:            sysLogger,
	}
}

// Upload extracts text, chunks it, embeds each chunk, and stores everything
// in one transaction. Validation failures happen before any remote call or
// write; later failures leave nothing persisted.
func (s *documentService) Upload(ctx context.Context, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	content, err := extractor.Extract(filename, data)
	if err != nil {
		if errors.Is(err, extractor.ErrUnsupportedType) {
			return nil, serverutils.NewUnsupportedMediaError(
				fmt.Sprintf("Unsupported file type. Supported: %s", strings.Join(extractor.SupportedExtensions, ", ")),
			)
		}
		return nil, serverutils.NewUpstreamError("Failed to process document: "+err.Error(), err)
	}

	if strings.TrimSpace(content) == "" {
		return nil, serverutils.NewValidationError("The uploaded file is empty or unreadable.")
	}

	chunks := utils.SplitText(content, s.ai.ChunkSize, s.ai.ChunkOverlap)

	// Embedding runs sequentially per chunk before the transaction opens, so
	// a mid-document upstream failure never leaves a partial document behind.
	documentChunks := make([]*entity.DocumentChunk, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := s.embeddingProvider.Embed(ctx, chunk, s.ai.EmbeddingDimension)
		if err != nil {
			s.logger.Error("document", "embedding failed during upload", map[string]interface{}{
				"filename": filename,
				"error":    err.Error(),
			})
			return nil, serverutils.NewUpstreamError("Failed to process document: "+err.Error(), err)
		}
		documentChunks = append(documentChunks, &entity.DocumentChunk{
			Filename:  filename,
			Content:   chunk,
			Embedding: vec,
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.NewPersistenceError("Failed to process document: "+err.Error(), err)
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().CreateBulk(ctx, documentChunks); err != nil {
		return nil, serverutils.NewPersistenceError("Failed to process document: "+err.Error(), err)
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.NewPersistenceError("Failed to process document: "+err.Error(), err)
	}

	s.logger.Info("document", "document uploaded", map[string]interface{}{
		"filename":       filename,
		"chunks_created": len(documentChunks),
	})

	return &dto.UploadDocumentResponse{
		Status:        "success",
		Filename:      filename,
		ChunksCreated: len(documentChunks),
	}, nil
}

func (s *documentService) Status(ctx context.Context) (*dto.DocumentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.DocumentChunkRepository().First(ctx)
	if err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	res := &dto.DocumentStatusResponse{HasDocuments: chunk != nil}
	if chunk != nil {
		res.Filename = &chunk.Filename
	}
	return res, nil
}

// Clear wipes both the document chunks and the chat history in one
// transaction.
func (s *documentService) Clear(ctx context.Context) (*dto.ClearDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteAll(ctx); err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}
	if err := uow.ChatHistoryRepository().DeleteAll(ctx); err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.NewPersistenceError(err.Error(), err)
	}

	s.logger.Info("document", "documents and chat history cleared", nil)

	return &dto.ClearDocumentsResponse{Status: "success"}, nil
}
