package contract

import (
	"context"

	"rag-chat-be/internal/entity"
)

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	// SearchNearest returns up to limit chunks ordered by ascending L2
	// distance to the query embedding.
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context) (int64, error)
	// First returns an arbitrary stored chunk, or nil when the store is empty.
	First(ctx context.Context) (*entity.DocumentChunk, error)
	DeleteAll(ctx context.Context) error
}
