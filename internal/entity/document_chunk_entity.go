package entity

import "time"

type DocumentChunk struct {
	Id        int64
	Filename  string
	Content   string
	Embedding []float32
	CreatedAt time.Time
}
