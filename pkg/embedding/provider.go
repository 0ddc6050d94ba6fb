package embedding

import "context"

// Provider defines the interface for generating text embeddings.
type Provider interface {
	// Embed returns a vector of exactly `dimension` floats for the text.
	Embed(ctx context.Context, text string, dimension int) ([]float32, error)
}
