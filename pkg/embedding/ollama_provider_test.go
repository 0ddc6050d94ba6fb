package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProviderEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req ollamaEmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello", req.Prompt)

		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{
			Embedding: []float64{3, 4, 0},
		})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "nomic-embed-text", 5*time.Second)

	vec, err := provider.Embed(context.Background(), "hello", 3)
	require.NoError(t, err)
	require.Len(t, vec, 3)

	// Response is normalized to unit length.
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
	assert.InDelta(t, 0.6, vec[0], 1e-6)
	assert.InDelta(t, 0.8, vec[1], 1e-6)
}

func TestOllamaProviderDimensionMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{
			Embedding: []float64{1, 2},
		})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "nomic-embed-text", 5*time.Second)

	_, err := provider.Embed(context.Background(), "hello", 768)
	require.Error(t, err)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "ollama", svcErr.Provider)
}

func TestOllamaProviderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "missing-model", 5*time.Second)

	_, err := provider.Embed(context.Background(), "hello", 3)
	require.Error(t, err)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Contains(t, svcErr.Error(), "404")
}

type countingProvider struct {
	calls int
	vec   []float32
	err   error
}

func (p *countingProvider) Embed(ctx context.Context, text string, dimension int) ([]float32, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.vec, nil
}

func TestCachedProviderReusesResults(t *testing.T) {
	inner := &countingProvider{vec: []float32{0.1, 0.2, 0.3}}
	cached := NewCachedProvider(inner, time.Minute)

	first, err := cached.Embed(context.Background(), "same question", 3)
	require.NoError(t, err)

	second, err := cached.Embed(context.Background(), "same question", 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)

	// A different dimension is a different cache entry.
	_, err = cached.Embed(context.Background(), "same question", 4)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{err: errors.New("upstream down")}
	cached := NewCachedProvider(inner, time.Minute)

	_, err := cached.Embed(context.Background(), "q", 3)
	require.Error(t, err)

	inner.err = nil
	inner.vec = []float32{1}

	vec, err := cached.Embed(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, vec)
	assert.Equal(t, 2, inner.calls)
}
