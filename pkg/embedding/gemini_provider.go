package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiProvider struct {
	ApiKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewGeminiProvider(apiKey, model string, timeout time.Duration) Provider {
	if model == "" {
		model = "gemini-embedding-001"
	}
	return &GeminiProvider{
		ApiKey:  apiKey,
		Model:   model,
		BaseURL: geminiDefaultBaseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type geminiContentPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model                string        `json:"model"`
	Content              geminiContent `json:"content"`
	OutputDimensionality int           `json:"outputDimensionality,omitempty"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (p *GeminiProvider) Embed(ctx context.Context, text string, dimension int) ([]float32, error) {
	payload := geminiEmbedRequest{
		Model: "models/" + p.Model,
		Content: geminiContent{
			Parts: []geminiContentPart{{Text: text}},
		},
		OutputDimensionality: dimension,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, &ServiceError{Provider: "gemini", Err: err}
	}

	endpoint := fmt.Sprintf("%s/models/%s:embedContent", p.BaseURL, p.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, &ServiceError{Provider: "gemini", Err: err}
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, &ServiceError{Provider: "gemini", Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &ServiceError{Provider: "gemini", Err: err}
	}

	if res.StatusCode != http.StatusOK {
		return nil, &ServiceError{
			Provider: "gemini",
			Err:      fmt.Errorf("status %d, body %s", res.StatusCode, string(resBody)),
		}
	}

	var embedRes geminiEmbedResponse
	if err := json.Unmarshal(resBody, &embedRes); err != nil {
		return nil, &ServiceError{Provider: "gemini", Err: err}
	}

	if len(embedRes.Embedding.Values) != dimension {
		return nil, &ServiceError{
			Provider: "gemini",
			Err:      fmt.Errorf("expected %d dimensions, got %d", dimension, len(embedRes.Embedding.Values)),
		}
	}

	return embedRes.Embedding.Values, nil
}
