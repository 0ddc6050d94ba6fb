package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rag-chat-be/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiProvider struct {
	ApiKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string, timeout time.Duration) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		BaseURL:   defaultBaseURL,
		Client:    &http.Client{Timeout: timeout},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiGenerationConfig struct {
	Temperature    *float64              `json:"temperature,omitempty"`
	ThinkingConfig *geminiThinkingConfig `json:"thinkingConfig"`
}

type geminiGenerateRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiStreamChunk struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// --- Interface Implementation ---

// Chat calls streamGenerateContent and concatenates the streamed fragments
// into one answer. The caller never sees partial output.
func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	contents := make([]geminiContent, len(history))
	for i, msg := range history {
		contents[i] = geminiContent{
			Parts: []geminiPart{{Text: msg.Content}},
			Role:  msg.Role,
		}
	}

	reqPayload := geminiGenerateRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			// Thinking disabled: answers come straight from the context
			ThinkingConfig: &geminiThinkingConfig{ThinkingBudget: 0},
		},
	}
	if options.SystemInstruction != "" {
		reqPayload.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: options.SystemInstruction}},
		}
	}
	if options.Temperature > 0 {
		reqPayload.GenerationConfig.Temperature = &options.Temperature
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", &llm.ServiceError{Provider: "gemini", Err: err}
	}

	endpoint := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", p.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", &llm.ServiceError{Provider: "gemini", Err: err}
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return "", &llm.ServiceError{Provider: "gemini", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		return "", &llm.ServiceError{
			Provider: "gemini",
			Err:      fmt.Errorf("status %d, body %s", res.StatusCode, string(resBody)),
		}
	}

	return accumulateSSE(res.Body)
}

// accumulateSSE reads "data: {...}" server-sent events and concatenates the
// text of every candidate part.
func accumulateSSE(body io.Reader) (string, error) {
	var answer strings.Builder

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		var chunk geminiStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", &llm.ServiceError{Provider: "gemini", Err: fmt.Errorf("parse stream chunk: %w", err)}
		}
		for _, candidate := range chunk.Candidates {
			for _, part := range candidate.Content.Parts {
				answer.WriteString(part.Text)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &llm.ServiceError{Provider: "gemini", Err: err}
	}

	return answer.String(), nil
}
