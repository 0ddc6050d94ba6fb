package llm

import (
	"context"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user" or "model"
	Content string
}

// Option allows for optional parameters like Temperature or SystemInstruction.
type Option func(*Options)

type Options struct {
	Temperature       float64
	Model             string // Override default model
	SystemInstruction string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystemInstruction(instruction string) Option {
	return func(o *Options) {
		o.SystemInstruction = instruction
	}
}

// LLMProvider defines the contract for any generation model backend.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the full response
	// text. Providers that stream internally accumulate the fragments before
	// returning; the contract to callers is non-streaming.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}

// ServiceError marks a failed remote generation call.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("llm provider %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
