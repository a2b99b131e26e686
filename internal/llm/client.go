// Package llm talks to an OpenAI-compatible chat completion API.
package llm

import "context"

// Message is a single chat turn sent to the completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for chat completion providers.
type Client interface {
	// ChatStream sends the conversation and streams the assistant's reply.
	// onDelta is invoked for each content fragment as it arrives; the full
	// accumulated reply is returned once the stream completes.
	ChatStream(ctx context.Context, messages []Message, onDelta func(delta string)) (string, error)
}

// Config holds provider settings for building a client.
type Config struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}
