// In file: internal/llm/client.go

// Package llm contains the client interface and provider implementations for
// the language model that drives the reasoning loop.
package llm

import (
	"context"

	"toolbridge/internal/api"
)

// Role represents the originator of a message in a conversation.
// Using a defined type and constants prevents typos and improves code clarity.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// GenerationConfig holds the parameters that control generation behavior.
type GenerationConfig struct {
	// Model is the specific model to use (e.g., "gemini-1.5-flash",
	// "qwen2.5-coder:latest").
	Model string
	// Temperature controls randomness. The reasoning loop pins this to 0
	// because strict output formatting matters more than creativity.
	// A pointer distinguishes an explicit 0.0 from an unset value.
	Temperature *float32
	// MaxTokens caps the response length. Zero means the provider default.
	MaxTokens int
	// NumCtx is the context window size for providers that expose it (Ollama).
	NumCtx int
}

// GenerationResult holds the complete output of one LLM call.
type GenerationResult struct {
	// Content is the generated text.
	Content string
	// Usage is the token accounting for this single call.
	Usage api.Usage
}

// LLMClient is the universal interface all model providers implement. The
// reasoning loop only needs the unary, blocking call: it reads the complete
// response each iteration to decide between acting and answering.
type LLMClient interface {
	Generate(ctx context.Context, messages []Message, config *GenerationConfig) (*GenerationResult, error)
}
