// In file: internal/llm/ollama_client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"toolbridge/internal/api"
)

// OllamaClient talks to a local Ollama server over its /api/chat endpoint.
// It holds its own configured HTTP client for making robust calls; local
// models can take a while to answer, so the timeout is generous.
type OllamaClient struct {
	host       string
	httpClient *http.Client
}

var _ LLMClient = (*OllamaClient)(nil)

func NewOllamaClient(host string) (*OllamaClient, error) {
	if host == "" {
		return nil, errors.New("ollama host cannot be empty")
	}
	return &OllamaClient{
		host: host,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// ollamaChatRequest mirrors the subset of the Ollama chat API we use.
type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	Error           string `json:"error"`
}

// Generate performs a standard, blocking request to the Ollama chat API.
func (c *OllamaClient) Generate(ctx context.Context, messages []Message, config *GenerationConfig) (*GenerationResult, error) {
	if len(messages) == 0 {
		return nil, errors.New("cannot generate from an empty message list")
	}

	chatReq := ollamaChatRequest{
		Messages: messages,
		Stream:   false,
		Options:  map[string]any{},
	}
	if config != nil {
		chatReq.Model = config.Model
		if config.Temperature != nil {
			chatReq.Options["temperature"] = *config.Temperature
		}
		if config.NumCtx > 0 {
			chatReq.Options["num_ctx"] = config.NumCtx
		}
		if config.MaxTokens > 0 {
			chatReq.Options["num_predict"] = config.MaxTokens
		}
	}
	if chatReq.Model == "" {
		return nil, errors.New("ollama model must be specified in the generation config")
	}

	payload, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned non-200 status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse ollama response: %w", err)
	}
	if chatResp.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", chatResp.Error)
	}

	return &GenerationResult{
		Content: chatResp.Message.Content,
		Usage: api.Usage{
			PromptTokens:     chatResp.PromptEvalCount,
			CompletionTokens: chatResp.EvalCount,
			TotalTokens:      chatResp.PromptEvalCount + chatResp.EvalCount,
		},
	}, nil
}
