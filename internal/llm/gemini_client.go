// In file: internal/llm/gemini_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"toolbridge/internal/api"
)

// GeminiClient is the client for interacting with Google's Gemini models.
type GeminiClient struct {
	model *genai.GenerativeModel
}

var _ LLMClient = (*GeminiClient)(nil)

func NewGeminiClient(apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{model: client.GenerativeModel(modelID)}, nil
}

// Generate performs a standard, blocking request to the Gemini API.
func (c *GeminiClient) Generate(ctx context.Context, messages []Message, config *GenerationConfig) (*GenerationResult, error) {
	if len(messages) == 0 {
		return nil, errors.New("cannot generate from an empty message list")
	}
	c.configureModel(config)

	chat := c.model.StartChat()
	chat.History = toGeminiHistory(messages[:len(messages)-1])

	last := messages[len(messages)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	return parseGeminiResponse(resp)
}

// configureModel applies dynamic settings using the SDK's setter methods for safety.
func (c *GeminiClient) configureModel(config *GenerationConfig) {
	if config != nil && config.Temperature != nil {
		c.model.SetTemperature(*config.Temperature)
	}
	if config != nil && config.MaxTokens > 0 {
		c.model.SetMaxOutputTokens(int32(config.MaxTokens))
	} else {
		c.model.SetMaxOutputTokens(4096) // Default cap when no config was provided.
	}
}

// toGeminiHistory converts prior conversation messages to the SDK's content
// type. Gemini has no distinct system role in chat history, so system
// messages are folded in as user content.
func toGeminiHistory(messages []Message) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history
}

// parseGeminiResponse extracts the text content and token accounting from a
// Gemini response.
func parseGeminiResponse(resp *genai.GenerateContentResponse) (*GenerationResult, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini returned an empty response")
	}

	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			content.WriteString(string(txt))
		}
	}

	result := &GenerationResult{Content: content.String()}
	if resp.UsageMetadata != nil {
		result.Usage = api.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return result, nil
}
