// In file: internal/api/types.go

// Package api defines the public request and response types for the gateway's
// HTTP surface.
package api

// ChatRequest is the body of a POST /api/v1/chat call. Each request is
// stateless: no conversation state is persisted across requests.
type ChatRequest struct {
	// Message is the user's natural-language instruction for the agent.
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the agent's final, post-processed answer.
type ChatResponse struct {
	// Reply is the single reply string promised to the caller.
	Reply string `json:"reply"`
	// ModelUsed names the LLM that drove the reasoning loop.
	ModelUsed string `json:"model_used,omitempty"`
	// Usage reports cumulative token consumption across all loop iterations.
	Usage Usage `json:"usage"`
	// LatencyMS is the total wall-clock time for this request.
	LatencyMS int64 `json:"latency_ms"`
	// CacheStatus is "HIT" when the reply was served from the reply cache.
	CacheStatus string `json:"cache_status,omitempty"`
}

// Usage holds token consumption statistics for one or more LLM calls.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates another call's usage into this one. The reasoning loop
// makes several LLM calls per request and reports their sum.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}
