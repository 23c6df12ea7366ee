// In file: cmd/gateway/handler.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"toolbridge/internal/agent"
	"toolbridge/internal/api"
	"toolbridge/internal/catalog"
	"toolbridge/internal/llm"
	"toolbridge/internal/postprocess"
	"toolbridge/internal/toolkit"
	"toolbridge/internal/tools"
	cacheversion "toolbridge/internal/version"
)

// ChatHandler serves the /api/v1/chat endpoint. It owns the process-wide
// singleton tool set: the set is built lazily on the first request and reused
// for every subsequent one, guarded so concurrent first callers cannot race
// to build two distinct sets. A failed build is terminal for this process
// instance; rebuilding is never attempted.
type ChatHandler struct {
	llmClient llm.LLMClient
	catalog   catalog.Client
	config    *AppConfig
	rdb       *redis.Client

	initOnce  sync.Once
	toolAgent *agent.Agent
	initErr   error
}

func NewChatHandler(llmClient llm.LLMClient, catalogClient catalog.Client, config *AppConfig, rdb *redis.Client) *ChatHandler {
	return &ChatHandler{
		llmClient: llmClient,
		catalog:   catalogClient,
		config:    config,
		rdb:       rdb,
	}
}

// HandleChat processes one user message through the reasoning loop and
// returns a single reply string. Each request is stateless.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	startTime := time.Now()
	var req api.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	log.Printf("📩 User: %.80s", req.Message)

	toolAgent, err := h.initAgent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent failed to initialize tools: " + err.Error()})
		return
	}

	cacheKey := cacheversion.GenerateVersionedCacheKey("replycache", req.Message)
	if cached, found := h.checkCache(c.Request.Context(), cacheKey); found {
		log.Println("✅ Cache HIT")
		var cachedResp api.ChatResponse
		if json.Unmarshal([]byte(cached), &cachedResp) == nil {
			cachedResp.LatencyMS = time.Since(startTime).Milliseconds()
			cachedResp.CacheStatus = "HIT"
			c.JSON(http.StatusOK, cachedResp)
			return
		}
	}

	output, usage, err := toolAgent.Run(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("❌ Agent error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Salvage any raw payload that leaked into the final answer before it
	// reaches the caller.
	reply := postprocess.Sanitize(output)

	response := api.ChatResponse{
		Reply:       reply,
		ModelUsed:   h.config.LLM.Model,
		Usage:       usage,
		LatencyMS:   time.Since(startTime).Milliseconds(),
		CacheStatus: "MISS",
	}
	h.setCache(c.Request.Context(), cacheKey, response)
	c.JSON(http.StatusOK, response)
}

// initAgent builds the singleton tool set on first use: discover actions
// across all configured toolkit labels, wrap each one, and hand the uniform
// set to a reasoning loop. First caller wins; everyone else observes the same
// outcome, success or failure.
func (h *ChatHandler) initAgent(ctx context.Context) (*agent.Agent, error) {
	h.initOnce.Do(func() {
		actions, report, err := toolkit.Discover(ctx, h.catalog, h.config.CatalogUserID, h.config.Toolkits)
		h.recordProbeOutcomes(ctx, report)
		if err != nil {
			h.initErr = err
			return
		}
		toolkit.LogCategories(actions)

		manager := tools.NewToolManager()
		for _, action := range actions {
			manager.Register(tools.NewRemoteTool(action, h.catalog, h.config.CatalogUserID))
		}
		log.Printf("✅ Tool set built with %d tools.", manager.ToolCount())

		h.toolAgent = agent.New(h.llmClient, manager, h.config.LLM.Model, h.config.LLM.NumCtx)
		h.toolAgent.SetMaxIterations(h.config.Agent.MaxIterations)
	})
	if h.initErr != nil {
		return nil, h.initErr
	}
	if h.toolAgent == nil {
		return nil, errors.New("tool set was never built")
	}
	return h.toolAgent, nil
}

// recordProbeOutcomes persists the per-label probe results to Redis so
// operators can tune the label list without grepping logs. Advisory only;
// failures are logged and ignored.
func (h *ChatHandler) recordProbeOutcomes(ctx context.Context, report *toolkit.Report) {
	if h.rdb == nil || report == nil {
		return
	}
	fields := make(map[string]interface{}, len(report.Probes))
	for _, probe := range report.Probes {
		switch {
		case probe.Err != nil:
			fields[probe.Label] = "error: " + probe.Err.Error()
		case probe.Actions == 0:
			fields[probe.Label] = "no actions"
		default:
			fields[probe.Label] = fmt.Sprintf("%d actions", probe.Actions)
		}
	}
	if err := h.rdb.HSet(ctx, "toolkit:probes", fields).Err(); err != nil {
		log.Printf("WARNING: Failed to record probe outcomes in Redis: %v", err)
	}
}

func (h *ChatHandler) checkCache(ctx context.Context, key string) (string, bool) {
	if h.rdb == nil {
		return "", false
	}
	val, err := h.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (h *ChatHandler) setCache(ctx context.Context, key string, response api.ChatResponse) {
	if h.rdb == nil {
		return
	}
	respBytes, err := json.Marshal(response)
	if err != nil {
		log.Printf("WARNING: Failed to marshal response for caching: %v", err)
		return
	}
	if err := h.rdb.Set(ctx, key, string(respBytes), 1*time.Hour).Err(); err != nil {
		log.Printf("WARNING: Failed to cache reply in Redis: %v", err)
	} else {
		log.Println("✅ Reply CACHED")
	}
}
