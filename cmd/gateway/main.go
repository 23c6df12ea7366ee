// In file: cmd/gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"toolbridge/internal/catalog"
	"toolbridge/internal/llm"
)

// main is the entry point for the application.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting ToolBridge Gateway | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Printf("✅ Configuration loaded. Probing %d toolkit labels.", len(cfg.Toolkits))

	// 2. INITIALIZE SERVICES
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
	}

	catalogClient, err := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	llmClient, err := initializeLLMClient(cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	chatHandler := NewChatHandler(llmClient, catalogClient, cfg, rdb)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/chat", chatHandler.HandleChat)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: fmt.Sprintf(":%s", port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeLLMClient creates the configured LLM provider client.
func initializeLLMClient(cfg *AppConfig) (llm.LLMClient, error) {
	switch cfg.LLM.Provider {
	case "ollama":
		return llm.NewOllamaClient(cfg.LLM.OllamaHost)
	case "gemini":
		return llm.NewGeminiClient(os.Getenv("GEMINI_API_KEY"), cfg.LLM.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider '%s' (expected 'ollama' or 'gemini')", cfg.LLM.Provider)
	}
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Gateway is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
