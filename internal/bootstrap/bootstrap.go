// Package bootstrap assembles the summariser from configuration. The API,
// the CLI and the MCP server share it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/data/store"
	"github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/akolanti/EarningsAPI/internal/edgar"
	"github.com/akolanti/EarningsAPI/internal/pipeline"
	"github.com/akolanti/EarningsAPI/internal/rag"
	"github.com/akolanti/EarningsAPI/internal/rag/embedding"
	"github.com/akolanti/EarningsAPI/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/EarningsAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/EarningsAPI/internal/rag/llm"
	"github.com/akolanti/EarningsAPI/internal/rag/llm/gemini"
	"github.com/akolanti/EarningsAPI/internal/rag/llm/openaiLLM"
	"github.com/akolanti/EarningsAPI/internal/rag/vectorDB"
	"github.com/akolanti/EarningsAPI/internal/rag/vectorDB/memoryDB"
	"github.com/akolanti/EarningsAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
)

var logger = logger_i.NewLogger("Bootstrap")

// NewDriver builds the production pipeline: SEC EDGAR as the filing source
// and the configured query engine.
func NewDriver(ctx context.Context) (*pipeline.Driver, error) {
	engine, err := NewEngine(ctx)
	if err != nil {
		return nil, err
	}
	source := edgar.NewClient(edgar.WithUserAgent(config.SECAgent()))
	return pipeline.NewDriver(source, engine), nil
}

// NewEngine picks the LLM, embedder and vector store named by the
// environment. A missing provider is an error; an unreachable Qdrant falls
// back to the in-process store.
func NewEngine(ctx context.Context) (rag.Service, error) {
	llmProvider, err := newLLM(ctx, config.LLMProvider())
	if err != nil {
		return nil, err
	}
	embedder, err := newEmbedder(ctx, config.EmbeddingProvider())
	if err != nil {
		return nil, err
	}
	vector := newVectorStore(ctx, config.VectorBackend())

	return rag.NewService(vector, llmProvider, embedder), nil
}

func newLLM(ctx context.Context, provider string) (llm.Provider, error) {
	var p llm.Provider
	switch provider {
	case config.LLMProviderGemini:
		p = gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleAPIKey())
	case config.LLMProviderOpenAI:
		p = openaiLLM.GetOpenAIClient(config.OpenAIModelName, config.OpenAIAPIKey())
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
	if p == nil {
		return nil, fmt.Errorf("LLM provider %s is not available", provider)
	}
	return p, nil
}

func newEmbedder(ctx context.Context, provider string) (embedding.Embedder, error) {
	var e embedding.Embedder
	switch provider {
	case config.LLMProviderGemini:
		e = googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey())
	case config.LLMProviderOpenAI:
		e = openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey())
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
	if e == nil {
		return nil, fmt.Errorf("embedding provider %s is not available", provider)
	}
	return e, nil
}

func newVectorStore(ctx context.Context, backend string) vectorDB.DataProcessor {
	if backend == config.VectorBackendMemory {
		logger.Info("Using in-memory vector store")
		return memoryDB.New()
	}
	if q := qdrantDB.GetQuadrantClient(ctx); q != nil {
		return q
	}
	logger.Warn("Qdrant is offline, using in-memory vector store")
	return memoryDB.New()
}

// NewJobStore returns the Redis job store, or the in-memory one when Redis
// is offline and the fallback is enabled.
func NewJobStore(ctx context.Context) (jobModel.JobStore, error) {
	if s := store.GetRedisJobStore(ctx); s != nil {
		return s, nil
	}
	if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
		return nil, fmt.Errorf("redis job store at %s is offline", config.RedisAddress())
	}
	logger.Error("Redis job store is offline, falling back to the in-memory store")
	return store.InitInMemoryJobStore(), nil
}
