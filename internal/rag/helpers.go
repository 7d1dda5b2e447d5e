package rag

import (
	"context"
	"time"

	"github.com/akolanti/EarningsAPI/internal/metrics"
	"github.com/akolanti/EarningsAPI/internal/rag/vectorDB"
)

// dropCollection cleans up after a failed build. It uses its own context so
// a cancelled run still releases what it created.
func (s *service) dropCollection(ctx context.Context, collection string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.vectorDB.DeleteCollection(cleanupCtx, collection); err != nil {
		s.logger.WithTrace(ctx).Warn("could not drop collection", "collection", collection, "error", err)
	}
}

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeVectorSearchStep(ctx context.Context, collection string, emb []float32, topK int) ([]string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	matches, err := s.vectorDB.Search(ctx, collection, emb, topK)
	if err != nil {
		return nil, err
	}
	return vectorDB.Contents(matches), nil
}

func (s *service) executeLLMStep(ctx context.Context, question string, matches []string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, question, matches)
}
