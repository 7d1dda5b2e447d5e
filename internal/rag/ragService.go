package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/metrics"
	"github.com/akolanti/EarningsAPI/internal/rag/embedding"
	"github.com/akolanti/EarningsAPI/internal/rag/ingest"
	"github.com/akolanti/EarningsAPI/internal/rag/llm"
	"github.com/akolanti/EarningsAPI/internal/rag/vectorDB"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
	"github.com/google/uuid"
)

var ErrIndexNotBuilt = errors.New("index has not been built")

// Index is a handle to the chunks of one document. It is owned by a single
// pipeline run and must be released when the run ends.
type Index struct {
	collection string
	chunkCount int
	built      bool
}

func (i Index) ChunkCount() int { return i.chunkCount }

func (i Index) Collection() string { return i.collection }

// Service is the only thing the pipeline calls. It keeps the vector store,
// the embedder and the llm out of the pipeline's sight.
type Service interface {
	BuildIndex(ctx context.Context, text string, source string) (Index, error)
	Query(ctx context.Context, index Index, question string, topK int) (string, error)
	Release(ctx context.Context, index Index) error
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) BuildIndex(ctx context.Context, text string, source string) (Index, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("index_build", time.Since(start)) }()
	log := s.logger.WithTrace(ctx)

	chunks := ingest.PrepareChunks(text, source)
	if len(chunks) == 0 {
		log.Warn("no text to index", "source", source)
		return Index{built: true}, nil
	}

	collection := config.ExhibitCollectionPrefix + uuid.New().String()
	if err := s.vectorDB.CreateCollection(ctx, collection); err != nil {
		return Index{}, fmt.Errorf("creating collection: %w", err)
	}

	if err := ingest.BatchIngest(ctx, collection, chunks, s.vectorDB, s.embedder); err != nil {
		s.dropCollection(ctx, collection)
		return Index{}, err
	}

	log.Info("index built", "collection", collection, "chunks", len(chunks))
	return Index{collection: collection, chunkCount: len(chunks), built: true}, nil
}

func (s *service) Query(ctx context.Context, index Index, question string, topK int) (string, error) {
	if !index.built {
		return "", ErrIndexNotBuilt
	}
	if index.chunkCount == 0 {
		return "", nil
	}
	if topK <= 0 {
		topK = config.SimilarityTopK
	}

	emb, err := s.executeEmbeddingStep(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embedding question: %w", err)
	}

	matches, err := s.executeVectorSearchStep(ctx, index.collection, emb, topK)
	if err != nil {
		return "", fmt.Errorf("searching index: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}

	answer, err := s.executeLLMStep(ctx, question, matches)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func (s *service) Release(ctx context.Context, index Index) error {
	if index.collection == "" {
		return nil
	}
	if err := s.vectorDB.DeleteCollection(ctx, index.collection); err != nil {
		s.logger.WithTrace(ctx).Error("could not release index", "collection", index.collection, "error", err)
		return err
	}
	return nil
}
