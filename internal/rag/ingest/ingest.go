package ingest

import (
	"context"
	"fmt"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/rag/embedding"
	"github.com/akolanti/EarningsAPI/internal/rag/vectorDB"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
	"github.com/google/uuid"
)

var logger = logger_i.NewLogger("Ingest")

// PrepareChunks splits normalised text and tags every chunk with its
// position and source.
func PrepareChunks(text string, source string) []commonModels.DocChunk {
	parts := SplitText(text, config.ChunkSize, config.ChunkOverlap)
	chunks := make([]commonModels.DocChunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, commonModels.DocChunk{
			ChunkId:    uuid.New().String(),
			Chunk:      part,
			ChunkOrder: i,
			Source:     source,
		})
	}
	return chunks
}

// BatchIngest embeds chunks in batches and upserts them into collection.
func BatchIngest(ctx context.Context, collection string, chunks []commonModels.DocChunk, vectorDB vectorDB.DataProcessor, embedder embedding.Embedder) error {
	log := logger.WithTrace(ctx).With("collection", collection)
	batchSize := config.EmbedBatchSize

	for i := 0; i < len(chunks); i += batchSize {
		end := min(i+batchSize, len(chunks))
		currentBatch := chunks[i:end]

		texts := make([]string, len(currentBatch))
		for j, c := range currentBatch {
			texts[j] = c.Chunk
		}

		log.Debug("starting embedding call", "batch", i/batchSize, "size", len(texts))
		vectors, err := embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(vectors) != len(currentBatch) {
			return fmt.Errorf("embedding batch returned %d vectors for %d chunks", len(vectors), len(currentBatch))
		}

		if err = vectorDB.UpsertBatch(ctx, collection, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting batch failed: %w", err)
		}
	}
	log.Debug("ingested chunks", "count", len(chunks))
	return nil
}
