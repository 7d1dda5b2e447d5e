package vectorDB

import (
	"context"

	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
)

type Match struct {
	Content    string
	ChunkOrder int
	Score      float32
}

// DataProcessor stores the chunk vectors of one run's collection.
type DataProcessor interface {
	CreateCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error
	Search(ctx context.Context, collectionName string, vectorVal []float32, topK int) ([]Match, error)
	DeleteCollection(ctx context.Context, collectionName string) error
}

func Contents(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Content
	}
	return out
}
