package embedding

import "context"

// Embedder turns text into vectors. GetEmbedding embeds a search query;
// BatchEmbedding embeds document chunks and returns one vector per chunk.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
