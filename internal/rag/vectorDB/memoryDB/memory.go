package memoryDB

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/rag/vectorDB"
)

type point struct {
	chunk  commonModels.DocChunk
	vector []float32
	norm   float64
}

// Store keeps collections in process memory and ranks by cosine similarity.
// It is used when Qdrant is not reachable.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]point
}

func New() *Store {
	return &Store{collections: make(map[string][]point)}
}

func (s *Store) CreateCollection(_ context.Context, collectionName string) error {
	if collectionName == "" {
		return fmt.Errorf("empty collection name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collectionName]; !ok {
		s.collections[collectionName] = []point{}
	}
	return nil
}

func (s *Store) UpsertBatch(_ context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	points, ok := s.collections[collectionName]
	if !ok {
		return fmt.Errorf("collection %s does not exist", collectionName)
	}
	for i, c := range chunks {
		points = append(points, point{chunk: c, vector: vectors[i], norm: norm(vectors[i])})
	}
	s.collections[collectionName] = points
	return nil
}

func (s *Store) Search(_ context.Context, collectionName string, vectorVal []float32, topK int) ([]vectorDB.Match, error) {
	s.mu.RLock()
	points, ok := s.collections[collectionName]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("collection %s does not exist", collectionName)
	}

	qNorm := norm(vectorVal)
	matches := make([]vectorDB.Match, 0, len(points))
	for _, p := range points {
		matches = append(matches, vectorDB.Match{
			Content:    p.chunk.Chunk,
			ChunkOrder: p.chunk.ChunkOrder,
			Score:      cosine(vectorVal, qNorm, p.vector, p.norm),
		})
	}

	slices.SortStableFunc(matches, func(a, b vectorDB.Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return a.ChunkOrder - b.ChunkOrder
	})
	if topK >= 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (s *Store) DeleteCollection(_ context.Context, collectionName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collectionName)
	return nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func cosine(a []float32, aNorm float64, b []float32, bNorm float64) float32 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	n := min(len(a), len(b))
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot / (aNorm * bNorm))
}
