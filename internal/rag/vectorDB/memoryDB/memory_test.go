package memoryDB

import (
	"context"
	"testing"

	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
)

func TestStore_SearchRanksByCosine(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateCollection(ctx, "c1"); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	chunks := []commonModels.DocChunk{
		{ChunkId: "a", Chunk: "revenue", ChunkOrder: 0},
		{ChunkId: "b", Chunk: "guidance", ChunkOrder: 1},
		{ChunkId: "c", Chunk: "eps", ChunkOrder: 2},
	}
	vectors := [][]float32{{1, 0}, {0, 1}, {0.7, 0.7}}
	if err := s.UpsertBatch(ctx, "c1", chunks, vectors); err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}

	got, err := s.Search(ctx, "c1", []float32{1, 0.1}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Content != "revenue" || got[1].Content != "eps" {
		t.Errorf("unexpected order: %+v", got)
	}
	if got[0].Score < got[1].Score {
		t.Errorf("scores not descending: %+v", got)
	}
}

func TestStore_CollectionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.UpsertBatch(ctx, "missing", []commonModels.DocChunk{{}}, [][]float32{{1}}); err == nil {
		t.Error("expected error upserting into a missing collection")
	}
	if err := s.CreateCollection(ctx, ""); err == nil {
		t.Error("expected error for empty collection name")
	}

	_ = s.CreateCollection(ctx, "run")
	if err := s.UpsertBatch(ctx, "run", []commonModels.DocChunk{{Chunk: "x"}}, nil); err == nil {
		t.Error("expected mismatch error")
	}
	if err := s.DeleteCollection(ctx, "run"); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}
	if _, err := s.Search(ctx, "run", []float32{1}, 3); err == nil {
		t.Error("expected error searching a deleted collection")
	}
}

func TestStore_ZeroVector(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.CreateCollection(ctx, "z")
	_ = s.UpsertBatch(ctx, "z", []commonModels.DocChunk{{Chunk: "only"}}, [][]float32{{0, 0}})

	got, err := s.Search(ctx, "z", []float32{1, 1}, 5)
	if err != nil || len(got) != 1 || got[0].Score != 0 {
		t.Errorf("zero vector search = %+v, %v", got, err)
	}
}
