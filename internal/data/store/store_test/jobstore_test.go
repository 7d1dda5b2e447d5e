package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/data/redisStore"
	"github.com/akolanti/EarningsAPI/internal/data/store"
	"github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newJob(id string) jobModel.Job {
	return jobModel.Job{
		Id:          id,
		Status:      jobModel.JobStatusComplete,
		CurrentStep: jobModel.Complete,
		JobPayload: jobModel.JobPayload{
			Ticker:  "AAPL",
			Form:    "8-K",
			Outcome: "success",
			Report:  "Revenue: $85.8 +5% YoY",
			Metrics: map[string]string{"revenue": "$85.8 +5% YoY"},
		},
	}
}

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"
	testJob := newJob(jobID)

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, testJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}
		if retrievedJob.JobPayload.Report != testJob.JobPayload.Report ||
			retrievedJob.JobPayload.Metrics["revenue"] != "$85.8 +5% YoY" {
			t.Errorf("Data mismatch! Got %+v", retrievedJob.JobPayload)
		}
	})

	t.Run("Saved with TTL", func(t *testing.T) {
		if ttl := mr.TTL(store.JobKey(jobID)); ttl != config.RedisJobStoreTTL {
			t.Errorf("TTL = %v, want %v", ttl, config.RedisJobStoreTTL)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		if _, found := jobStore.GetJob(ctx, "ghost-id"); found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Corrupt value is not found", func(t *testing.T) {
		_ = mr.Set(store.JobKey("bad"), "{not json")
		if _, found := jobStore.GetJob(ctx, "bad"); found {
			t.Error("Expected found=false for undecodable job")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)
		if mr.Exists(store.JobKey(jobID)) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := newJob("race-job")

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
	wg.Wait()

	if _, found := jobStore.GetJob(ctx, "race-job"); !found {
		t.Error("job missing after concurrent saves")
	}
}

func TestInMemoryJobStore(t *testing.T) {
	s := store.InitInMemoryJobStore()
	ctx := context.Background()

	if err := s.SaveJob(ctx, newJob("m1")); err != nil {
		t.Fatal(err)
	}
	got, found := s.GetJob(ctx, "m1")
	if !found || got.JobPayload.Ticker != "AAPL" {
		t.Errorf("GetJob = %+v, %v", got, found)
	}
	s.DeleteJob(ctx, "m1")
	if _, found := s.GetJob(ctx, "m1"); found {
		t.Error("job still present after delete")
	}
}

func TestInMemoryJobStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := store.NewInMemoryJobStore(config.RedisJobStoreTTL, func() time.Time { return now })

	_ = s.SaveJob(ctx, newJob("old"))
	now = now.Add(config.RedisJobStoreTTL - time.Minute)
	if _, found := s.GetJob(ctx, "old"); !found {
		t.Fatal("job expired before its ttl")
	}

	// saving again restarts the clock
	_ = s.SaveJob(ctx, newJob("old"))
	_ = s.SaveJob(ctx, newJob("other"))
	now = now.Add(config.RedisJobStoreTTL - time.Minute)
	if _, found := s.GetJob(ctx, "old"); !found {
		t.Error("re-saved job should still be present")
	}

	now = now.Add(2 * time.Minute)
	if _, found := s.GetJob(ctx, "old"); found {
		t.Error("job should expire after the ttl")
	}
	_ = s.SaveJob(ctx, newJob("fresh"))
	if _, found := s.GetJob(ctx, "other"); found {
		t.Error("expired job visible after a later save")
	}
	if _, found := s.GetJob(ctx, "fresh"); !found {
		t.Error("fresh job missing")
	}
}
