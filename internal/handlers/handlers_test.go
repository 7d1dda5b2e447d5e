package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/EarningsAPI/internal/api"
	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/data/store"
	"github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/akolanti/EarningsAPI/internal/job"
	"github.com/go-chi/chi/v5"
)

var (
	testStore   = store.InitInMemoryJobStore()
	testService = job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          testStore,
	})
)

func init() {
	InitJobHandler(testService)
}

func postSummary(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/summary", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), config.TRACE_ID_KEY, "trace-1"))
	rec := httptest.NewRecorder()
	SummaryHandler(rec, req)
	return rec
}

func TestSummaryHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"ticker":`},
		{"missing ticker", `{}`},
		{"ticker with spaces", `{"ticker":"A B"}`},
		{"ticker too long", `{"ticker":"ABCDEFGHIJKL"}`},
		{"bad form", `{"ticker":"AAPL","form":"8 K"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postSummary(tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var resp api.JobResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error == nil || resp.Error.Code != http.StatusBadRequest {
				t.Errorf("error body = %+v", resp.Error)
			}
		})
	}
}

func TestSummaryHandler_QueuesJob(t *testing.T) {
	rec := postSummary(`{"ticker":" brk.b "}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}

	var init api.InitJobResponse
	if err := json.NewDecoder(rec.Body).Decode(&init); err != nil {
		t.Fatal(err)
	}
	if init.Id == "" || init.StatusURL != "status/"+init.Id {
		t.Fatalf("response = %+v", init)
	}

	queued := <-testService.JobChannel
	if queued.Id != init.Id || queued.TraceId != "trace-1" {
		t.Errorf("queued job = %+v", queued)
	}
	if queued.JobPayload.Ticker != "BRK.B" || queued.JobPayload.Form != "8-K" {
		t.Errorf("payload = %+v", queued.JobPayload)
	}

	saved, ok := testStore.GetJob(context.Background(), init.Id)
	if !ok || saved.Status != jobModel.JobStatusQueued {
		t.Errorf("saved job = %+v, found %v", saved, ok)
	}
}

const doneJobID = "6f1c2b0e-8d3a-4f5b-9c7e-2a1d0e9f8b7c"

func TestGetStatusHandler(t *testing.T) {
	ctx := context.Background()
	_ = testStore.SaveJob(ctx, jobModel.Job{
		Id:          doneJobID,
		Status:      jobModel.JobStatusComplete,
		CurrentStep: jobModel.Complete,
		JobPayload: jobModel.JobPayload{
			Ticker:  "AAPL",
			Form:    "8-K",
			Outcome: "success",
			Report:  "Revenue: $1 N/A YoY",
			Metrics: map[string]string{"revenue": "$1"},
		},
	})

	r := chi.NewRouter()
	r.Get("/status/{id}", GetStatusHandler)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/"+doneJobID, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp api.JobResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp.Result.Status != string(jobModel.JobStatusComplete) || resp.Result.Summary == nil {
			t.Fatalf("result = %+v", resp.Result)
		}
		if resp.Result.Summary.Report != "Revenue: $1 N/A YoY" || resp.Result.Summary.Metrics["revenue"] != "$1" {
			t.Errorf("summary = %+v", resp.Result.Summary)
		}
		if resp.Error != nil {
			t.Errorf("unexpected error %+v", resp.Error)
		}
	})

	for _, id := range []string{"missing", "9b2e4c1a-0000-4000-8000-000000000000"} {
		t.Run("not found "+id, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/"+id, nil))
			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", rec.Code)
			}
		})
	}
}
