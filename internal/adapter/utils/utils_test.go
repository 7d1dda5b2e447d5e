package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/EarningsAPI/internal/api"
)

func TestJobIDParam(t *testing.T) {
	r := NewRouter()
	var got string
	r.Get("/status/{id}", func(w http.ResponseWriter, req *http.Request) {
		got = JobIDParam(req)
	})

	id := NewJobID()
	tests := []struct {
		path string
		want string
	}{
		{"/status/" + id, id},
		{"/status/not-a-uuid", ""},
		{"/status/1", ""},
	}
	for _, tt := range tests {
		got = "unset"
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
		if got != tt.want {
			t.Errorf("JobIDParam(%s) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewRouter_JSONErrors(t *testing.T) {
	r := NewRouter()
	r.Post("/summary", func(w http.ResponseWriter, req *http.Request) {})

	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodGet, "/summary", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.code {
			t.Errorf("%s %s: code %d, want %d", tt.method, tt.path, rec.Code, tt.code)
			continue
		}
		var body api.JobResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Error == nil || body.Error.Code != tt.code {
			t.Errorf("%s %s: error body %+v", tt.method, tt.path, body.Error)
		}
	}

	metrics := httptest.NewRecorder()
	r.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if metrics.Code != http.StatusOK {
		t.Errorf("/metrics: code %d", metrics.Code)
	}
}
