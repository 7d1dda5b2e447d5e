package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
	"golang.org/x/time/rate"
)

func TestIsValidBearerToken(t *testing.T) {
	log := logger_i.NewLogger("test")
	t.Setenv("API_NO_AUTH", "false")
	t.Setenv("API_AUTH_TOKEN", "s3cret")

	tests := []struct {
		header string
		want   bool
	}{
		{"Bearer s3cret", true},
		{"Bearer wrong", false},
		{"s3cret", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidBearerToken(tt.header, log); got != tt.want {
			t.Errorf("IsValidBearerToken(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}

	t.Setenv("API_AUTH_TOKEN", "")
	if IsValidBearerToken("Bearer ", log) {
		t.Error("an unset token must not accept an empty bearer")
	}

	t.Setenv("API_NO_AUTH", "true")
	if !IsValidBearerToken("", log) {
		t.Error("bypass should accept any request")
	}
}

func TestWrap_TraceAuthAndRateLimit(t *testing.T) {
	t.Setenv("API_NO_AUTH", "false")
	t.Setenv("API_AUTH_TOKEN", "s3cret")
	pollLimiter = newClientLimiter(rate.Limit(1), 1, time.Minute)
	summaryLimiter = newClientLimiter(rate.Limit(1), 1, time.Minute)

	var sawTrace string
	h := Wrap(func(w http.ResponseWriter, r *http.Request) {
		sawTrace, _ = r.Context().Value(config.TRACE_ID_KEY).(string)
		w.WriteHeader(http.StatusNoContent)
	})

	unauth := httptest.NewRecorder()
	h(unauth, httptest.NewRequest(http.MethodGet, "/status/1", nil))
	if unauth.Code != http.StatusUnauthorized {
		t.Errorf("missing token: code %d", unauth.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/status/1", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	req.Header.Set("X-Trace-Id", "trace-42")
	ok := httptest.NewRecorder()
	h(ok, req)
	if ok.Code != http.StatusNoContent || sawTrace != "trace-42" {
		t.Errorf("authorised request: code %d trace %q", ok.Code, sawTrace)
	}
	if ok.Header().Get("X-Trace-Id") != "trace-42" {
		t.Errorf("trace header not echoed")
	}

	again := httptest.NewRequest(http.MethodGet, "/status/1", nil)
	again.Header.Set("Authorization", "Bearer s3cret")
	limited := httptest.NewRecorder()
	h(limited, again)
	if limited.Code != http.StatusTooManyRequests {
		t.Errorf("second request in burst: code %d, want 429", limited.Code)
	}
}

func TestWrap_SummaryBudgetIsSeparate(t *testing.T) {
	t.Setenv("API_NO_AUTH", "true")
	pollLimiter = newClientLimiter(rate.Limit(100), 10, time.Minute)
	summaryLimiter = newClientLimiter(rate.Every(time.Hour), 1, time.Minute)

	h := Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	post := func() int {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/summary", nil))
		return rec.Code
	}

	if code := post(); code != http.StatusAccepted {
		t.Fatalf("first submission: code %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Errorf("second submission: code %d, want 429", code)
	}

	poll := httptest.NewRecorder()
	h(poll, httptest.NewRequest(http.MethodGet, "/status/1", nil))
	if poll.Code != http.StatusAccepted {
		t.Errorf("polling should not share the submission budget: code %d", poll.Code)
	}
}

func TestClientLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newClientLimiter(rate.Every(time.Hour), 1, 10*time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("192.0.2.1") || !l.Allow("192.0.2.2") {
		t.Fatal("first request per client should pass")
	}
	if l.Allow("192.0.2.1") {
		t.Error("burst of 1 should block the second request")
	}

	now = now.Add(5 * time.Minute)
	l.Allow("192.0.2.3")
	if n := l.tracked(); n != 3 {
		t.Errorf("tracked = %d before the idle window, want 3", n)
	}

	now = now.Add(11 * time.Minute)
	if !l.Allow("192.0.2.4") {
		t.Error("new client should pass")
	}
	if n := l.tracked(); n != 1 {
		t.Errorf("tracked = %d after the idle window, want 1", n)
	}
}
