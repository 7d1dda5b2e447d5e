package extract

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

type mockEngine struct {
	mu      sync.Mutex
	answers map[string]string
	fail    map[string]error
	asked   []string
	topKs   []int
}

func (m *mockEngine) query(ctx context.Context, question string, topK int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.asked = append(m.asked, question)
	m.topKs = append(m.topKs, topK)
	if err, ok := m.fail[question]; ok {
		return "", err
	}
	return m.answers[question], nil
}

func questionFor(key string) string {
	for _, q := range Queries {
		if q.Key == key {
			return q.Question
		}
	}
	return ""
}

func TestExtract_AllKeysInOrder(t *testing.T) {
	engine := &mockEngine{answers: map[string]string{
		questionFor(Revenue):         "Revenue was $450 million, up 12.5%",
		questionFor(OperatingIncome): "operating income 80 million -3%",
		questionFor(EPS):             "EPS of $1.10 0",
		questionFor(Guidance):        "Q3 revenue of $470-$480 million",
		questionFor(Drivers):         "- Cloud growth\n- Pricing",
	}}

	got := NewExtractor().Extract(context.Background(), engine.query)

	if len(got) != len(Queries) {
		t.Fatalf("got %d metrics, want %d", len(got), len(Queries))
	}
	for i, key := range Keys() {
		if got[i].Key != key {
			t.Errorf("position %d = %s, want %s", i, got[i].Key, key)
		}
	}

	want := map[string]string{
		Revenue:         "$450 +12.5% YoY",
		OperatingIncome: "80 -3% YoY",
		EPS:             "$1.10 0% YoY",
		Guidance:        "Q3 revenue of $470-$480 million",
		Drivers:         "- Cloud growth\n- Pricing",
	}
	for key, value := range got.AsMap() {
		if value != want[key] {
			t.Errorf("%s = %q, want %q", key, value, want[key])
		}
	}

	for _, k := range engine.topKs {
		if k != 3 {
			t.Errorf("topK = %d, want 3", k)
		}
	}
}

func TestExtract_QueryFailureDegradesInPlace(t *testing.T) {
	engine := &mockEngine{
		answers: map[string]string{questionFor(Revenue): "$10 5%"},
		fail:    map[string]error{questionFor(EPS): errors.New("engine timeout")},
	}

	got := NewExtractor().Extract(context.Background(), engine.query)

	if len(got) != 5 {
		t.Fatalf("expected all five keys, got %d", len(got))
	}
	eps, _ := got.Get(EPS)
	if !eps.Failed {
		t.Fatal("eps should be marked failed")
	}
	if !strings.Contains(eps.String(), "engine timeout") || strings.HasSuffix(eps.String(), "YoY") {
		t.Errorf("unexpected placeholder %q", eps.String())
	}
	revenue, _ := got.Get(Revenue)
	if revenue.String() != "$10 +5% YoY" {
		t.Errorf("revenue = %q", revenue.String())
	}
}

func TestExtract_FallbackShape(t *testing.T) {
	engine := &mockEngine{answers: map[string]string{
		questionFor(Revenue): "results not disclosed",
	}}

	got := NewExtractor().Extract(context.Background(), engine.query)

	revenue, _ := got.Get(Revenue)
	if revenue.Parsed {
		t.Error("expected fallback path")
	}
	if revenue.String() != "results not disclosed N/A YoY" {
		t.Errorf("revenue = %q", revenue.String())
	}
	// an empty answer still goes through the numeric fallback
	opIncome, _ := got.Get(OperatingIncome)
	if opIncome.String() != " N/A YoY" {
		t.Errorf("operating income = %q", opIncome.String())
	}
	guidance, _ := got.Get(Guidance)
	if guidance.String() != "Not provided" {
		t.Errorf("guidance = %q", guidance.String())
	}
}

func TestExtract_ConcurrentKeepsOrder(t *testing.T) {
	engine := &mockEngine{answers: map[string]string{}}
	for _, q := range Queries {
		engine.answers[q.Question] = q.Key + " 1 2"
	}

	got := NewExtractor(WithConcurrency(5)).Extract(context.Background(), engine.query)

	for i, key := range Keys() {
		if got[i].Key != key {
			t.Fatalf("position %d = %s, want %s", i, got[i].Key, key)
		}
	}
	if len(engine.asked) != 5 {
		t.Errorf("asked %d questions, want 5", len(engine.asked))
	}
}

func TestParse_DriversIsNotParsed(t *testing.T) {
	m := Parse(MetricQuery{Key: Drivers}, "Revenue up 10 20")
	if m.String() != "Revenue up 10 20" {
		t.Errorf("drivers = %q", m.String())
	}
}

func TestExtract_PanicReachesCaller(t *testing.T) {
	defer func() {
		if r := recover(); r != "engine exploded" {
			t.Errorf("recovered %v, want the query panic", r)
		}
	}()

	NewExtractor(WithConcurrency(2)).Extract(context.Background(), func(ctx context.Context, question string, topK int) (string, error) {
		panic("engine exploded")
	})
	t.Error("Extract should have panicked")
}
