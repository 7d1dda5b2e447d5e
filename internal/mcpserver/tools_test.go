package mcpserver

import (
	"context"
	"testing"

	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mockSummariser struct {
	OnSummarise func(ref commonModels.FilingReference) pipeline.Summary
	calls       int
}

func (m *mockSummariser) Summarise(ctx context.Context, ref commonModels.FilingReference) pipeline.Summary {
	m.calls++
	return m.OnSummarise(ref)
}

func TestNewServer_RequiresSummariser(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Fatal("expected an error without a summariser")
	}
}

func TestServer_handleSummary(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   SummaryInput
		summary pipeline.Summary
		want    SummaryOutput
	}{
		{
			name:    "success with default form",
			input:   SummaryInput{Ticker: " aapl "},
			summary: pipeline.Summary{Outcome: pipeline.OutcomeSuccess, Report: "Revenue: $1 N/A YoY"},
			want:    SummaryOutput{Ticker: "AAPL", Form: "8-K", Outcome: "success", Report: "Revenue: $1 N/A YoY"},
		},
		{
			name:    "not found is not a tool error",
			input:   SummaryInput{Ticker: "ZZZZ", Form: "10-q"},
			summary: pipeline.Summary{Outcome: pipeline.OutcomeNoFilings, Report: "No 10-Q filings found for ZZZZ"},
			want:    SummaryOutput{Ticker: "ZZZZ", Form: "10-Q", Outcome: "no_filings", Report: "No 10-Q filings found for ZZZZ"},
		},
		{
			name:    "pipeline error is reported in the output",
			input:   SummaryInput{Ticker: "MSFT"},
			summary: pipeline.Summary{Outcome: pipeline.OutcomeError, Report: "Error processing MSFT: timeout"},
			want:    SummaryOutput{Ticker: "MSFT", Form: "8-K", Outcome: "error", Report: "Error processing MSFT: timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got commonModels.FilingReference
			mock := &mockSummariser{OnSummarise: func(ref commonModels.FilingReference) pipeline.Summary {
				got = ref
				return tt.summary
			}}
			server, err := NewServer(mock)
			if err != nil {
				t.Fatal(err)
			}

			_, output, err := server.handleSummary(ctx, nil, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output != tt.want {
				t.Errorf("output = %+v, want %+v", output, tt.want)
			}
			if got.Ticker != tt.want.Ticker || got.Form != tt.want.Form {
				t.Errorf("summariser got %+v", got)
			}
		})
	}
}

func TestServer_handleSummary_EmptyTicker(t *testing.T) {
	mock := &mockSummariser{OnSummarise: func(ref commonModels.FilingReference) pipeline.Summary {
		return pipeline.Summary{}
	}}
	server, _ := NewServer(mock)

	if _, _, err := server.handleSummary(context.Background(), nil, SummaryInput{Ticker: "  "}); err == nil {
		t.Fatal("expected an error for an empty ticker")
	}
	if mock.calls != 0 {
		t.Error("summariser should not run without a ticker")
	}
}

func TestServer_ListsTool(t *testing.T) {
	ctx := context.Background()
	mock := &mockSummariser{OnSummarise: func(ref commonModels.FilingReference) pipeline.Summary {
		return pipeline.Summary{}
	}}
	server, _ := NewServer(mock)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(tools.Tools) != 1 || tools.Tools[0].Name != summaryToolName {
		t.Fatalf("tools = %+v", tools.Tools)
	}
}
