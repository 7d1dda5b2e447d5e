package mcpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const summaryToolName = "earnings_summary"

type SummaryInput struct {
	Ticker string `json:"ticker" jsonschema:"stock ticker symbol, for example AAPL"`
	Form   string `json:"form,omitempty" jsonschema:"SEC form type to look up (default 8-K)"`
}

type SummaryOutput struct {
	Ticker  string `json:"ticker"`
	Form    string `json:"form"`
	Outcome string `json:"outcome"`
	Report  string `json:"report"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        summaryToolName,
		Description: "Summarise the latest earnings release a company filed with the SEC: revenue, operating income, EPS, guidance and key drivers",
	}, s.handleSummary)
}

// handleSummary only fails on bad input. Pipeline failures are reported in
// the output, the same way the CLI prints them.
func (s *Server) handleSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummaryInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	if strings.TrimSpace(input.Ticker) == "" {
		return nil, SummaryOutput{}, errors.New("ticker is required")
	}

	ref := commonModels.FilingReference{Ticker: input.Ticker, Form: input.Form}.Normalised(config.DefaultForm)
	logger.WithTrace(ctx).Debug("Summary requested", "ticker", ref.Ticker, "form", ref.Form)
	summary := s.summariser.Summarise(ctx, ref)

	return nil, SummaryOutput{
		Ticker:  ref.Ticker,
		Form:    ref.Form,
		Outcome: string(summary.Outcome),
		Report:  summary.Report,
	}, nil
}
