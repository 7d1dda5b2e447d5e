// Package edgar loads earnings filings from SEC EDGAR.
// API documentation: https://www.sec.gov/developer
package edgar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/customHttpClient"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
	"golang.org/x/time/rate"
)

var ErrTickerNotFound = errors.New("ticker not found")

var logger = logger_i.NewLogger("EDGAR")

type Client struct {
	httpClient      *http.Client
	limiter         *rate.Limiter
	userAgent       string
	tickersURL      string
	submissionsBase string
	archivesBase    string

	mu      sync.Mutex
	tickers map[string]companyTicker
}

type Option func(*Client)

// WithBaseURLs points the client at a different host, mostly for tests.
func WithBaseURLs(tickersURL, submissionsBase, archivesBase string) Option {
	return func(c *Client) {
		c.tickersURL = tickersURL
		c.submissionsBase = strings.TrimRight(submissionsBase, "/")
		c.archivesBase = strings.TrimRight(archivesBase, "/")
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:      customHttpClient.NewClient(config.SECRequestTimeout),
		limiter:         rate.NewLimiter(rate.Limit(config.SECRequestsPerSecond), 1),
		userAgent:       config.SECAgent(),
		tickersURL:      config.SECTickersURL,
		submissionsBase: config.SECSubmissionsBaseURL,
		archivesBase:    config.SECArchivesBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestFiling returns the newest filing of form for ticker with its
// exhibit table. found is false when the ticker is unknown or has no such
// filing.
func (c *Client) LatestFiling(ctx context.Context, ticker string, form string) (commonModels.Filing, bool, error) {
	log := logger.WithTrace(ctx).With("ticker", ticker, "form", form)

	company, err := c.lookupCIK(ctx, ticker)
	if errors.Is(err, ErrTickerNotFound) {
		log.Info("ticker not in SEC mapping")
		return commonModels.Filing{}, false, nil
	}
	if err != nil {
		return commonModels.Filing{}, false, err
	}

	filing, found, err := c.latestOfForm(ctx, company, form)
	if err != nil || !found {
		return commonModels.Filing{}, found, err
	}

	exhibits, err := c.filingExhibits(ctx, filing.CIK, filing.AccessionNumber)
	if err != nil {
		return commonModels.Filing{}, false, err
	}
	filing.Exhibits = exhibits
	log.Debug("latest filing", "accession", filing.AccessionNumber, "date", filing.FilingDate, "exhibits", len(exhibits))
	return filing, true, nil
}

// Download fetches the exhibit body.
func (c *Client) Download(ctx context.Context, exhibit commonModels.Exhibit) ([]byte, error) {
	if exhibit.URL == "" {
		return nil, fmt.Errorf("exhibit %s has no url", exhibit.Name)
	}
	return c.get(ctx, exhibit.URL)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// SEC rejects requests without a descriptive User-Agent
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxExhibitBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > config.MaxExhibitBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, config.MaxExhibitBytes)
	}
	return body, nil
}
