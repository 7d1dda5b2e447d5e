package edgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"
)

const tickersJSON = `{
 "0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
 "1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"}
}`

const submissionsJSON = `{
 "cik": "320193",
 "name": "Apple Inc.",
 "filings": {"recent": {
  "accessionNumber": ["0000320193-24-000120", "0000320193-24-000081", "0000320193-24-000069"],
  "filingDate": ["2024-10-31", "2024-08-01", "2024-05-02"],
  "form": ["10-K", "8-K", "8-K"],
  "primaryDocument": ["aapl-20240928.htm", "aapl-20240801.htm", "aapl-20240502.htm"]
 }}
}`

const indexHTML = `<html><body>
<table class="tableFile" summary="Document Format Files">
 <tr><th>Seq</th><th>Description</th><th>Document</th><th>Type</th><th>Size</th></tr>
 <tr><td>1</td><td>8-K</td><td><a href="/ix?doc=/Archives/edgar/data/320193/000032019324000081/aapl-20240801.htm">aapl-20240801.htm</a></td><td>8-K</td><td>31337</td></tr>
 <tr><td>2</td><td>EX-99.1</td><td><a href="/Archives/edgar/data/320193/000032019324000081/a8-kex991q3202406292024.htm">a8-kex991q3202406292024.htm</a></td><td>EX-99.1</td><td>112233</td></tr>
 <tr><td>&nbsp;</td><td>Complete submission text file</td><td><a href="/Archives/edgar/data/320193/000032019324000081/0000320193-24-000081.txt">0000320193-24-000081.txt</a></td><td>&nbsp;</td><td>999</td></tr>
</table>
</body></html>`

func newTestServer(t *testing.T, hits *int32, agents *[]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		atomic.AddInt32(hits, 1)
		*agents = append(*agents, r.Header.Get("User-Agent"))
	}
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Write([]byte(tickersJSON))
	})
	mux.HandleFunc("/submissions/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Write([]byte(submissionsJSON))
	})
	mux.HandleFunc("/submissions/CIK0000789019.json", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/Archives/edgar/data/320193/000032019324000081/0000320193-24-000081-index.htm", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Write([]byte(indexHTML))
	})
	mux.HandleFunc("/Archives/edgar/data/320193/000032019324000081/a8-kex991q3202406292024.htm", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Write([]byte("<html><body><p>Revenue $85.8 billion</p></body></html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(
		WithBaseURLs(srv.URL+"/files/company_tickers.json", srv.URL, srv.URL),
		WithHTTPClient(srv.Client()),
		WithUserAgent("test agent test@example.com"),
	)
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestLatestFiling(t *testing.T) {
	var hits int32
	var agents []string
	srv := newTestServer(t, &hits, &agents)
	c := newTestClient(srv)

	filing, found, err := c.LatestFiling(context.Background(), "aapl", "8-K")
	if err != nil || !found {
		t.Fatalf("LatestFiling = found %v, err %v", found, err)
	}
	if filing.AccessionNumber != "0000320193-24-000081" || filing.FilingDate != "2024-08-01" {
		t.Errorf("picked wrong filing: %+v", filing)
	}
	if filing.CIK != "0000320193" || filing.Company != "Apple Inc." {
		t.Errorf("company fields: %+v", filing)
	}
	if len(filing.Exhibits) != 3 {
		t.Fatalf("expected 3 table rows, got %d: %+v", len(filing.Exhibits), filing.Exhibits)
	}

	primary := filing.Exhibits[0]
	if primary.URL != srv.URL+"/Archives/edgar/data/320193/000032019324000081/aapl-20240801.htm" {
		t.Errorf("inline viewer prefix not stripped: %s", primary.URL)
	}
	ex := filing.Exhibits[1]
	if ex.DocumentType != "EX-99.1" || ex.Sequence != "2" || ex.Size != 112233 || ex.Name != "a8-kex991q3202406292024.htm" {
		t.Errorf("exhibit row parsed wrong: %+v", ex)
	}

	body, err := c.Download(context.Background(), ex)
	if err != nil || !strings.Contains(string(body), "$85.8 billion") {
		t.Errorf("Download = %q, %v", body, err)
	}

	for _, ua := range agents {
		if ua != "test agent test@example.com" {
			t.Errorf("request sent without user agent: %q", ua)
		}
	}
}

func TestLatestFiling_NotFound(t *testing.T) {
	var hits int32
	var agents []string
	srv := newTestServer(t, &hits, &agents)
	c := newTestClient(srv)

	tests := []struct {
		name   string
		ticker string
		form   string
	}{
		{"unknown ticker", "ZZZZ", "8-K"},
		{"no filing of form", "AAPL", "10-Q"},
		{"blank ticker", "  ", "8-K"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, found, err := c.LatestFiling(context.Background(), tt.ticker, tt.form)
			if err != nil || found {
				t.Errorf("LatestFiling(%s, %s) = found %v, err %v", tt.ticker, tt.form, found, err)
			}
		})
	}
}

func TestLatestFiling_UpstreamError(t *testing.T) {
	var hits int32
	var agents []string
	srv := newTestServer(t, &hits, &agents)
	c := newTestClient(srv)

	_, _, err := c.LatestFiling(context.Background(), "MSFT", "8-K")
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestTickerMappingCached(t *testing.T) {
	var hits int32
	var agents []string
	srv := newTestServer(t, &hits, &agents)
	c := newTestClient(srv)

	for i := 0; i < 3; i++ {
		if _, err := c.lookupCIK(context.Background(), "AAPL"); err != nil {
			t.Fatal(err)
		}
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("ticker mapping fetched %d times, want 1", hits)
	}
}

func TestDocumentURL(t *testing.T) {
	base := "https://www.sec.gov"
	tests := []struct {
		href string
		want string
	}{
		{"/Archives/edgar/data/1/2/a.htm", base + "/Archives/edgar/data/1/2/a.htm"},
		{"/ix?doc=/Archives/edgar/data/1/2/b.htm", base + "/Archives/edgar/data/1/2/b.htm"},
		{"Archives/c.htm", base + "/Archives/c.htm"},
		{"https://example.com/d.htm", "https://example.com/d.htm"},
	}
	for _, tt := range tests {
		if got := documentURL(tt.href, base); got != tt.want {
			t.Errorf("documentURL(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
