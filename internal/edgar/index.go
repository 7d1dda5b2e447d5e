package edgar

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
)

// filingExhibits reads the document table of the filing index page.
func (c *Client) filingExhibits(ctx context.Context, cik string, accession string) ([]commonModels.Exhibit, error) {
	url := c.indexURL(cik, accession)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filing index: %w", err)
	}
	return parseIndex(body, c.archivesBase)
}

// indexURL: {archives}/Archives/edgar/data/{cik}/{accession no dashes}/{accession}-index.htm
func (c *Client) indexURL(cik string, accession string) string {
	trimmed := strings.TrimLeft(cik, "0")
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s-index.htm",
		c.archivesBase, trimmed, strings.ReplaceAll(accession, "-", ""), accession)
}

func parseIndex(body []byte, archivesBase string) ([]commonModels.Exhibit, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse filing index: %w", err)
	}

	var exhibits []commonModels.Exhibit
	doc.Find("table.tableFile tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		link := cells.Eq(2).Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		ex := commonModels.Exhibit{
			Sequence:     cellText(cells.Eq(0)),
			Description:  cellText(cells.Eq(1)),
			Name:         strings.TrimSpace(link.Text()),
			DocumentType: strings.ToUpper(cellText(cells.Eq(3))),
			URL:          documentURL(href, archivesBase),
		}
		if cells.Length() > 4 {
			ex.Size, _ = strconv.ParseInt(cellText(cells.Eq(4)), 10, 64)
		}
		exhibits = append(exhibits, ex)
	})
	return exhibits, nil
}

func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// documentURL makes a table link absolute. Inline XBRL documents are linked
// through the viewer as /ix?doc=/Archives/...
func documentURL(href string, archivesBase string) string {
	href = strings.TrimPrefix(href, "/ix?doc=")
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return archivesBase + href
}
