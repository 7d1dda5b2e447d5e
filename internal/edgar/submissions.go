package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
)

type submissions struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent recentFilings `json:"recent"`
	} `json:"filings"`
}

// recentFilings holds parallel arrays, newest filing first.
type recentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

func (c *Client) latestOfForm(ctx context.Context, company companyTicker, form string) (commonModels.Filing, bool, error) {
	url := fmt.Sprintf("%s/submissions/CIK%010d.json", c.submissionsBase, company.CIK)
	body, err := c.get(ctx, url)
	if err != nil {
		return commonModels.Filing{}, false, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	var subs submissions
	if err := json.Unmarshal(body, &subs); err != nil {
		return commonModels.Filing{}, false, fmt.Errorf("failed to parse submissions: %w", err)
	}

	recent := subs.Filings.Recent
	n := min(len(recent.AccessionNumber), len(recent.Form), len(recent.FilingDate))
	for i := 0; i < n; i++ {
		if !strings.EqualFold(recent.Form[i], form) {
			continue
		}
		name := subs.Name
		if name == "" {
			name = company.Title
		}
		return commonModels.Filing{
			CIK:             fmt.Sprintf("%010d", company.CIK),
			Company:         name,
			AccessionNumber: recent.AccessionNumber[i],
			FilingDate:      recent.FilingDate[i],
			Form:            recent.Form[i],
		}, true, nil
	}
	return commonModels.Filing{}, false, nil
}
