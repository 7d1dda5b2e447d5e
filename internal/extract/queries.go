package extract

// Metric keys, in report order.
const (
	Revenue         = "revenue"
	OperatingIncome = "operating_income"
	EPS             = "eps"
	Guidance        = "guidance"
	Drivers         = "drivers"
)

// MetricQuery is one question put to the index and the key its answer is
// reported under.
type MetricQuery struct {
	Key      string
	Question string
	// Numeric answers go through FormatGrowth; the rest are kept verbatim.
	Numeric bool
}

// Queries is ordered. Result assembly always follows this order, however
// the queries were executed.
var Queries = []MetricQuery{
	{
		Key:      Revenue,
		Question: "What is the current quarter revenue and its year-over-year growth rate? Return only the number and growth rate.",
		Numeric:  true,
	},
	{
		Key:      OperatingIncome,
		Question: "What is the operating income and its year-over-year growth rate? Return only the number and growth rate.",
		Numeric:  true,
	},
	{
		Key:      EPS,
		Question: "What is the EPS (earnings per share) and its year-over-year growth rate? Return only the number and growth rate.",
		Numeric:  true,
	},
	{
		Key:      Guidance,
		Question: "What is the company's specific forward guidance for next quarter/year? Return only the numbers if provided.",
	},
	{
		Key:      Drivers,
		Question: "What were the main drivers of the results? Focus on segments, products, or market trends that significantly impacted performance. List only 3-5 key points if available.",
	},
}

// Keys lists the metric keys in report order.
func Keys() []string {
	keys := make([]string, len(Queries))
	for i, q := range Queries {
		keys[i] = q.Key
	}
	return keys
}
