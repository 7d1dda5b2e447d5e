package extract

import (
	"strconv"
	"strings"
	"unicode"
)

const growthUnavailable = "N/A"

// FormatGrowth splits an answer such as "revenue is $450 million up 12.5%"
// into a value token ("$450") and a signed growth figure ("+12.5%").
//
// It is a token heuristic, not a number parser. When no value or growth token
// can be found, or the growth token does not convert, value is the untouched
// answer and growth is "N/A"; ok reports which path was taken.
func FormatGrowth(answer string) (value string, growth string, ok bool) {
	tokens := strings.Fields(strings.ReplaceAll(strings.ToLower(answer), "%", ""))

	valueAt := -1
	for i, tok := range tokens {
		if isDigits(strings.NewReplacer(".", "", ",", "").Replace(tok)) || strings.Contains(tok, "$") {
			valueAt = i
			break
		}
	}
	if valueAt < 0 {
		return answer, growthUnavailable, false
	}

	// any numeric token other than the value itself is the growth figure,
	// so "down -3.0% to $2.1 billion" reads -3.0
	for i, tok := range tokens {
		if i == valueAt || !isDigits(strings.NewReplacer(".", "", "-", "").Replace(tok)) {
			continue
		}
		rate, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return answer, growthUnavailable, false
		}
		if rate > 0 {
			return tokens[valueAt], "+" + tok + "%", true
		}
		return tokens[valueAt], tok + "%", true
	}
	return answer, growthUnavailable, false
}

// CombineGrowth renders the report form "{value} {growth} YoY".
func CombineGrowth(value, growth string) string {
	return value + " " + growth + " YoY"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
