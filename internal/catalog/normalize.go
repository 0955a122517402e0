package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"catalog-import/internal/model"
)

const (
	// dateLayout accepts one or two digit day and month fields.
	dateLayout = "2/1/2006"
	isoLayout  = "2006-01-02"

	// serialOffset corrects the 1900 leap-year bug and the 1-based day count
	// of spreadsheet serial dates.
	serialOffset = 2
)

var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// FormatDate converts a DD/MM/YYYY string or a spreadsheet serial number
// into an ISO-8601 date. Unparseable input yields "".
func FormatDate(value any) string {
	switch v := value.(type) {
	case string:
		t, err := time.Parse(dateLayout, strings.TrimSpace(v))
		if err != nil {
			return ""
		}
		return t.Format(isoLayout)
	case float64:
		return formatSerial(v)
	case int:
		return formatSerial(float64(v))
	default:
		return ""
	}
}

func formatSerial(serial float64) string {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return ""
	}
	days := math.Round(serial - serialOffset)
	return serialEpoch.AddDate(0, 0, int(days)).Format(isoLayout)
}

// NormalizePrices splits a semicolon separated price list. Negative and
// unparseable entries become 0. Non-text input yields an empty list.
func NormalizePrices(value any) []float64 {
	s, ok := value.(string)
	if !ok {
		return []float64{}
	}

	tokens := strings.Split(s, ";")
	prices := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		price, ok := parseLeadingFloat(strings.Replace(token, ",", ".", 1))
		if !ok || price < 0 {
			price = 0
		}
		prices = append(prices, price)
	}
	return prices
}

// DeduceCategory infers the category from the product name.
func DeduceCategory(name string) model.Category {
	if strings.Contains(strings.ToLower(name), "equipment") {
		return model.CategoryEquipment
	}
	return model.CategoryProduct
}

// ParseRate reads the "Rate %" cell, defaulting to 0.
func ParseRate(value any) float64 {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case int:
		return float64(v)
	case string:
		if rate, ok := parseLeadingFloat(v); ok {
			return rate
		}
	}
	return 0
}

// parseLeadingFloat parses the longest decimal literal at the start of s,
// ignoring leading whitespace. Infinite results are reported as failures.
func parseLeadingFloat(s string) (float64, bool) {
	literal := leadingNumber.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if literal == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isFalsy reports whether a cell value counts as missing.
func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case float64:
		return v == 0 || math.IsNaN(v)
	case int:
		return v == 0
	case bool:
		return !v
	default:
		return false
	}
}

// cellText renders a cell value as text. Numbers use the shortest
// representation that round-trips.
func cellText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
