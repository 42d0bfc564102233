package pkg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice parses a provider-native price representation into a decimal.
// It tolerates currency prefixes/suffixes ("$2.34", "2,34€"), thousands
// separators ("1,234.56") and comma decimal separators ("1.234,56").
func ParsePrice(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return decimal.Zero, fmt.Errorf("no numeric value in price %q", raw)
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Both separators present: the later one is the decimal separator.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A single comma followed by at most two digits is a decimal
		// separator; anything else is a thousands separator.
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse price %q: %w", raw, err)
	}
	return value, nil
}

// ParseVolume parses a volume string with optional thousands separators
// ("1,234") into an integer. An empty string parses as zero, since some
// providers omit volume for thinly traded items.
func ParseVolume(raw string) (int64, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		if strings.TrimSpace(raw) == "" {
			return 0, nil
		}
		return 0, fmt.Errorf("no numeric value in volume %q", raw)
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse volume %q: %w", raw, err)
	}
	return value, nil
}
