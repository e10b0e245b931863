package batigest

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a French-formatted amount into centimes.
// Format examples: "1 234,56" -> 123456, "1.234,56" -> 123456, "500,00" -> 50000.
func parseAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(s, " ", "")
	clean = strings.ReplaceAll(clean, " ", "") // non-breaking space thousands separator
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	clean = strings.TrimSuffix(clean, "€")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
