package parser

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// numericValue evaluates a numeric literal exactly. Bigint literals and
// integers beyond float64 precision keep every digit.
func numericValue(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(raw, "_", "")
	s = strings.TrimSuffix(s, "n")

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			v, ok := new(big.Int).SetString(s[2:], base)
			if !ok {
				return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidNumber, raw)
			}
			return decimal.NewFromBigInt(v, 0), nil
		}
	}

	// 1. and 1.e5 are valid JavaScript but not valid decimal input
	s = strings.Replace(s, ".e", ".0e", 1)
	s = strings.Replace(s, ".E", ".0E", 1)
	if strings.HasSuffix(s, ".") {
		s += "0"
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidNumber, raw)
	}
	return d, nil
}
