package normalizer

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// NormalizeAmount parses one signed numeric cell under ambiguous separator
// conventions:
//
//   - a value wrapped in parentheses is negative (accounting convention);
//   - internal whitespace (thin-space thousands grouping) is stripped;
//   - when both ',' and '.' appear, the later one is the decimal separator
//     and the other is stripped as a thousands separator;
//   - when only ',' appears it is the decimal separator.
//
// Anything that does not survive as a finite decimal is rejected.
func NormalizeAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European: 1.234,56
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// American: 1,234.56
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ResolveAmount produces the signed amount for a row from an optional
// unified amount cell and optional separate debit/credit cells.
//
// When either debit or credit text is present, both are parsed
// independently and fused under the fixed sign convention: credit is inflow
// (positive), debit is outflow (negative), regardless of sign markings in
// the source. If both parse the result is credit − |debit|. If neither
// parses, the unified amount cell is the fallback.
func ResolveAmount(amountRaw, debitRaw, creditRaw string) (decimal.Decimal, error) {
	if strings.TrimSpace(debitRaw) != "" || strings.TrimSpace(creditRaw) != "" {
		debit, debitErr := NormalizeAmount(debitRaw)
		credit, creditErr := NormalizeAmount(creditRaw)
		switch {
		case debitErr == nil && creditErr == nil:
			return credit.Sub(debit.Abs()), nil
		case creditErr == nil:
			return credit.Abs(), nil
		case debitErr == nil:
			return debit.Abs().Neg(), nil
		}
	}
	return NormalizeAmount(amountRaw)
}
