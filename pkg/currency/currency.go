// Package currency cleans the currency cells found in bank statements and
// maps currency symbols to ISO-4217 codes. Code validation is backed by the
// go-money currency registry.
package currency

import (
	"strings"

	money "github.com/Rhymond/go-money"
)

// Known reports whether code is a recognized ISO-4217 currency code.
func Known(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// Clean trims a raw currency cell, canonicalizing recognized ISO-4217 codes
// to upper case. Unrecognized text passes through trimmed — statements carry
// bank-specific labels that are still worth preserving for the caller.
func Clean(raw string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), `"'`)
	if trimmed == "" {
		return ""
	}
	upper := strings.ToUpper(trimmed)
	if money.GetCurrency(upper) != nil {
		return upper
	}
	return trimmed
}

// FromSymbol maps a currency symbol found in cell text to an ISO-4217 code.
// The ambiguous "$" resolves to USD only when no more specific symbol is
// present.
func FromSymbol(s string) (string, bool) {
	switch {
	case strings.Contains(s, "€"):
		return money.EUR, true
	case strings.Contains(s, "£"):
		return money.GBP, true
	case strings.Contains(s, "Kč"):
		return money.CZK, true
	case strings.Contains(s, "zł"):
		return money.PLN, true
	case strings.Contains(s, "¥"):
		return money.JPY, true
	case strings.Contains(s, "₹"):
		return money.INR, true
	case strings.Contains(s, "R$"):
		return money.BRL, true
	case strings.Contains(s, "$"):
		return money.USD, true
	}
	return "", false
}
