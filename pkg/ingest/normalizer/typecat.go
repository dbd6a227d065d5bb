package normalizer

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Type is the canonical transaction type enumeration.
type Type string

const (
	TypeOther      Type = "other"
	TypeIncome     Type = "income"
	TypeExpense    Type = "expense"
	TypeTransfer   Type = "transfer"
	TypeFee        Type = "fee"
	TypeConversion Type = "conversion"
	TypeRefund     Type = "refund"
)

// TypePolicy selects how transaction types are derived. The two policies
// disagree on labelled rows (a "refund" with a positive amount is refund
// under TypeFromLabel but income under TypeFromSign), so callers pick one
// explicitly; they are never merged.
type TypePolicy int

const (
	// TypeFromLabel resolves freeform multilingual labels through a fixed
	// synonym table; unresolved labels map to TypeOther.
	TypeFromLabel TypePolicy = iota
	// TypeFromSign ignores labels and derives the type from the amount's
	// sign alone: positive is income, everything else expense.
	TypeFromSign
)

// Label synonyms are matched after diacritic folding, so "Příjem" and
// "prijem" resolve identically.
var typeLabels = map[string]Type{
	"income":     TypeIncome,
	"credit":     TypeIncome,
	"deposit":    TypeIncome,
	"inflow":     TypeIncome,
	"prijem":     TypeIncome,
	"expense":    TypeExpense,
	"debit":      TypeExpense,
	"withdrawal": TypeExpense,
	"outflow":    TypeExpense,
	"vydaj":      TypeExpense,
	"transfer":   TypeTransfer,
	"prevod":     TypeTransfer,
	"fee":        TypeFee,
	"charge":     TypeFee,
	"poplatek":   TypeFee,
	"refund":     TypeRefund,
	"vratka":     TypeRefund,
	"conversion": TypeConversion,
	"exchange":   TypeConversion,
	"konverze":   TypeConversion,
	"smena":      TypeConversion,
}

// NormalizeType maps a freeform label and a signed amount to a canonical
// type under the given policy.
func NormalizeType(label string, amount decimal.Decimal, policy TypePolicy) Type {
	if policy == TypeFromSign {
		if amount.IsPositive() {
			return TypeIncome
		}
		return TypeExpense
	}

	folded := foldLabel(label)
	if folded == "" {
		return TypeOther
	}
	if t, ok := typeLabels[folded]; ok {
		return t
	}
	return TypeOther
}

// NormalizeCategory trims a freeform category, defaulting blanks to "other".
// Unlike types, categories stay free text; no canonical set is enforced.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "other"
	}
	return trimmed
}

var labelFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func foldLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(labelFolder, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}
