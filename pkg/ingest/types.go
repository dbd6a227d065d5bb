// Package ingest converts bank/export statements of unknown shape — CSV text
// with mixed delimiters, XLSX worksheets, or JSON arrays — into canonical
// transaction rows plus per-row skip diagnostics. The pipeline is pure: raw
// text in, structured data out, no I/O and no state across calls.
package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionRow is the canonical output of the pipeline. Date is an
// ISO-8601 UTC timestamp string; Amount is signed (inflow positive).
type TransactionRow struct {
	Date     string          `json:"date" csv:"date"`
	Name     string          `json:"name" csv:"name"`
	Amount   decimal.Decimal `json:"amount" csv:"amount"`
	Currency string          `json:"currency,omitempty" csv:"currency"`
	Type     string          `json:"type,omitempty" csv:"type"`
	Category string          `json:"category,omitempty" csv:"category"`
}

// SkipReason codes why a row or item was excluded from the mapped output.
type SkipReason string

const (
	SkipInvalidDate          SkipReason = "invalid-date"
	SkipInvalidAmount        SkipReason = "invalid-amount"
	SkipInvalidDateAndAmount SkipReason = "invalid-date-and-amount"
	SkipMissingRequired      SkipReason = "missing-required-fields"
	SkipInvalidItem          SkipReason = "invalid-item"
)

// SkipRecord is the diagnostic for one row or JSON item that failed
// normalization. CSV skips carry the raw row and its 1-based line index
// (counting the header line); JSON skips carry the 0-based item index and
// the raw item.
type SkipRecord struct {
	RowIndex int        `json:"rowIndex"`
	Row      []string   `json:"row,omitempty"`
	RowText  string     `json:"rowText,omitempty"`
	Item     any        `json:"item,omitempty"`
	Reason   SkipReason `json:"reason"`
}

// Outcome aggregates one ingestion call. Skipped always equals
// len(SkippedRows); every excluded row is individually accounted for.
type Outcome struct {
	Mapped      []TransactionRow `json:"mapped"`
	Skipped     int              `json:"skipped"`
	SkippedRows []SkipRecord     `json:"skippedRows"`
}

// StructuralError rejects a whole batch because the input shape is
// malformed — unparsable JSON, a JSON payload that is not an array, or a CSV
// header missing required columns. It is a configuration/shape problem, not
// a data-quality problem, so no per-row skips are produced.
type StructuralError struct {
	// MissingColumns names the required header columns that could not be
	// classified, in canonical order. Empty for JSON shape errors.
	MissingColumns []string
	msg            string
}

func (e *StructuralError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
	}
	return e.msg
}

func structuralf(format string, args ...any) *StructuralError {
	return &StructuralError{msg: fmt.Sprintf(format, args...)}
}
