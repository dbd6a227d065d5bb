package ingest

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ledgerkit/ingest/pkg/currency"
	"github.com/ledgerkit/ingest/pkg/ingest/classifier"
	"github.com/ledgerkit/ingest/pkg/ingest/tokenizer"
)

// ColumnReport describes how one header cell would be interpreted.
type ColumnReport struct {
	Header      string         `json:"header"`
	Key         classifier.Key `json:"key,omitempty"`
	Priority    int            `json:"priority,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// Report is a dry-run inspection of a statement: per-column classification,
// which required columns are missing, and a currency hint gleaned from the
// sample rows. It never rejects the input, so callers can show the user why
// an import would fail before running it.
type Report struct {
	Columns        []ColumnReport `json:"columns"`
	MissingColumns []string       `json:"missingColumns,omitempty"`
	RowCount       int            `json:"rowCount"`
	CurrencyHint   string         `json:"currencyHint,omitempty"`
}

// maxSuggestions caps fuzzy near-miss hints per unmapped header.
const maxSuggestions = 3

// Analyze tokenizes the input and reports how the pipeline would read it
// without mapping any rows. Unmapped headers get fuzzy-ranked synonym
// suggestions so callers can tell a typo from a genuinely unknown column.
func (p *Pipeline) Analyze(input string) (*Report, error) {
	rows := tokenizer.Tokenize(input)
	if len(rows) == 0 {
		return nil, structuralf("input contains no rows")
	}
	header, data := rows[0], rows[1:]

	headers := make([]*classifier.Match, len(header))
	report := &Report{RowCount: len(data)}
	for i, cell := range header {
		headers[i] = p.cls.Classify(cell)
		col := ColumnReport{Header: cell}
		if headers[i] != nil {
			col.Key = headers[i].Key
			col.Priority = headers[i].Priority
		} else {
			col.Suggestions = p.suggest(cell)
		}
		report.Columns = append(report.Columns, col)
	}
	report.MissingColumns = missingRequired(headers)
	report.CurrencyHint = currencyHint(headers, data)
	return report, nil
}

// suggest ranks the synonym table against an unmapped header by edit
// distance and returns the closest few entries.
func (p *Pipeline) suggest(header string) []string {
	normalized := classifier.Normalize(header)
	if normalized == "" {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(normalized, p.cls.Synonyms())
	sort.Sort(ranks)
	out := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// currencyHint scans sample rows for a usable currency: first a classified
// currency column with a recognized ISO code, then a currency symbol
// embedded in any cell of the first rows.
func currencyHint(headers []*classifier.Match, data []tokenizer.Row) string {
	currencyCol := -1
	for i, m := range headers {
		if m != nil && m.Key == classifier.KeyCurrency {
			currencyCol = i
			break
		}
	}

	const sample = 20
	for i, row := range data {
		if i == sample {
			break
		}
		if currencyCol >= 0 && currencyCol < len(row) {
			if code := currency.Clean(row[currencyCol]); currency.Known(code) {
				return code
			}
		}
	}
	for i, row := range data {
		if i == sample {
			break
		}
		for _, cell := range row {
			if code, ok := currency.FromSymbol(cell); ok {
				return code
			}
		}
	}
	return ""
}
