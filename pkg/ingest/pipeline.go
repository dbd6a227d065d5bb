package ingest

import (
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/ingest/pkg/currency"
	"github.com/ledgerkit/ingest/pkg/ingest/classifier"
	"github.com/ledgerkit/ingest/pkg/ingest/normalizer"
	"github.com/ledgerkit/ingest/pkg/ingest/tokenizer"
)

// isoMillis is the canonical timestamp shape for TransactionRow.Date:
// UTC, millisecond precision, trailing Z.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Pipeline orchestrates tokenize → classify → map → normalize → aggregate.
// A Pipeline is immutable after New and safe for concurrent use.
type Pipeline struct {
	cls     *classifier.Classifier
	policy  normalizer.TypePolicy
	log     *slog.Logger
	workers int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTypePolicy selects how transaction types are derived (label table vs
// amount sign). The default is TypeFromLabel.
func WithTypePolicy(p normalizer.TypePolicy) Option {
	return func(pl *Pipeline) { pl.policy = p }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(pl *Pipeline) {
		if l != nil {
			pl.log = l
		}
	}
}

// WithWorkers enables concurrent row normalization with n goroutines.
// Results keep the original row order. n <= 1 keeps processing sequential;
// n < 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(pl *Pipeline) {
		if n < 0 {
			n = runtime.GOMAXPROCS(0)
		}
		pl.workers = n
	}
}

// New builds a Pipeline with the default header table and options applied.
func New(opts ...Option) *Pipeline {
	pl := &Pipeline{
		cls:     classifier.New(),
		policy:  normalizer.TypeFromLabel,
		log:     slog.Default(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// ImportCSV ingests raw statement text. The first non-blank row is the
// header; every following row is normalized independently, so one bad row
// never aborts the batch. A header missing the required date/name/amount
// columns returns a *StructuralError instead.
func (p *Pipeline) ImportCSV(input string) (*Outcome, error) {
	rows := tokenizer.Tokenize(input)
	if len(rows) == 0 {
		return nil, structuralf("input contains no rows")
	}
	return p.importRows("csv", rows[0], rows[1:])
}

// importRows is the shared core behind the CSV and XLSX entry points.
func (p *Pipeline) importRows(source string, header tokenizer.Row, data []tokenizer.Row) (*Outcome, error) {
	headers := make([]*classifier.Match, len(header))
	for i, cell := range header {
		headers[i] = p.cls.Classify(cell)
	}
	if missing := missingRequired(headers); len(missing) > 0 {
		return nil, &StructuralError{MissingColumns: missing}
	}

	batch := uuid.NewString()
	outcome := &Outcome{Mapped: []TransactionRow{}, SkippedRows: []SkipRecord{}}

	results := make([]rowResult, len(data))
	if p.workers > 1 {
		p.mapRowsParallel(headers, data, results)
	} else {
		for i, row := range data {
			results[i] = p.mapRow(headers, row, i+2)
		}
	}

	for _, res := range results {
		if res.skip != nil {
			outcome.Skipped++
			outcome.SkippedRows = append(outcome.SkippedRows, *res.skip)
			rowsSkipped.WithLabelValues(source, string(res.skip.Reason)).Inc()
			p.log.Warn("row skipped",
				slog.String("batch", batch),
				slog.String("source", source),
				slog.Int("row", res.skip.RowIndex),
				slog.String("reason", string(res.skip.Reason)))
			continue
		}
		outcome.Mapped = append(outcome.Mapped, res.row)
		rowsMapped.WithLabelValues(source).Inc()
	}

	p.log.Info("batch ingested",
		slog.String("batch", batch),
		slog.String("source", source),
		slog.Int("mapped", len(outcome.Mapped)),
		slog.Int("skipped", outcome.Skipped))
	return outcome, nil
}

type rowResult struct {
	row  TransactionRow
	skip *SkipRecord
}

func (p *Pipeline) mapRowsParallel(headers []*classifier.Match, data []tokenizer.Row, results []rowResult) {
	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				results[i] = p.mapRow(headers, data[i], i+2)
			}
		}()
	}
	for i := range data {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

// mapRow normalizes one data row. rowIndex is the 1-based physical line
// number counting the header, so the first data row reports index 2.
func (p *Pipeline) mapRow(headers []*classifier.Match, row tokenizer.Row, rowIndex int) rowResult {
	rd := classifier.MapRow(headers, row)

	date, dateErr := normalizer.NormalizeDate(rd.Get(classifier.KeyDate))
	amount, amountErr := normalizer.ResolveAmount(
		rd.Get(classifier.KeyAmount),
		rd.Get(classifier.KeyDebit),
		rd.Get(classifier.KeyCredit),
	)

	name := rd.Get(classifier.KeyName)
	curr := rd.Get(classifier.KeyCurrency)
	typeLabel := rd.Get(classifier.KeyType)
	categoryRaw := rd.Get(classifier.KeyCategory)

	if (dateErr != nil || amountErr != nil) && len(row) > 6 {
		if fb, ok := trailingFallback(row); ok {
			date, dateErr = fb.date, nil
			amount, amountErr = fb.amount, nil
			name = fb.name
			curr = fb.currency
			typeLabel = fb.typeLabel
			categoryRaw = fb.category
		}
	}

	if dateErr != nil || amountErr != nil {
		reason := SkipInvalidDate
		switch {
		case dateErr != nil && amountErr != nil:
			reason = SkipInvalidDateAndAmount
		case amountErr != nil:
			reason = SkipInvalidAmount
		}
		return rowResult{skip: &SkipRecord{
			RowIndex: rowIndex,
			Row:      row,
			RowText:  strings.Join(row, ","),
			Reason:   reason,
		}}
	}

	if strings.TrimSpace(name) == "" {
		name = "Transaction"
	}
	return rowResult{row: TransactionRow{
		Date:     date.Format(isoMillis),
		Name:     name,
		Amount:   amount,
		Currency: currency.Clean(curr),
		Type:     string(normalizer.NormalizeType(typeLabel, amount, p.policy)),
		Category: normalizer.NormalizeCategory(categoryRaw),
	}}
}

// fallbackRow is the result of the trailing-layout heuristic.
type fallbackRow struct {
	date      time.Time
	amount    decimal.Decimal
	name      string
	currency  string
	typeLabel string
	category  string
}

// trailingFallback assumes a fixed statement layout for wide rows whose
// header-driven mapping failed: column 0 is the date, the fourth-from-last
// column is the amount, the last three are currency/type/category, and the
// name is the comma join of everything in between — rows usually land here
// because unquoted commas in the name split it, so the join restores it.
// It is a last resort and only succeeds when both the date and the amount
// parse.
func trailingFallback(row tokenizer.Row) (fallbackRow, bool) {
	n := len(row)
	if n <= 6 {
		return fallbackRow{}, false
	}
	date, err := normalizer.NormalizeDate(row[0])
	if err != nil {
		return fallbackRow{}, false
	}
	amount, err := normalizer.NormalizeAmount(row[n-4])
	if err != nil {
		return fallbackRow{}, false
	}
	return fallbackRow{
		date:      date,
		amount:    amount,
		name:      strings.Join(row[1:n-4], ","),
		currency:  row[n-3],
		typeLabel: row[n-2],
		category:  row[n-1],
	}, true
}

// missingRequired reports which of the required canonical columns the
// classified header fails to provide, in canonical order. The amount
// requirement is satisfied by either a unified amount column or a
// debit/credit pair half.
func missingRequired(headers []*classifier.Match) []string {
	have := map[classifier.Key]bool{}
	for _, m := range headers {
		if m != nil {
			have[m.Key] = true
		}
	}
	var missing []string
	if !have[classifier.KeyDate] {
		missing = append(missing, "date")
	}
	if !have[classifier.KeyName] {
		missing = append(missing, "name")
	}
	if !have[classifier.KeyAmount] && !have[classifier.KeyDebit] && !have[classifier.KeyCredit] {
		missing = append(missing, "amount")
	}
	return missing
}
