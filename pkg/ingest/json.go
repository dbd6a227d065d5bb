package ingest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/ingest/pkg/currency"
	"github.com/ledgerkit/ingest/pkg/ingest/normalizer"
)

// ImportJSON ingests a JSON payload: either an array of transaction-like
// objects or an object carrying an "items" array. Each item needs a date
// string, a name string, and an amount (number or numeric string);
// currency/type/category are optional. Shape problems are structural
// errors; bad items become skip records with a 0-based item index.
func (p *Pipeline) ImportJSON(input []byte) (*Outcome, error) {
	items, err := decodeItems(input)
	if err != nil {
		return nil, err
	}

	batch := uuid.NewString()
	outcome := &Outcome{Mapped: []TransactionRow{}, SkippedRows: []SkipRecord{}}
	for i, item := range items {
		row, skip := p.mapItem(item, i)
		if skip != nil {
			outcome.Skipped++
			outcome.SkippedRows = append(outcome.SkippedRows, *skip)
			rowsSkipped.WithLabelValues("json", string(skip.Reason)).Inc()
			p.log.Warn("item skipped",
				slog.String("batch", batch),
				slog.Int("item", i),
				slog.String("reason", string(skip.Reason)))
			continue
		}
		outcome.Mapped = append(outcome.Mapped, row)
		rowsMapped.WithLabelValues("json").Inc()
	}
	p.log.Info("batch ingested",
		slog.String("batch", batch),
		slog.String("source", "json"),
		slog.Int("mapped", len(outcome.Mapped)),
		slog.Int("skipped", outcome.Skipped))
	return outcome, nil
}

// decodeItems resolves the tagged-variant payload shape: a bare array, or
// an object whose "items" field is an array. Anything else is structural.
func decodeItems(input []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, structuralf("invalid JSON payload: %v", err)
	}
	switch v := payload.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return items, nil
		}
		return nil, structuralf("JSON object has no items array")
	default:
		return nil, structuralf("JSON payload must be an array or an object with an items array")
	}
}

func (p *Pipeline) mapItem(item any, index int) (TransactionRow, *SkipRecord) {
	obj, ok := item.(map[string]any)
	if !ok {
		return TransactionRow{}, &SkipRecord{RowIndex: index, Item: item, Reason: SkipInvalidItem}
	}

	dateRaw, _ := obj["date"].(string)
	nameRaw, _ := obj["name"].(string)
	amountRaw, hasAmount := obj["amount"]
	if strings.TrimSpace(dateRaw) == "" || strings.TrimSpace(nameRaw) == "" || !hasAmount || amountRaw == nil {
		return TransactionRow{}, &SkipRecord{RowIndex: index, Item: item, Reason: SkipMissingRequired}
	}

	date, dateErr := normalizer.NormalizeDate(dateRaw)
	amount, amountErr := itemAmount(amountRaw)
	if dateErr != nil || amountErr != nil {
		reason := SkipInvalidDate
		switch {
		case dateErr != nil && amountErr != nil:
			reason = SkipInvalidDateAndAmount
		case amountErr != nil:
			reason = SkipInvalidAmount
		}
		return TransactionRow{}, &SkipRecord{RowIndex: index, Item: item, Reason: reason}
	}

	return TransactionRow{
		Date:     date.Format(isoMillis),
		Name:     strings.TrimSpace(nameRaw),
		Amount:   amount,
		Currency: currency.Clean(stringField(obj, "currency")),
		Type:     string(normalizer.NormalizeType(stringField(obj, "type"), amount, p.policy)),
		Category: normalizer.NormalizeCategory(stringField(obj, "category")),
	}, nil
}

func itemAmount(v any) (decimal.Decimal, error) {
	switch a := v.(type) {
	case json.Number:
		return decimal.NewFromString(a.String())
	case string:
		return normalizer.NormalizeAmount(a)
	default:
		return decimal.Decimal{}, normalizer.ErrInvalidAmount
	}
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
