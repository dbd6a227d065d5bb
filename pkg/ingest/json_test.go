package ingest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportJSON_Array(t *testing.T) {
	p := New()
	outcome, err := p.ImportJSON([]byte(`[
		{"date": "2023-01-05", "name": "Coffee", "amount": -3.5},
		{"date": "2023-01-06", "name": "Salary", "amount": "1 250,00", "currency": "czk", "type": "příjem", "category": "work"}
	]`))
	require.NoError(t, err)

	require.Len(t, outcome.Mapped, 2)
	assert.Equal(t, 0, outcome.Skipped)

	first := outcome.Mapped[0]
	assert.Equal(t, "2023-01-05T00:00:00.000Z", first.Date)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("-3.5")))
	assert.Equal(t, "other", first.Category)

	second := outcome.Mapped[1]
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("1250.00")), "amount = %s", second.Amount)
	assert.Equal(t, "CZK", second.Currency)
	assert.Equal(t, "income", second.Type)
	assert.Equal(t, "work", second.Category)
}

func TestImportJSON_ItemsObject(t *testing.T) {
	p := New()
	outcome, err := p.ImportJSON([]byte(`{"items": [{"date": "2023-01-05", "name": "Coffee", "amount": 3.5}]}`))
	require.NoError(t, err)
	require.Len(t, outcome.Mapped, 1)
	assert.Equal(t, "Coffee", outcome.Mapped[0].Name)
}

func TestImportJSON_StructuralErrors(t *testing.T) {
	p := New()
	for name, payload := range map[string]string{
		"invalid json":    `{not json`,
		"scalar payload":  `42`,
		"object no items": `{"rows": []}`,
		"items not array": `{"items": {"a": 1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := p.ImportJSON([]byte(payload))
			var structural *StructuralError
			require.ErrorAs(t, err, &structural)
		})
	}
}

func TestImportJSON_ItemSkips(t *testing.T) {
	p := New()
	outcome, err := p.ImportJSON([]byte(`[
		"not an object",
		{"name": "No date", "amount": 1},
		{"date": "2023-01-05", "amount": 1},
		{"date": "2023-01-05", "name": "Bad amount", "amount": "abc"},
		{"date": "2024-02-30", "name": "Bad date", "amount": 1},
		{"date": "2023-01-05", "name": "Fine", "amount": 1}
	]`))
	require.NoError(t, err)

	require.Len(t, outcome.Mapped, 1)
	assert.Equal(t, "Fine", outcome.Mapped[0].Name)
	require.Len(t, outcome.SkippedRows, 5)
	assert.Equal(t, outcome.Skipped, len(outcome.SkippedRows))

	assert.Equal(t, SkipInvalidItem, outcome.SkippedRows[0].Reason)
	assert.Equal(t, SkipMissingRequired, outcome.SkippedRows[1].Reason)
	assert.Equal(t, SkipMissingRequired, outcome.SkippedRows[2].Reason)
	assert.Equal(t, SkipInvalidAmount, outcome.SkippedRows[3].Reason)
	assert.Equal(t, SkipInvalidDate, outcome.SkippedRows[4].Reason)

	// Item indexes are 0-based positions in the source array.
	assert.Equal(t, 0, outcome.SkippedRows[0].RowIndex)
	assert.Equal(t, 4, outcome.SkippedRows[4].RowIndex)
	assert.Equal(t, "not an object", outcome.SkippedRows[0].Item)
}

func TestImportJSON_ZeroAmountIsValid(t *testing.T) {
	p := New()
	outcome, err := p.ImportJSON([]byte(`[{"date": "2023-01-05", "name": "Zero", "amount": 0}]`))
	require.NoError(t, err)
	require.Len(t, outcome.Mapped, 1)
	assert.True(t, outcome.Mapped[0].Amount.IsZero())
}
