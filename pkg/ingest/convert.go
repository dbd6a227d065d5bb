package ingest

import (
	"github.com/gocarina/gocsv"

	"github.com/ledgerkit/ingest/pkg/ingest/normalizer"
)

// Convert runs the CSV import and re-serializes the mapped rows as a
// canonical preview CSV with the fixed column order
// date,name,amount,currency,type,category. Fields containing a comma,
// quote, or line break are quoted with doubled inner quotes. The preview
// path derives transaction types from the amount sign and leaves
// categorization to the caller: every row carries category "other",
// ignoring any label columns in the source.
func (p *Pipeline) Convert(input string) (*Outcome, string, error) {
	preview := *p
	preview.policy = normalizer.TypeFromSign

	outcome, err := preview.ImportCSV(input)
	if err != nil {
		return nil, "", err
	}
	for i := range outcome.Mapped {
		outcome.Mapped[i].Category = "other"
	}
	out, err := gocsv.MarshalString(&outcome.Mapped)
	if err != nil {
		return nil, "", err
	}
	return outcome, out, nil
}
