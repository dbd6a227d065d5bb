package ingest

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerkit/ingest/pkg/ingest/tokenizer"
)

// ImportXLSX ingests the first worksheet of an XLSX workbook. Cell values
// are trimmed and blank rows dropped, then the rows flow through the same
// header classification and normalization as the CSV path.
func (p *Pipeline) ImportXLSX(r io.Reader) (*Outcome, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, structuralf("invalid XLSX workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, structuralf("XLSX workbook has no sheets")
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, structuralf("reading sheet %q: %v", sheets[0], err)
	}

	rows := make([]tokenizer.Row, 0, len(raw))
	for _, cells := range raw {
		row := make(tokenizer.Row, len(cells))
		blank := true
		for i, cell := range cells {
			row[i] = strings.TrimSpace(cell)
			if row[i] != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, structuralf("XLSX sheet contains no rows")
	}
	return p.importRows("xlsx", rows[0], rows[1:])
}
