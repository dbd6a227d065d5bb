// Package tokenizer turns raw statement text into ordered rows of cells.
// It accepts the loose CSV dialects banks actually export: comma and
// semicolon delimiters mixed in one document, quoted fields with embedded
// delimiters and line breaks, and stray blank lines.
package tokenizer

import "strings"

// Row is one line of a statement: an ordered list of trimmed cell values.
type Row []string

// Tokenize scans the document left to right in a single pass and returns its
// rows. Outside quotes, ',' and ';' both end a cell and '\n' or '\r\n' ends a
// row. A doubled quote inside a quoted cell emits one literal quote. Rows
// whose cells are all empty are dropped.
//
// Malformed quoting never fails: an unterminated quote simply consumes the
// remainder of the input as literal text.
func Tokenize(input string) []Row {
	var rows []Row
	var current []string
	var buf strings.Builder
	inQuotes := false

	flushCell := func() {
		current = append(current, strings.TrimSpace(buf.String()))
		buf.Reset()
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(input) && input[i+1] == '"' {
				buf.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case !inQuotes && (ch == ',' || ch == ';'):
			flushCell()
		case !inQuotes && (ch == '\n' || ch == '\r'):
			if ch == '\r' && i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			flushCell()
			if !blank(current) {
				rows = append(rows, Row(current))
			}
			current = nil
		default:
			buf.WriteByte(ch)
		}
	}

	flushCell()
	if !blank(current) {
		rows = append(rows, Row(current))
	}
	return rows
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
