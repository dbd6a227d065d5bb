package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Run("splits on commas", func(t *testing.T) {
		rows := Tokenize("a,b,c\nd,e,f")

		require.Len(t, rows, 2)
		assert.Equal(t, Row{"a", "b", "c"}, rows[0])
		assert.Equal(t, Row{"d", "e", "f"}, rows[1])
	})

	t.Run("accepts semicolons and commas interchangeably", func(t *testing.T) {
		rows := Tokenize("a;b,c\nd;e;f")

		require.Len(t, rows, 2)
		assert.Equal(t, Row{"a", "b", "c"}, rows[0])
		assert.Equal(t, Row{"d", "e", "f"}, rows[1])
	})

	t.Run("quoted cells keep embedded delimiters", func(t *testing.T) {
		rows := Tokenize(`date,name,amount
2024-01-05,"Coffee, to go",-3.50`)

		require.Len(t, rows, 2)
		assert.Equal(t, Row{"2024-01-05", "Coffee, to go", "-3.50"}, rows[1])
	})

	t.Run("quoted cells keep embedded line breaks", func(t *testing.T) {
		rows := Tokenize("\"line one\nline two\",b")

		require.Len(t, rows, 1)
		assert.Equal(t, Row{"line one\nline two", "b"}, rows[0])
	})

	t.Run("doubled quote emits a literal quote", func(t *testing.T) {
		rows := Tokenize(`"say ""hi""",x`)

		require.Len(t, rows, 1)
		assert.Equal(t, Row{`say "hi"`, "x"}, rows[0])
	})

	t.Run("handles CRLF line endings", func(t *testing.T) {
		rows := Tokenize("a,b\r\nc,d\r\n")

		require.Len(t, rows, 2)
		assert.Equal(t, Row{"c", "d"}, rows[1])
	})

	t.Run("drops blank lines", func(t *testing.T) {
		rows := Tokenize("a,b\n\n   \n,,\nc,d")

		require.Len(t, rows, 2)
		assert.Equal(t, Row{"a", "b"}, rows[0])
		assert.Equal(t, Row{"c", "d"}, rows[1])
	})

	t.Run("trims whitespace around cells", func(t *testing.T) {
		rows := Tokenize("  a ; b\t,  c  ")

		require.Len(t, rows, 1)
		assert.Equal(t, Row{"a", "b", "c"}, rows[0])
	})

	t.Run("unterminated quote consumes the rest as literal text", func(t *testing.T) {
		rows := Tokenize("a,\"never closed\nstill the same cell,b")

		require.Len(t, rows, 1)
		assert.Equal(t, Row{"a", "never closed\nstill the same cell,b"}, rows[0])
	})

	t.Run("flushes last row without trailing newline", func(t *testing.T) {
		rows := Tokenize("a,b\nc,d")

		require.Len(t, rows, 2)
		assert.Equal(t, Row{"c", "d"}, rows[1])
	})

	t.Run("empty input yields no rows", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("\n\n"))
	})
}

// TestTokenize_RoundTrip re-serializes cell values with the standard quoting
// rule and checks that tokenizing reproduces them exactly.
func TestTokenize_RoundTrip(t *testing.T) {
	cells := [][]string{
		{"plain", "with, comma", "with; semicolon"},
		{`with "quotes"`, "multi\nline", "trailing"},
		{"2024-01-05", "Praha, Hlavní nádraží", "-1250,00"},
	}

	var sb strings.Builder
	for _, row := range cells {
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quote(cell))
		}
		sb.WriteByte('\n')
	}

	rows := Tokenize(sb.String())
	require.Len(t, rows, len(cells))
	for i, row := range cells {
		assert.Equal(t, Row(row), rows[i], "row %d", i)
	}
}

func quote(cell string) string {
	if strings.ContainsAny(cell, ",;\"\n\r") {
		return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return cell
}
