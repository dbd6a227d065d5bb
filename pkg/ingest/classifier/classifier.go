// Package classifier maps statement header cells to canonical transaction
// fields. Column names vary wildly between banks and locales (English and
// Czech exports carry different labels for the same column), so headers are
// resolved against a fixed, priority-ordered synonym table.
package classifier

import (
	"strings"
	"unicode"

	"github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key identifies a canonical transaction field.
type Key string

const (
	KeyDate     Key = "date"
	KeyName     Key = "name"
	KeyAmount   Key = "amount"
	KeyCurrency Key = "currency"
	KeyDebit    Key = "debit"
	KeyCredit   Key = "credit"
	KeyType     Key = "type"
	KeyCategory Key = "category"
)

// Match is the classification of one header cell. Priority ranks competing
// synonym hits: higher wins when several columns map to the same key.
type Match struct {
	Key      Key
	Priority int
}

// Synonym lists are ordered most-specific first; priority is computed as
// list length minus matched index, so earlier entries score higher.
var headerTable = []struct {
	key   Key
	names []string
}{
	{KeyDate, []string{"date", "datum zaúčtování"}},
	{KeyName, []string{"description", "name", "název obchodníka", "poznámka", "vlastní poznámka"}},
	{KeyAmount, []string{"amount", "zaúčtovaná částka"}},
	{KeyCurrency, []string{"currency", "ccy", "měna účtu", "původní měna"}},
	{KeyDebit, []string{"debit", "withdrawal", "outflow", "expense"}},
	{KeyCredit, []string{"credit", "deposit", "inflow", "income"}},
	{KeyType, []string{"transaction type", "kategorie transakce", "typ transakce"}},
	{KeyCategory, []string{"category", "label", "tag"}},
}

// Classifier resolves header cells against the synonym table. Construct once
// with New; the value is immutable and safe for concurrent use.
type Classifier struct {
	exact    map[string]Match
	patterns []string
	matches  []Match
	sub      *ahocorasick.Matcher
}

// New builds a Classifier. Exact lookups use a map; substring containment
// uses a single Aho-Corasick automaton over every synonym so each header is
// matched against the whole table in one pass.
func New() *Classifier {
	c := &Classifier{exact: make(map[string]Match)}
	for _, group := range headerTable {
		for i, name := range group.names {
			normalized := Normalize(name)
			match := Match{Key: group.key, Priority: len(group.names) - i}
			if _, ok := c.exact[normalized]; !ok {
				c.exact[normalized] = match
			}
			c.patterns = append(c.patterns, normalized)
			c.matches = append(c.matches, match)
		}
	}
	c.sub = ahocorasick.NewStringMatcher(c.patterns)
	return c
}

// Classify maps one header cell to a canonical key, or returns nil when the
// header is unknown. Exact synonym matches are preferred; otherwise the
// header is checked for substring containment of any synonym, ties broken by
// table order.
func (c *Classifier) Classify(header string) *Match {
	normalized := Normalize(header)
	if normalized == "" {
		return nil
	}

	if match, ok := c.exact[normalized]; ok {
		return &match
	}

	hits := c.sub.Match([]byte(normalized))
	if len(hits) == 0 {
		return nil
	}
	best := -1
	for _, idx := range hits {
		if idx >= 0 && idx < len(c.matches) && (best == -1 || idx < best) {
			best = idx
		}
	}
	if best == -1 {
		return nil
	}
	match := c.matches[best]
	return &match
}

// Synonyms returns every normalized synonym known to the classifier, in
// table order. Callers use it to suggest near-miss headers.
func (c *Classifier) Synonyms() []string {
	out := make([]string, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// Normalize folds a header for matching: trim, lowercase, strip diacritics,
// and collapse internal whitespace.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = stripDiacritics(s)
	return strings.Join(strings.Fields(s), " ")
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}
