package classifier

import "strings"

// RowData holds the winning cell value for each canonical key in one data
// row, together with the priority that won the slot.
type RowData struct {
	values     map[Key]string
	priorities map[Key]int
}

// Get returns the value stored for key, or "" when no column filled it.
func (d *RowData) Get(key Key) string {
	if d == nil {
		return ""
	}
	return d.values[key]
}

// Priority returns the synonym priority that won the slot for key.
func (d *RowData) Priority(key Key) int {
	if d == nil {
		return 0
	}
	return d.priorities[key]
}

// MapRow applies a classified header list to one data row. Columns are
// visited left to right; conflicts between columns mapping to the same key
// are resolved by the (priority, non-empty) comparator in offer, so a
// later column with a better synonym match can displace an earlier weak one.
func MapRow(headers []*Match, row []string) *RowData {
	data := &RowData{
		values:     make(map[Key]string),
		priorities: make(map[Key]int),
	}
	for i, header := range headers {
		if header == nil {
			continue
		}
		value := ""
		if i < len(row) {
			value = row[i]
		}
		data.offer(header.Key, value, header.Priority)
	}
	return data
}

// offer stores a candidate value iff it is non-empty and either the slot is
// empty or the candidate carries a strictly higher priority. Empty candidates
// never displace a present value and never block later candidates.
func (d *RowData) offer(key Key, value string, priority int) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, ok := d.values[key]; !ok || priority > d.priorities[key] {
		d.values[key] = value
		d.priorities[key] = priority
	}
}
