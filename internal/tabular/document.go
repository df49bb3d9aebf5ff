// Package tabular tokenizes an XER byte stream into an ordered
// dictionary of named tables, each with a field list and rows of raw
// string cells. It knows nothing about schedules — that mapping is the
// builder's job — only about the %T/%F/%R/%E line-marker grammar.
package tabular

// Table is one %T block: an ordered field list plus the %R rows
// recorded under it, positionally aligned to Fields.
type Table struct {
	Name   string
	Fields []string
	Rows   []Row

	fieldIndex map[string]int
}

// Row is one %R line's cells, aligned by position to the owning
// Table's Fields. A row shorter than Fields simply has fewer Values;
// Get reports that absence rather than returning an empty string.
type Row struct {
	Values []string
}

// Get returns the cell for fieldName and whether it was present. A
// missing trailing cell (row shorter than the field list) and an
// empty-string cell both surface through this — callers that need to
// distinguish "empty" from "absent" can check len(Values) themselves,
// but per the coercion rules the two are equivalent here.
func (t *Table) Get(r Row, fieldName string) (string, bool) {
	idx, ok := t.fieldIndex[fieldName]
	if !ok || idx >= len(r.Values) {
		return "", false
	}
	v := r.Values[idx]
	if v == "" {
		return "", false
	}
	return v, true
}

func (t *Table) indexFields() {
	t.fieldIndex = make(map[string]int, len(t.Fields))
	for i, f := range t.Fields {
		t.fieldIndex[f] = i
	}
}

// Document is the full parsed dictionary: uppercase table name -> Table.
type Document struct {
	Tables map[string]*Table

	// SawHeader records whether an ERMHDR line was seen; its absence is
	// advisory only (§7).
	SawHeader bool
}
