package builder

import (
	"strconv"
	"strings"
	"time"

	"github.com/xerschedule/core/internal/tabular"
)

// dateLayout is the XER export's fixed date format, always UTC.
const dateLayout = "2006-01-02 15:04"

// cell reads a field from a row via its owning table, returning ""/false
// for both an absent field and an empty-string cell — the coercion
// rules treat those as equivalent.
func cell(t *tabular.Table, r tabular.Row, field string) (string, bool) {
	return t.Get(r, field)
}

// parseDate parses the fixed XER date format in UTC. A malformed or
// absent value yields nil (the field is optional in the model) — this
// is one of the within-document anomalies §7 says is not a failure.
func parseDate(raw string, ok bool) *time.Time {
	if !ok {
		return nil
	}
	ts, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return nil
	}
	return &ts
}

// parseFloatDefault parses a numeric cell, falling back to def on
// absence or malformed input.
func parseFloatDefault(raw string, ok bool, def float64) float64 {
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return def
	}
	return v
}

// parseIntDefault parses an integer cell, falling back to def.
func parseIntDefault(raw string, ok bool, def int) int {
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// parseBoolFlag reports whether the cell equals "Y" (the XER convention
// for flag fields like default_flag).
func parseBoolFlag(raw string, ok bool) bool {
	return ok && strings.EqualFold(strings.TrimSpace(raw), "Y")
}

// optionalString returns a pointer to raw if present, else nil.
func optionalString(raw string, ok bool) *string {
	if !ok {
		return nil
	}
	v := raw
	return &v
}
