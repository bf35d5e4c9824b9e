// Package normalize turns uploaded match documents into typed records. Uploaded
// files use two casing conventions for the same field (SCREAMING_SNAKE from the
// replay exporter, camelCase from the match API); every accessor here accepts both.
package normalize

import (
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Record is one decoded JSON object (a match or a participant).
type Record map[string]any

// ResolveField returns the value under primary if present and non-null, else the
// value under fallback, else nil.
func ResolveField(rec Record, primary, fallback string) any {
	if rec == nil {
		return nil
	}
	if v, ok := rec[primary]; ok && v != nil {
		return v
	}
	if fallback == "" {
		return nil
	}
	if v, ok := rec[fallback]; ok && v != nil {
		return v
	}
	return nil
}

// Float resolves a numeric field; absent or unparseable values yield 0.
func (r Record) Float(primary, fallback string) float64 {
	return toFloat(ResolveField(r, primary, fallback))
}

// Int resolves a numeric field truncated to an int.
func (r Record) Int(primary, fallback string) int {
	return int(r.Float(primary, fallback))
}

// String resolves a string field; numbers are formatted, absent values yield "".
func (r Record) String(primary, fallback string) string {
	switch v := ResolveField(r, primary, fallback).(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Bool resolves a win-style flag. Accepts JSON booleans, "Win"/"true"/"1"
// strings and non-zero numbers.
func (r Record) Bool(primary, fallback string) bool {
	switch v := ResolveField(r, primary, fallback).(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "win", "true", "1":
			return true
		}
		return false
	default:
		return toFloat(v) != 0
	}
}

// Records resolves an array-of-objects field. Non-object elements are skipped.
func (r Record) Records(primary, fallback string) []Record {
	arr, ok := ResolveField(r, primary, fallback).([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

func toFloat(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		f, _ = x.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(x), 64)
	case bool:
		if x {
			f = 1
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
