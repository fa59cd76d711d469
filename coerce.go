package brewkit

import (
	"fmt"
	"strconv"
	"strings"
)

// StringField coerces a decoded JSON value to a trimmed string. Absent values
// and nulls become the empty string. The API serves a few numeric-looking
// fields as actual numbers on newer records, so those are formatted rather
// than discarded.
func StringField(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// FloatField coerces a decoded JSON value to a float pointer. Coordinates
// arrive as strings on old records and numbers on new ones; anything absent
// or unparseable becomes nil.
func FloatField(v interface{}) *float64 {
	switch val := v.(type) {
	case float64:
		f := val
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// LowerKeys returns a copy of the record with every key lowercased and
// trimmed, so field lookups don't depend on the API's casing.
func LowerKeys(rec map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
