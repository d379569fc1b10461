package programs

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Program is one schedule entry as returned by the API. The record is
// schema-less; only the fields the formatter and filter read are interpreted.
type Program map[string]any

// Field returns key as display text. JSON null counts as absent.
func (p Program) Field(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case fmt.Stringer:
		return val.String(), true
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v), true
	}
	return string(data), true
}

// FieldOr returns key as display text, or fallback when it is absent
func (p Program) FieldOr(key, fallback string) string {
	if s, ok := p.Field(key); ok {
		return s
	}
	return fallback
}

// Flag reports whether key holds the API's "1" truth marker
func (p Program) Flag(key string) bool {
	s, _ := p.Field(key)
	return s == "1"
}
