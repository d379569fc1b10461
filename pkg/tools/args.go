package tools

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Arguments arrive as decoded JSON (float64, bool, string) from MCP clients
// and as plain strings from the command line; these helpers accept both.

// StringArg returns args[key] as a string. ok is false when the key is
// missing or null.
func StringArg(args map[string]interface{}, key string) (string, bool) {
	v, exists := args[key]
	if !exists || v == nil {
		return "", false
	}
	return cast.ToString(v), true
}

// RequiredString returns a non-blank string argument or an error naming it
func RequiredString(args map[string]interface{}, key string) (string, error) {
	s, ok := StringArg(args, key)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

// IntArg returns args[key] as an int, or def when missing or null
func IntArg(args map[string]interface{}, key string, def int) (int, error) {
	v, exists := args[key]
	if !exists || v == nil {
		return def, nil
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return def, nil
	}

	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, v)
	}
	return n, nil
}

// FloatArg returns args[key] as a float64. Missing values are an error.
func FloatArg(args map[string]interface{}, key string) (float64, error) {
	v, exists := args[key]
	if !exists || v == nil {
		return 0, fmt.Errorf("%s is required", key)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, v)
	}
	return f, nil
}

// OptionalBool returns args[key] as a bool, or nil when missing or null
func OptionalBool(args map[string]interface{}, key string) (*bool, error) {
	v, exists := args[key]
	if !exists || v == nil {
		return nil, nil
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %v", key, v)
	}
	return &b, nil
}

// ParseArgs turns key=value words into an argument map. Values stay strings
// and are coerced by the accessors above.
func ParseArgs(words []string) (map[string]interface{}, error) {
	args := make(map[string]interface{}, len(words))
	for _, word := range words {
		key, value, found := strings.Cut(word, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", word)
		}
		args[key] = value
	}
	return args, nil
}
