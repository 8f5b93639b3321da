package jsonpath

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// DefaultFloatFormat is the printf-style float format used when a
// caller hasn't set one explicitly, matching the teacher's own default
// on JSONPath.outputFormat.
const DefaultFloatFormat = "%g"

var floatFormatPattern = regexp.MustCompile(`^%(e|E|g|G|(\d*\.\d*)?[fF])$`)

// ValidFloatFormat reports whether format is an acceptable printf-style
// float verb, the same validation the teacher's SetFloatFormat ran.
func ValidFloatFormat(format string) bool {
	return floatFormatPattern.MatchString(format)
}

// FormatValue renders v the way spec.md §6 specifies for the CLI: JSON
// scalars as their scalar text (using floatFormat for float64), and
// composite values (maps/slices) as compact JSON.
func FormatValue(v any, floatFormat string) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(t), nil
	case string:
		return t, nil
	case float64:
		return fmt.Sprintf(floatFormat, t), nil
	case float32:
		return fmt.Sprintf(floatFormat, float64(t)), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
