package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
// JSON-decoded payloads deliver numbers as float64, so that case matters most.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int16:
		return int(v)
	case int8:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case uint16:
		return int(v)
	case uint8:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		i, _ := strconv.Atoi(strings.TrimSpace(string(v)))
		return i
	default:
		s := fmt.Sprintf("%v", v)
		i, _ := strconv.Atoi(s)
		return i
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		// Avoid "42.000000" renderings for whole JSON numbers.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// boolTokens maps the textual truthy/falsy spellings that appear across
// historical quote payloads.
var boolTokens = map[string]bool{
	"true": true, "1": true, "yes": true, "y": true,
	"false": false, "0": false, "no": false, "n": false,
}

// ToBool converts various types to bool.
// Strings are matched against a fixed token table (true/1/yes/y, false/0/no/n);
// unknown tokens are false.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return ToInt(v) != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case string:
		b, ok := boolTokens[strings.ToLower(strings.TrimSpace(v))]
		return ok && b
	case []byte:
		b, ok := boolTokens[strings.ToLower(strings.TrimSpace(string(v)))]
		return ok && b
	default:
		return false
	}
}

// IsTruthy reports whether val carries an explicit truthy token.
// Unlike ToBool it distinguishes "explicitly true" from "absent or junk",
// which matters when a flag's mere presence should not imply truth.
func IsTruthy(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		b, ok := boolTokens[strings.ToLower(strings.TrimSpace(v))]
		return ok && b
	default:
		return ToInt(val) != 0 && ToString(val) != ""
	}
}
