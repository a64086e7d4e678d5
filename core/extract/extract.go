package extract

import (
	"reflect"
	"strings"

	"quote-manager/core/utils"
)

// Field looks up a value in source by trying each candidate key in order.
// The first key whose value is present and non-empty wins. Keys are tried
// verbatim first; if none match, a case- and separator-insensitive pass is
// made so that "slot_number", "slotNumber" and "SLOT-NUMBER" all reach the
// same field. A nil or non-object source yields (nil, false), never a panic.
func Field(source any, candidates []string) (any, bool) {
	obj := AsObject(source)
	if obj == nil {
		return nil, false
	}

	for _, key := range candidates {
		if val, ok := obj[key]; ok && present(val) {
			return val, true
		}
	}

	// Fold the source keys once, then retry the candidates folded.
	var folded map[string]any
	for k, v := range obj {
		fk := foldKey(k)
		if fk == k {
			continue
		}
		if folded == nil {
			folded = make(map[string]any, len(obj))
		}
		// First spelling wins when two source keys fold identically.
		if _, exists := folded[fk]; !exists {
			folded[fk] = v
		}
	}
	if folded == nil {
		return nil, false
	}
	for _, key := range candidates {
		if val, ok := folded[foldKey(key)]; ok && present(val) {
			return val, true
		}
	}

	return nil, false
}

// String extracts a field and coerces it to a string.
// Returns "" when no candidate matches.
func String(source any, candidates []string) string {
	val, ok := Field(source, candidates)
	if !ok {
		return ""
	}
	return strings.TrimSpace(utils.ToString(val))
}

// Int extracts a field and coerces it to an int.
// The second return value reports whether any candidate matched at all;
// a matched but unparsable value coerces to 0.
func Int(source any, candidates []string) (int, bool) {
	val, ok := Field(source, candidates)
	if !ok {
		return 0, false
	}
	return utils.ToInt(val), true
}

// Bool extracts a field and reports whether it carries an explicit truthy
// token. Absent fields and unknown tokens are false.
func Bool(source any, candidates []string) bool {
	val, ok := Field(source, candidates)
	if !ok {
		return false
	}
	return utils.IsTruthy(val)
}

// List extracts a field and returns it as a slice when the value is
// list-shaped. A single object value is wrapped into a one-element slice,
// matching payloads that collapsed single-entry lists into bare objects.
func List(source any, candidates []string) ([]any, bool) {
	val, ok := Field(source, candidates)
	if !ok {
		return nil, false
	}
	switch v := val.(type) {
	case []any:
		return v, true
	case map[string]any:
		return []any{v}, true
	default:
		return nil, false
	}
}

// AsObject returns source as a string-keyed map, or nil when it is not
// object-shaped. map[string]string values (common from older exports) are
// widened so callers only deal with one shape. Named map types (entry
// aliases defined by the pipeline packages) do not match a type switch, so
// they are unwrapped reflectively.
func AsObject(source any) map[string]any {
	switch v := source.(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	case map[string]string:
		obj := make(map[string]any, len(v))
		for k, s := range v {
			obj[k] = s
		}
		return obj
	}

	rv := reflect.ValueOf(source)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil
	}
	// Same underlying type: convert in place, no copy.
	if rv.Type().ConvertibleTo(objectType) {
		return rv.Convert(objectType).Interface().(map[string]any)
	}
	obj := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		obj[iter.Key().String()] = iter.Value().Interface()
	}
	return obj
}

var objectType = reflect.TypeOf(map[string]any(nil))

// present filters the values that historical producers used to mean "unset".
func present(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	default:
		return true
	}
}

// foldKey normalizes a key for the insensitive pass: lower-cased with
// underscores, hyphens, dots and spaces removed.
func foldKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range strings.ToLower(key) {
		switch r {
		case '_', '-', '.', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
