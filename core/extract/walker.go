package extract

import (
	"reflect"
	"sort"
)

// MaxSearchDepth bounds the recursive search over decoded payload graphs.
// Six levels covers every historical nesting shape seen in quote records;
// anything deeper is treated as absent rather than risking a runaway walk.
const MaxSearchDepth = 6

// Search walks an arbitrary decoded-JSON value (maps, slices, scalars) and
// returns the first object for which match returns true. The walk is
// depth-first and deterministic: an object is tested before its children,
// map children are visited in sorted key order, slices in index order.
// The walk is cycle-safe and never descends more than MaxSearchDepth levels.
func Search(root any, match func(obj map[string]any) bool) map[string]any {
	visited := make(map[uintptr]struct{})
	return search(root, match, 0, visited)
}

func search(node any, match func(obj map[string]any) bool, depth int, visited map[uintptr]struct{}) map[string]any {
	if node == nil || depth > MaxSearchDepth {
		return nil
	}

	// Maps and slices decoded from JSON can alias each other; track their
	// backing pointers so reference cycles terminate.
	if ptr, ok := refPointer(node); ok {
		if _, seen := visited[ptr]; seen {
			return nil
		}
		visited[ptr] = struct{}{}
	}

	switch v := node.(type) {
	case map[string]any:
		if match(v) {
			return v
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := search(v[k], match, depth+1, visited); found != nil {
				return found
			}
		}
	case []any:
		for _, child := range v {
			if found := search(child, match, depth+1, visited); found != nil {
				return found
			}
		}
	default:
		// map[string]string and named map types land here.
		if obj := AsObject(v); obj != nil {
			if match(obj) {
				return obj
			}
			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if found := search(obj[k], match, depth+1, visited); found != nil {
					return found
				}
			}
		}
	}

	return nil
}

// SearchValue walks the graph like Search but matches on a single extracted
// field: the first object carrying a present value under any of the
// candidate keys yields that value.
func SearchValue(root any, candidates []string) (any, bool) {
	var result any
	found := Search(root, func(obj map[string]any) bool {
		if val, ok := Field(obj, candidates); ok {
			result = val
			return true
		}
		return false
	})
	return result, found != nil
}

func refPointer(node any) (uintptr, bool) {
	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}
