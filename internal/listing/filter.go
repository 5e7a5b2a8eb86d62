// Package listing filters, sorts and paginates in-memory collections for
// display. Nothing here mutates its input.
package listing

import (
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Field extracts a searchable value from an item. Strings and numbers are
// matched; any other value never matches.
type Field[T any] func(T) any

// Query describes how a collection is narrowed and ordered. The zero value
// returns a copy of the input.
type Query[T any] struct {
	Fields        []Field[T]
	CaseSensitive bool
	// Predicate runs after the search filter.
	Predicate func(T) bool
	// Compare orders the result; equal items keep their relative order.
	Compare func(a, b T) int
}

// Apply returns the items matching search and Predicate, ordered by Compare.
// An empty search keeps every item.
func (q Query[T]) Apply(items []T, search string) []T {
	out := make([]T, 0, len(items))
	needle := search
	if !q.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	for _, item := range items {
		if search != "" && !q.matches(item, needle) {
			continue
		}
		if q.Predicate != nil && !q.Predicate(item) {
			continue
		}
		out = append(out, item)
	}

	if q.Compare != nil {
		slices.SortStableFunc(out, q.Compare)
	}
	return out
}

func (q Query[T]) matches(item T, needle string) bool {
	for _, field := range q.Fields {
		text, ok := Text(field(item))
		if !ok {
			continue
		}
		if !q.CaseSensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// Text returns the searchable representation of v: strings as-is and numbers
// in their shortest decimal form ("10", "2.5"). ok is false for other kinds.
func Text(v any) (text string, ok bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), true
	}
	return "", false
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case math.Abs(f) >= 1e21 || math.Abs(f) < 1e-6:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
