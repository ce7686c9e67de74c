package templates

import (
	"fmt"
	"reflect"
	"strings"
)

// scalar stands in for a blank string or a numeric zero. The device's
// template engine treats only nil, false and empty lists as falsy, while
// the Go engine also skips sections over "" and 0. A one-element array is
// never empty, a section over it runs exactly once with the plain text in
// scope, and it prints as the original text.
type scalar [1]string

func (s scalar) String() string { return s[0] }

// withTruthiness returns a copy of ctx in which every blank string and
// numeric zero is wrapped in a scalar. Nested maps and lists are copied;
// ctx itself is not modified.
func withTruthiness(ctx Context) Context {
	if ctx == nil {
		return nil
	}
	out := make(Context, len(ctx))
	for k, v := range ctx {
		out[k] = truthy(v)
	}
	return out
}

func truthy(v any) any {
	switch t := v.(type) {
	case nil, bool:
		return v
	case map[string]any:
		return withTruthiness(t)
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, item := range t {
			out[i] = withTruthiness(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = truthy(item)
		}
		return out
	case string:
		if strings.TrimSpace(t) == "" {
			return scalar{t}
		}
		return v
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if rv.IsZero() {
			return scalar{fmt.Sprint(v)}
		}
	}
	return v
}
