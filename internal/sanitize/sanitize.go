// Package sanitize makes arbitrary runtime data safe for a strict JSON
// serializer. The copy never mutates its input and never panics, whatever
// the instrumented application hands us.
package sanitize

import (
	"fmt"
	"reflect"
	"strconv"
)

// maxDepth bounds recursion so cyclic structures cannot hang capture.
// Values nested deeper are replaced by nil.
const maxDepth = 64

// Copy returns a recursively copied form of v in which every mapping has
// string keys and every sequence is a plain []any. Non-container values
// pass through unchanged. Copy is idempotent on its own output.
func Copy(v any) any {
	return copyValue(v, 0)
}

func copyValue(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth > maxDepth {
		return nil
	}

	// Fast paths for the shapes JSON decoding produces.
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[k] = copyValue(val, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, val := range tv {
			out[i] = copyValue(val, depth+1)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = copyValue(rv.Index(i).Interface(), depth+1)
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			// Coercion collisions are last-write-wins in iteration order.
			out[mapKey(iter.Key())] = copyValue(iter.Value().Interface(), depth+1)
		}
		return out
	default:
		return v
	}
}

// mapKey renders a map key as the string the JSON encoder would produce for
// supported key kinds; anything else falls back to its fmt form.
func mapKey(k reflect.Value) string {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(k.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(k.Bool())
	case reflect.Invalid:
		return "<nil>"
	default:
		if k.Kind() == reflect.Interface && k.IsNil() {
			return "<nil>"
		}
		return fmt.Sprintf("%v", k.Interface())
	}
}
