package validation

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// maxExactInt is the largest integer a float64 represents exactly.
const maxExactInt = 1 << 53

// typeMismatch is recorded when a raw value cannot become the target type.
type typeMismatch struct {
	want string
}

func (e *typeMismatch) Error() string {
	return "must be " + article(e.want) + " " + e.want
}

func article(word string) string {
	if strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}

// coerce adapts a decoded JSON value to the target type. Strings are trimmed,
// numeric fields accept numbers or numeric-looking strings, and everything else
// must already have the right JSON type.
func coerce(to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return nil, &typeMismatch{want: "string"}
		}
		return strings.TrimSpace(s), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := toFloat(data)
		if !ok || f != math.Trunc(f) || math.Abs(f) > maxExactInt {
			return nil, &typeMismatch{want: "integer"}
		}
		return int64(f), nil

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(data)
		if !ok {
			return nil, &typeMismatch{want: "number"}
		}
		return f, nil

	case reflect.Slice:
		if data == nil || reflect.TypeOf(data).Kind() != reflect.Slice {
			return nil, &typeMismatch{want: "array"}
		}
		return data, nil

	case reflect.Bool:
		if _, ok := data.(bool); !ok {
			return nil, &typeMismatch{want: "boolean"}
		}
		return data, nil
	}

	return data, nil
}

func toFloat(data any) (float64, bool) {
	var (
		f   float64
		err error
	)

	switch v := data.(type) {
	case json.Number:
		f, err = v.Float64()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err = cast.ToFloat64E(s)
	case float64, float32, int, int32, int64:
		f, err = cast.ToFloat64E(v)
	default:
		return 0, false
	}

	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
