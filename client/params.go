package client

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"

	"github.com/google/go-querystring/query"
)

// Flexibly parses request parameters to URL query params (strings).
//
// Accepts nil, [url.Values] (copied), a map of simple values (slices add repeated keys), or a struct with `url:"..."` field tags as understood by go-querystring.
func ParseParams(raw any) (url.Values, error) {
	switch v := raw.(type) {
	case nil:
		return make(url.Values), nil
	case url.Values:
		out := make(url.Values, len(v))
		for k, vals := range v {
			out[k] = append([]string(nil), vals...)
		}
		return out, nil
	case map[string]any:
		return parseParamsMap(v)
	}

	ref := reflect.ValueOf(raw)
	if ref.Kind() == reflect.Pointer {
		if ref.IsNil() {
			return make(url.Values), nil
		}
		ref = ref.Elem()
	}
	if ref.Kind() != reflect.Struct {
		return nil, fmt.Errorf("can't marshal query params from type: %T", raw)
	}
	return query.Values(raw)
}

func parseParamsMap(raw map[string]any) (url.Values, error) {
	out := make(url.Values)
	for k := range raw {
		switch v := raw[k].(type) {
		case nil:
			out.Set(k, "")
		case bool, string, int, uint, int8, int16, int32, int64, uint8, uint16, uint32, uint64, uintptr:
			out.Set(k, fmt.Sprint(v))
		case encoding.TextMarshaler:
			out.Set(k, fmt.Sprint(v))
		case fmt.Stringer:
			out.Set(k, v.String())
		default:
			ref := reflect.ValueOf(v)
			if ref.Kind() == reflect.Slice {
				for i := 0; i < ref.Len(); i++ {
					switch elem := ref.Index(i).Interface().(type) {
					case nil:
						out.Add(k, "")
					case bool, string, int, uint, int8, int16, int32, int64, uint8, uint16, uint32, uint64, uintptr:
						out.Add(k, fmt.Sprint(elem))
					case encoding.TextMarshaler:
						out.Add(k, fmt.Sprint(elem))
					case fmt.Stringer:
						out.Add(k, elem.String())
					default:
						return nil, fmt.Errorf("can't marshal query param '%s' with type: %T", k, v)
					}
				}
			} else {
				return nil, fmt.Errorf("can't marshal query param '%s' with type: %T", k, v)
			}
		}
	}
	return out, nil
}
