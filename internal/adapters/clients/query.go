package clients

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// EncodeQuery encodes list parameters the way the console backend expects:
// scalars become one key, slices become repeated keys, nil values are skipped.
// Keys are sorted by url.Values.Encode.
func EncodeQuery(params map[string]any) (string, error) {
	if len(params) == 0 {
		return "", nil
	}

	values := url.Values{}

	for key, raw := range params {
		if raw == nil {
			continue
		}

		rv := reflect.ValueOf(raw)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			if _, isBytes := raw.([]byte); !isBytes {
				for i := range rv.Len() {
					s, err := formatScalar(rv.Index(i).Interface())
					if err != nil {
						return "", fmt.Errorf("query %q: %w", key, err)
					}

					values.Add(key, s)
				}

				continue
			}
		}

		s, err := formatScalar(raw)
		if err != nil {
			return "", fmt.Errorf("query %q: %w", key, err)
		}

		values.Set(key, s)
	}

	return values.Encode(), nil
}

func formatScalar(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
