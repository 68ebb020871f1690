package router

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// decodeQuery fills a request struct from URL query parameters, matching
// fields by their json tag (falling back to the lowercased field name).
// Only the scalar kinds our GET requests use are supported.
func decodeQuery(r *http.Request, v any) error {
	value := reflect.ValueOf(v).Elem()
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("cannot decode query into %T", v)
	}

	query := r.URL.Query()
	for i := 0; i < value.NumField(); i++ {
		field := value.Type().Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		raw := query.Get(name)
		if raw == "" {
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			value.Field(i).SetString(raw)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value of %s: %w", name, err)
			}
			value.Field(i).SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid value of %s: %w", name, err)
			}
			value.Field(i).SetBool(b)
		default:
			return fmt.Errorf("unsupported query field %s", name)
		}
	}

	return nil
}
