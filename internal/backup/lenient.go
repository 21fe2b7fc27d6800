package backup

import (
	"encoding/json"
	"reflect"
	"strings"
)

// decodeLenient decodes raw into target like json.Unmarshal, but a value
// that does not fit its field leaves that field unchanged instead of
// failing the record it belongs to. It reports whether every value fit.
func decodeLenient(raw json.RawMessage, target reflect.Value) bool {
	previous := reflect.New(target.Type()).Elem()
	previous.Set(target)
	if err := json.Unmarshal(raw, target.Addr().Interface()); err == nil {
		return true
	}
	target.Set(previous)

	switch target.Kind() {
	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || items == nil {
			return false
		}
		values := reflect.MakeSlice(target.Type(), len(items), len(items))
		for i, item := range items {
			decodeLenient(item, values.Index(i))
		}
		target.Set(values)
		return false

	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			return false
		}
		for i := 0; i < target.NumField(); i++ {
			name := jsonFieldName(target.Type().Field(i))
			if name == "" {
				continue
			}
			if value, ok := fields[name]; ok {
				decodeLenient(value, target.Field(i))
			}
		}
		return false

	default:
		return false
	}
}

func jsonFieldName(field reflect.StructField) string {
	if !field.IsExported() || field.Anonymous {
		return ""
	}
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}
