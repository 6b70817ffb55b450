package schema

import (
	"encoding/json"
	"reflect"
	"strings"
)

var unmarshalerType = reflect.TypeFor[json.Unmarshaler]()

// exactKeys drops object keys that do not match a json tag of t byte for
// byte, so the case-insensitive matching of encoding/json never fills a
// field from a key such as "USERNAME". Nested structs and slices are
// filtered as well; types with their own UnmarshalJSON are left alone.
// Data that does not have the shape t expects is returned unchanged for
// json.Unmarshal to report.
func exactKeys(data []byte, t reflect.Type) ([]byte, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return data, nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
			return data, nil
		}
		fields := structFields(t)
		for key, value := range obj {
			ft, ok := fields[key]
			if !ok {
				delete(obj, key)
				continue
			}
			filtered, err := exactKeys(value, ft)
			if err != nil {
				return nil, err
			}
			obj[key] = filtered
		}
		return json.Marshal(obj)

	case reflect.Slice, reflect.Array:
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil || items == nil {
			return data, nil
		}
		for i, item := range items {
			filtered, err := exactKeys(item, t.Elem())
			if err != nil {
				return nil, err
			}
			items[i] = filtered
		}
		return json.Marshal(items)
	}

	return data, nil
}

// structFields maps the json names of t, including promoted fields of
// embedded structs, to their types.
func structFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				for k, v := range structFields(ft) {
					if _, ok := fields[k]; !ok {
						fields[k] = v
					}
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = f.Type
	}
	return fields
}
