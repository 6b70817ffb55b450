package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Decoder turns one JSON document into a value of type T.
type Decoder[T any] interface {
	Decode(data []byte) (T, error)
}

// DecoderFunc adapts an ordinary function to the Decoder interface.
type DecoderFunc[T any] func(data []byte) (T, error)

// Decode calls f(data).
func (f DecoderFunc[T]) Decode(data []byte) (T, error) {
	return f(data)
}

// JSON returns a Decoder that unmarshals into T.
func JSON[T any](name string) Decoder[T] {
	return DecoderFunc[T](func(data []byte) (T, error) {
		return decode[T](name, data)
	})
}

// decode matches keys case-sensitively, unlike a plain json.Unmarshal.
func decode[T any](name string, data []byte) (T, error) {
	var v T
	data, err := exactKeys(data, reflect.TypeFor[T]())
	if err != nil {
		return v, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}
