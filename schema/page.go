package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Page is one page of a paginated list response.
type Page[T any] struct {
	Count      int
	Next       *string
	Previous   *string
	Results    []T
	TotalPages int
}

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool {
	return p.Next != nil
}

// HasPrevious reports whether a preceding page exists.
func (p Page[T]) HasPrevious() bool {
	return p.Previous != nil
}

type rawPage struct {
	Count      int               `json:"count"`
	Next       *string           `json:"next"`
	Previous   *string           `json:"previous"`
	Results    []json.RawMessage `json:"results"`
	TotalPages int               `json:"total_pages"`
}

// ParsePage decodes a paginated envelope, decoding each result with dec.
// A failure on any element fails the whole page.
func ParsePage[T any](data []byte, dec Decoder[T]) (Page[T], error) {
	data, err := exactKeys(data, reflect.TypeFor[rawPage]())
	if err != nil {
		return Page[T]{}, fmt.Errorf("decode page: %w", err)
	}

	var raw rawPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Page[T]{}, fmt.Errorf("decode page: %w", err)
	}

	results := make([]T, 0, len(raw.Results))
	for i, item := range raw.Results {
		v, err := dec.Decode(item)
		if err != nil {
			return Page[T]{}, fmt.Errorf("decode page result %d: %w", i, err)
		}
		results = append(results, v)
	}

	return Page[T]{
		Count:      raw.Count,
		Next:       raw.Next,
		Previous:   raw.Previous,
		Results:    results,
		TotalPages: raw.TotalPages,
	}, nil
}
