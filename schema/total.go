package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// BaseTotal holds the line counters shared by every totals shape.
type BaseTotal struct {
	Files    int     `json:"files"`
	Lines    int     `json:"lines"`
	Hits     int     `json:"hits"`
	Misses   int     `json:"misses"`
	Partials int     `json:"partials"`
	Coverage float64 `json:"coverage"`
	Branches int     `json:"branches"`
	Methods  int     `json:"methods"`
}

// CommitTotal is the totals block attached to commits and repositories.
type CommitTotal struct {
	BaseTotal
	Sessions        int     `json:"sessions"`
	Complexity      float64 `json:"complexity"`
	ComplexityTotal float64 `json:"complexity_total"`
	ComplexityRatio float64 `json:"complexity_ratio"`
}

// ReportTotal is the totals block of a report or a single report file.
type ReportTotal struct {
	BaseTotal
	Messages        int       `json:"messages"`
	Sessions        int       `json:"sessions"`
	Complexity      *float64  `json:"complexity"`
	ComplexityTotal *float64  `json:"complexity_total"`
	ComplexityRatio *float64  `json:"complexity_ratio"`
	Diff            TotalDiff `json:"diff"`
}

// TotalDiff is the "diff" member of a ReportTotal. The API sends either
// a single integer or a list whose items are integers, strings or null.
type TotalDiff struct {
	Number int
	Items  []any
	IsList bool
}

// UnmarshalJSON decodes either wire form.
func (d *TotalDiff) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '[' {
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("invalid diff: %w", err)
		}
		for i, item := range items {
			if f, ok := item.(float64); ok && f == math.Trunc(f) {
				items[i] = int(f)
			}
		}
		*d = TotalDiff{Items: items, IsList: true}
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid diff: %w", err)
	}
	*d = TotalDiff{Number: n}
	return nil
}

// MarshalJSON writes the form the value was decoded from.
func (d TotalDiff) MarshalJSON() ([]byte, error) {
	if d.IsList {
		items := d.Items
		if items == nil {
			items = []any{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(d.Number)
}

// ParseBaseTotal decodes a BaseTotal.
func ParseBaseTotal(data []byte) (BaseTotal, error) {
	return decode[BaseTotal]("base total", data)
}

// ParseCommitTotal decodes a CommitTotal.
func ParseCommitTotal(data []byte) (CommitTotal, error) {
	return decode[CommitTotal]("commit total", data)
}

// ParseReportTotal decodes a ReportTotal.
func ParseReportTotal(data []byte) (ReportTotal, error) {
	return decode[ReportTotal]("report total", data)
}
