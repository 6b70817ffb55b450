package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Line is the coverage of one source line.
type Line struct {
	Number   int
	Coverage Coverage
}

// UnmarshalJSON decodes the [number, coverage] pair sent by the API.
func (l *Line) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid line: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("invalid line: want 2 elements, got %d", len(pair))
	}

	var number int
	if err := json.Unmarshal(pair[0], &number); err != nil {
		return fmt.Errorf("invalid line number: %w", err)
	}
	// null would otherwise decode as CoverageHit
	if string(bytes.TrimSpace(pair[1])) == "null" {
		return &EnumError{Enum: "Coverage", Value: "null"}
	}
	var coverage Coverage
	if err := json.Unmarshal(pair[1], &coverage); err != nil {
		return err
	}

	*l = Line{Number: number, Coverage: coverage}
	return nil
}

// MarshalJSON encodes the line back into its wire pair.
func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{l.Number, int(l.Coverage)})
}

// BaseReportFile is the name and totals of one file in a report.
type BaseReportFile struct {
	Name   string      `json:"name"`
	Totals ReportTotal `json:"totals"`
}

// ReportFile is a report file with per-line coverage.
type ReportFile struct {
	BaseReportFile
	LineCoverage []Line `json:"line_coverage"`
}

// Report is the coverage report of a commit.
type Report struct {
	Totals ReportTotal      `json:"totals"`
	Files  []BaseReportFile `json:"files"`
}

// ParseLine decodes a Line.
func ParseLine(data []byte) (Line, error) {
	return decode[Line]("line", data)
}

// ParseBaseReportFile decodes a BaseReportFile.
func ParseBaseReportFile(data []byte) (BaseReportFile, error) {
	return decode[BaseReportFile]("report file", data)
}

// ParseReportFile decodes a ReportFile.
func ParseReportFile(data []byte) (ReportFile, error) {
	return decode[ReportFile]("report file", data)
}

// ParseReport decodes a Report.
func ParseReport(data []byte) (Report, error) {
	return decode[Report]("report", data)
}
