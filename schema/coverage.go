package schema

// CommitCoverage is the coverage summary returned by the report and totals endpoints.
type CommitCoverage struct {
	Totals        ReportTotal `json:"totals"`
	CommitFileURL string      `json:"commit_file_url"`
}

// CommitCoverageReport is returned by the report endpoint.
type CommitCoverageReport struct {
	CommitCoverage
	Files []ReportFile `json:"files"`
}

// CommitCoverageTotal is returned by the totals endpoint.
type CommitCoverageTotal struct {
	CommitCoverage
	Files []BaseReportFile `json:"files"`
}

// CoverageTrend is one bucket of a coverage time series.
type CoverageTrend struct {
	Timestamp Timestamp `json:"timestamp"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Avg       float64   `json:"avg"`
}

// ParseCommitCoverage decodes a CommitCoverage.
func ParseCommitCoverage(data []byte) (CommitCoverage, error) {
	return decode[CommitCoverage]("commit coverage", data)
}

// ParseCommitCoverageReport decodes a CommitCoverageReport.
func ParseCommitCoverageReport(data []byte) (CommitCoverageReport, error) {
	return decode[CommitCoverageReport]("commit coverage report", data)
}

// ParseCommitCoverageTotal decodes a CommitCoverageTotal.
func ParseCommitCoverageTotal(data []byte) (CommitCoverageTotal, error) {
	return decode[CommitCoverageTotal]("commit coverage total", data)
}

// ParseCoverageTrend decodes a CoverageTrend.
func ParseCoverageTrend(data []byte) (CoverageTrend, error) {
	return decode[CoverageTrend]("coverage trend", data)
}
