package schema

// LineNumberComparison holds the base and head line numbers of a diff line.
type LineNumberComparison struct {
	Base *int `json:"base"`
	Head *int `json:"head"`
}

// LineCoverageComparison holds the base and head coverage of a diff line.
type LineCoverageComparison struct {
	Base *Coverage `json:"base"`
	Head *Coverage `json:"head"`
}

// LineComparison is one line of a file diff with coverage on both sides.
type LineComparison struct {
	Value    string                 `json:"value"`
	Number   LineNumberComparison   `json:"number"`
	Coverage LineCoverageComparison `json:"coverage"`
	IsDiff   bool                   `json:"is_diff"`
	Added    bool                   `json:"added"`
	Removed  bool                   `json:"removed"`
	Sessions int                    `json:"sessions"`
}

// TotalComparison pairs the base and head totals, plus the patch totals when known.
type TotalComparison struct {
	Base  ReportTotal  `json:"base"`
	Head  ReportTotal  `json:"head"`
	Patch *ReportTotal `json:"patch"`
}

// FileNameComparison holds the base and head names of a compared file.
type FileNameComparison struct {
	Base *string `json:"base"`
	Head *string `json:"head"`
}

// FileStatComparison counts lines added and removed in a file.
type FileStatComparison struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// FileChangeSummaryComparison counts coverage changes in a file.
type FileChangeSummaryComparison struct {
	Hits     *int `json:"hits"`
	Misses   *int `json:"misses"`
	Partials *int `json:"partials"`
}

// FileComparison is the comparison of a single file.
type FileComparison struct {
	Name          FileNameComparison           `json:"name"`
	Totals        TotalComparison              `json:"totals"`
	HasDiff       bool                         `json:"has_diff"`
	Stats         *FileStatComparison          `json:"stats"`
	ChangeSummary *FileChangeSummaryComparison `json:"change_summary"`
	Lines         []LineComparison             `json:"lines"`
}

// DiffComparison lists the git commits between base and head.
type DiffComparison struct {
	GitCommits []GitCommit `json:"git_commits"`
}

// CommitComparison is the result of comparing two commits or a pull request.
type CommitComparison struct {
	BaseCommit             string           `json:"base_commit"`
	HeadCommit             string           `json:"head_commit"`
	Totals                 TotalComparison  `json:"totals"`
	CommitUploads          []Commit         `json:"commit_uploads"`
	Diff                   DiffComparison   `json:"diff"`
	Files                  []FileComparison `json:"files"`
	Untracked              []string         `json:"untracked"`
	HasUnmergedBaseCommits bool             `json:"has_unmerged_base_commits"`
}

// ComponentComparison compares the totals of one component.
type ComponentComparison struct {
	Component
	BaseReportTotals ReportTotal  `json:"base_report_totals"`
	HeadReportTotals ReportTotal  `json:"head_report_totals"`
	DiffTotals       *ReportTotal `json:"diff_totals"`
}

// FlagComparison compares the totals of one flag.
type FlagComparison struct {
	Name             string       `json:"name"`
	BaseReportTotals ReportTotal  `json:"base_report_totals"`
	HeadReportTotals ReportTotal  `json:"head_report_totals"`
	DiffTotals       *ReportTotal `json:"diff_totals"`
}

func ParseLineNumberComparison(data []byte) (LineNumberComparison, error) {
	return decode[LineNumberComparison]("line number comparison", data)
}

func ParseLineCoverageComparison(data []byte) (LineCoverageComparison, error) {
	return decode[LineCoverageComparison]("line coverage comparison", data)
}

func ParseLineComparison(data []byte) (LineComparison, error) {
	return decode[LineComparison]("line comparison", data)
}

func ParseTotalComparison(data []byte) (TotalComparison, error) {
	return decode[TotalComparison]("total comparison", data)
}

func ParseFileNameComparison(data []byte) (FileNameComparison, error) {
	return decode[FileNameComparison]("file name comparison", data)
}

func ParseFileStatComparison(data []byte) (FileStatComparison, error) {
	return decode[FileStatComparison]("file stat comparison", data)
}

func ParseFileChangeSummaryComparison(data []byte) (FileChangeSummaryComparison, error) {
	return decode[FileChangeSummaryComparison]("file change summary comparison", data)
}

// ParseFileComparison decodes a FileComparison.
func ParseFileComparison(data []byte) (FileComparison, error) {
	return decode[FileComparison]("file comparison", data)
}

func ParseDiffComparison(data []byte) (DiffComparison, error) {
	return decode[DiffComparison]("diff comparison", data)
}

// ParseCommitComparison decodes a CommitComparison.
func ParseCommitComparison(data []byte) (CommitComparison, error) {
	return decode[CommitComparison]("commit comparison", data)
}

// ParseComponentComparison decodes a ComponentComparison.
func ParseComponentComparison(data []byte) (ComponentComparison, error) {
	return decode[ComponentComparison]("component comparison", data)
}

// ParseFlagComparison decodes a FlagComparison.
func ParseFlagComparison(data []byte) (FlagComparison, error) {
	return decode[FlagComparison]("flag comparison", data)
}
