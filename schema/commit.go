package schema

// BaseCommit carries the fields shared by every commit shape.
type BaseCommit struct {
	CommitID  string    `json:"commitid"`
	Message   *string   `json:"message"`
	Timestamp Timestamp `json:"timestamp"`
}

// Commit is a commit as listed by Codecov.
type Commit struct {
	BaseCommit
	CIPassed *bool        `json:"ci_passed"`
	Author   *Owner       `json:"author"`
	Branch   *string      `json:"branch"`
	Totals   *CommitTotal `json:"totals"`
	State    *CommitState `json:"state"`
	Parent   *string      `json:"parent"`
}

// CommitDetail is a Commit with its full coverage report.
type CommitDetail struct {
	Commit
	Report Report `json:"report"`
}

// GitCommit is a commit as it appears in a comparison diff.
type GitCommit struct {
	BaseCommit
	Author GitAuthor `json:"author"`
}

// ParseBaseCommit decodes a BaseCommit.
func ParseBaseCommit(data []byte) (BaseCommit, error) {
	return decode[BaseCommit]("base commit", data)
}

// ParseCommit decodes a Commit.
func ParseCommit(data []byte) (Commit, error) {
	return decode[Commit]("commit", data)
}

// ParseCommitDetail decodes a CommitDetail.
func ParseCommitDetail(data []byte) (CommitDetail, error) {
	return decode[CommitDetail]("commit detail", data)
}

// ParseGitCommit decodes a GitCommit.
func ParseGitCommit(data []byte) (GitCommit, error) {
	return decode[GitCommit]("git commit", data)
}
