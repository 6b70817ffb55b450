package schema

// Branch is a branch of a repository.
type Branch struct {
	Name        string    `json:"name"`
	Updatestamp Timestamp `json:"updatestamp"`
}

// BranchDetail is a branch together with its head commit.
type BranchDetail struct {
	Branch
	HeadCommit CommitDetail `json:"head_commit"`
}

// ParseBranch decodes a Branch.
func ParseBranch(data []byte) (Branch, error) {
	return decode[Branch]("branch", data)
}

// ParseBranchDetail decodes a BranchDetail.
func ParseBranchDetail(data []byte) (BranchDetail, error) {
	return decode[BranchDetail]("branch detail", data)
}
