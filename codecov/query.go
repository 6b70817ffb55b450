package codecov

import "github.com/s0up4200/codecovctl/schema"

// Bool returns a pointer to v, for use in option structs.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for use in option structs.
func Int(v int) *int { return &v }

// String returns a pointer to v, for use in option structs.
func String(v string) *string { return &v }

// ListOptions are the pagination parameters shared by list endpoints.
// Nil fields are not sent.
type ListOptions struct {
	Page     *int `url:"page,omitempty"`
	PageSize *int `url:"page_size,omitempty"`
}

// UserListOptions filters the users of an owner.
type UserListOptions struct {
	Activated *bool   `url:"activated,omitempty"`
	IsAdmin   *bool   `url:"is_admin,omitempty"`
	Search    *string `url:"search,omitempty"`
	ListOptions
}

// RepoListOptions filters the repositories of an owner.
type RepoListOptions struct {
	Active *bool    `url:"active,omitempty"`
	Names  []string `url:"names,omitempty"`
	Search *string  `url:"search,omitempty"`
	ListOptions
}

// BranchListOptions filters the branches of a repository.
type BranchListOptions struct {
	Author   *bool   `url:"author,omitempty"`
	Ordering *string `url:"ordering,omitempty"`
	ListOptions
}

// CommitListOptions filters the commits of a repository.
type CommitListOptions struct {
	Branch *string `url:"branch,omitempty"`
	ListOptions
}

// PullListOptions filters the pull requests of a repository.
type PullListOptions struct {
	Ordering  *string           `url:"ordering,omitempty"`
	StartDate *string           `url:"start_date,omitempty"`
	State     *schema.PullState `url:"state,omitempty"`
	ListOptions
}

// CompareOptions selects the two sides of a comparison: either a base and
// head commit or branch, or a pull request.
type CompareOptions struct {
	Base   *string `url:"base,omitempty"`
	Head   *string `url:"head,omitempty"`
	PullID *int    `url:"pullid,omitempty"`
}

// CoverageTrendOptions filters a coverage time series.
type CoverageTrendOptions struct {
	Branch    *string          `url:"branch,omitempty"`
	Interval  *schema.Interval `url:"interval,omitempty"`
	StartDate *string          `url:"start_date,omitempty"`
	EndDate   *string          `url:"end_date,omitempty"`
	ListOptions
}

// ReportOptions selects the commit and slice of a coverage report.
type ReportOptions struct {
	Branch      *string `url:"branch,omitempty"`
	SHA         *string `url:"sha,omitempty"`
	ComponentID *string `url:"component_id,omitempty"`
	Flag        *string `url:"flag,omitempty"`
	Path        *string `url:"path,omitempty"`
}

func (o *ReportOptions) withSHA(sha string) *ReportOptions {
	out := ReportOptions{}
	if o != nil {
		out = *o
	}
	out.SHA = &sha
	return &out
}
