package codecov

import (
	"context"

	"github.com/s0up4200/codecovctl/schema"
)

// CommitsService handles commit endpoints.
type CommitsService service

// List lists the commits of a repository as plain records.
func (s *CommitsService) List(ctx context.Context, svc schema.Service, owner, repo string, opts *CommitListOptions) (*Page[schema.Commit], error) {
	endpoint, err := repoPath(svc, owner, repo, "commits")
	if err != nil {
		return nil, err
	}
	return getPage(ctx, s.client, endpoint, opts, schema.ParseCommit)
}

// Detail fetches a commit together with its report.
func (s *CommitsService) Detail(ctx context.Context, svc schema.Service, owner, repo, sha string) (schema.CommitDetail, error) {
	if sha == "" {
		return schema.CommitDetail{}, missing("commit")
	}
	endpoint, err := repoPath(svc, owner, repo, "commits", sha)
	if err != nil {
		return schema.CommitDetail{}, err
	}
	return get(ctx, s.client, endpoint, nil, schema.ParseCommitDetail)
}

// Commit is an API-bound commit.
type Commit struct {
	schema.Commit

	scope  Scope
	client *Client
}

// Scope returns the repository the commit belongs to.
func (c *Commit) Scope() Scope {
	return c.scope
}

// Detail fetches the commit together with its report.
func (c *Commit) Detail(ctx context.Context) (schema.CommitDetail, error) {
	return c.client.Commits.Detail(ctx, c.scope.Service, c.scope.Owner, c.scope.Repo, c.CommitID)
}

// CoverageReport fetches the line coverage report at this commit.
func (c *Commit) CoverageReport(ctx context.Context, opts *ReportOptions) (schema.CommitCoverageReport, error) {
	if c.CommitID == "" {
		return schema.CommitCoverageReport{}, missing("commit")
	}
	return c.client.Coverage.Report(ctx, c.scope.Service, c.scope.Owner, c.scope.Repo, opts.withSHA(c.CommitID))
}

// CoverageTotals fetches the per-file totals at this commit.
func (c *Commit) CoverageTotals(ctx context.Context, opts *ReportOptions) (schema.CommitCoverageTotal, error) {
	if c.CommitID == "" {
		return schema.CommitCoverageTotal{}, missing("commit")
	}
	return c.client.Coverage.Totals(ctx, c.scope.Service, c.scope.Owner, c.scope.Repo, opts.withSHA(c.CommitID))
}
