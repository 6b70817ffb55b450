package codecov

import (
	"context"

	"github.com/s0up4200/codecovctl/schema"
)

// CoverageService handles coverage, report and totals endpoints.
type CoverageService service

// Trend fetches the coverage time series of a repository.
func (s *CoverageService) Trend(ctx context.Context, svc schema.Service, owner, repo string, opts *CoverageTrendOptions) (*Page[schema.CoverageTrend], error) {
	endpoint, err := repoPath(svc, owner, repo, "coverage")
	if err != nil {
		return nil, err
	}
	return getPage(ctx, s.client, endpoint, opts, schema.ParseCoverageTrend)
}

// FlagTrend fetches the coverage time series of one flag.
func (s *CoverageService) FlagTrend(ctx context.Context, svc schema.Service, owner, repo, flag string, opts *CoverageTrendOptions) (*Page[schema.CoverageTrend], error) {
	if flag == "" {
		return nil, missing("flag")
	}
	endpoint, err := repoPath(svc, owner, repo, "flags", flag, "coverage")
	if err != nil {
		return nil, err
	}
	return getPage(ctx, s.client, endpoint, opts, schema.ParseCoverageTrend)
}

// Report fetches a line coverage report. Without a branch or sha the
// default branch head is used.
func (s *CoverageService) Report(ctx context.Context, svc schema.Service, owner, repo string, opts *ReportOptions) (schema.CommitCoverageReport, error) {
	endpoint, err := repoPath(svc, owner, repo, "report")
	if err != nil {
		return schema.CommitCoverageReport{}, err
	}
	return get(ctx, s.client, endpoint, opts, schema.ParseCommitCoverageReport)
}

// Totals fetches coverage totals with per-file totals.
func (s *CoverageService) Totals(ctx context.Context, svc schema.Service, owner, repo string, opts *ReportOptions) (schema.CommitCoverageTotal, error) {
	endpoint, err := repoPath(svc, owner, repo, "totals")
	if err != nil {
		return schema.CommitCoverageTotal{}, err
	}
	return get(ctx, s.client, endpoint, opts, schema.ParseCommitCoverageTotal)
}
