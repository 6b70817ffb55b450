package codecov

import (
	"context"

	"github.com/s0up4200/codecovctl/schema"
)

// ReposService handles repository endpoints.
type ReposService service

func repoPath(svc schema.Service, owner, repo string, rest ...string) (string, error) {
	if svc == "" {
		return "", missing("service")
	}
	if owner == "" {
		return "", missing("owner")
	}
	if repo == "" {
		return "", missing("repo")
	}
	return apiPath(append([]string{string(svc), owner, "repos", repo}, rest...)...), nil
}

// List lists the repositories of an owner as plain records.
func (s *ReposService) List(ctx context.Context, svc schema.Service, owner string, opts *RepoListOptions) (*Page[schema.Repo], error) {
	if svc == "" {
		return nil, missing("service")
	}
	if owner == "" {
		return nil, missing("owner")
	}
	return getPage(ctx, s.client, apiPath(string(svc), owner, "repos"), opts, schema.ParseRepo)
}

// Detail fetches a single repository.
func (s *ReposService) Detail(ctx context.Context, svc schema.Service, owner, repo string) (schema.Repo, error) {
	endpoint, err := repoPath(svc, owner, repo)
	if err != nil {
		return schema.Repo{}, err
	}
	return get(ctx, s.client, endpoint, nil, schema.ParseRepo)
}

// Config fetches the upload and graph tokens of a repository.
func (s *ReposService) Config(ctx context.Context, svc schema.Service, owner, repo string) (schema.RepoConfig, error) {
	endpoint, err := repoPath(svc, owner, repo, "config")
	if err != nil {
		return schema.RepoConfig{}, err
	}
	return get(ctx, s.client, endpoint, nil, schema.ParseRepoConfig)
}

// Components lists the components defined for a repository. The endpoint
// is not paginated.
func (s *ReposService) Components(ctx context.Context, svc schema.Service, owner, repo string) ([]schema.Component, error) {
	endpoint, err := repoPath(svc, owner, repo, "components")
	if err != nil {
		return nil, err
	}
	return get(ctx, s.client, endpoint, nil, parseList(schema.ParseComponent))
}

// Flags lists the upload flags of a repository.
func (s *ReposService) Flags(ctx context.Context, svc schema.Service, owner, repo string, opts *ListOptions) (*Page[schema.Flag], error) {
	endpoint, err := repoPath(svc, owner, repo, "flags")
	if err != nil {
		return nil, err
	}
	return getPage(ctx, s.client, endpoint, opts, schema.ParseFlag)
}

// Repo returns a bound repository without fetching it.
func (c *Client) Repo(svc schema.Service, owner, name string) *Repo {
	return &Repo{Repo: schema.Repo{Name: name}, service: svc, owner: owner, client: c}
}

// Repo is an API-bound repository.
type Repo struct {
	schema.Repo

	service schema.Service
	owner   string
	client  *Client
}

// Service returns the Git hosting service of the repository.
func (r *Repo) Service() schema.Service {
	return r.service
}

// OwnerName returns the username of the repository owner.
func (r *Repo) OwnerName() string {
	return r.owner
}

func (r *Repo) scope() Scope {
	return Scope{Service: r.service, Owner: r.owner, Repo: r.Name}
}

// Detail fetches a fresh copy of the repository.
func (r *Repo) Detail(ctx context.Context) (*Repo, error) {
	repo, err := r.client.Repos.Detail(ctx, r.service, r.owner, r.Name)
	if err != nil {
		return nil, err
	}
	return UpgradeRepo(repo, r.client, Scope{Service: r.service, Owner: r.owner}), nil
}

// Config fetches the repository tokens.
func (r *Repo) Config(ctx context.Context) (schema.RepoConfig, error) {
	return r.client.Repos.Config(ctx, r.service, r.owner, r.Name)
}

// Branches lists the branches of the repository.
func (r *Repo) Branches(ctx context.Context, opts *BranchListOptions) (*BoundPage[schema.Branch, *Branch], error) {
	page, err := r.client.Branches.List(ctx, r.service, r.owner, r.Name, opts)
	if err != nil {
		return nil, err
	}
	return Bind(page, UpgradeBranch, r.scope()), nil
}

// Commits lists the commits of the repository.
func (r *Repo) Commits(ctx context.Context, opts *CommitListOptions) (*BoundPage[schema.Commit, *Commit], error) {
	page, err := r.client.Commits.List(ctx, r.service, r.owner, r.Name, opts)
	if err != nil {
		return nil, err
	}
	return Bind(page, UpgradeCommit, r.scope()), nil
}

// Pulls lists the pull requests of the repository.
func (r *Repo) Pulls(ctx context.Context, opts *PullListOptions) (*Page[schema.Pull], error) {
	return r.client.Pulls.List(ctx, r.service, r.owner, r.Name, opts)
}

// Pull fetches a single pull request.
func (r *Repo) Pull(ctx context.Context, id int) (schema.Pull, error) {
	return r.client.Pulls.Detail(ctx, r.service, r.owner, r.Name, id)
}

// Compare compares two commits, branches or a pull request.
func (r *Repo) Compare(ctx context.Context, opts *CompareOptions) (schema.CommitComparison, error) {
	return r.client.Compare.Commits(ctx, r.service, r.owner, r.Name, opts)
}

// CompareComponents compares the totals of every component.
func (r *Repo) CompareComponents(ctx context.Context, opts *CompareOptions) ([]schema.ComponentComparison, error) {
	return r.client.Compare.Components(ctx, r.service, r.owner, r.Name, opts)
}

// CompareFlags compares the totals of every flag.
func (r *Repo) CompareFlags(ctx context.Context, opts *CompareOptions) ([]schema.FlagComparison, error) {
	return r.client.Compare.Flags(ctx, r.service, r.owner, r.Name, opts)
}

// CompareFile compares a single file.
func (r *Repo) CompareFile(ctx context.Context, path string, opts *CompareOptions) (schema.FileComparison, error) {
	return r.client.Compare.File(ctx, r.service, r.owner, r.Name, path, opts)
}

// Components lists the components of the repository.
func (r *Repo) Components(ctx context.Context) ([]schema.Component, error) {
	return r.client.Repos.Components(ctx, r.service, r.owner, r.Name)
}

// Flags lists the upload flags of the repository.
func (r *Repo) Flags(ctx context.Context, opts *ListOptions) (*Page[schema.Flag], error) {
	return r.client.Repos.Flags(ctx, r.service, r.owner, r.Name, opts)
}

// CoverageTrend fetches the coverage time series of the repository.
func (r *Repo) CoverageTrend(ctx context.Context, opts *CoverageTrendOptions) (*Page[schema.CoverageTrend], error) {
	return r.client.Coverage.Trend(ctx, r.service, r.owner, r.Name, opts)
}

// FlagCoverageTrend fetches the coverage time series of one flag.
func (r *Repo) FlagCoverageTrend(ctx context.Context, flag string, opts *CoverageTrendOptions) (*Page[schema.CoverageTrend], error) {
	return r.client.Coverage.FlagTrend(ctx, r.service, r.owner, r.Name, flag, opts)
}

// CoverageReport fetches the line coverage report of the repository.
func (r *Repo) CoverageReport(ctx context.Context, opts *ReportOptions) (schema.CommitCoverageReport, error) {
	return r.client.Coverage.Report(ctx, r.service, r.owner, r.Name, opts)
}

// CoverageTotals fetches the per-file totals of the repository.
func (r *Repo) CoverageTotals(ctx context.Context, opts *ReportOptions) (schema.CommitCoverageTotal, error) {
	return r.client.Coverage.Totals(ctx, r.service, r.owner, r.Name, opts)
}
