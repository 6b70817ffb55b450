package codecov

import (
	"context"

	"github.com/s0up4200/codecovctl/schema"
)

// BranchesService handles branch endpoints.
type BranchesService service

// List lists the branches of a repository as plain records.
func (s *BranchesService) List(ctx context.Context, svc schema.Service, owner, repo string, opts *BranchListOptions) (*Page[schema.Branch], error) {
	endpoint, err := repoPath(svc, owner, repo, "branches")
	if err != nil {
		return nil, err
	}
	return getPage(ctx, s.client, endpoint, opts, schema.ParseBranch)
}

// Detail fetches a branch together with its head commit.
func (s *BranchesService) Detail(ctx context.Context, svc schema.Service, owner, repo, name string) (schema.BranchDetail, error) {
	if name == "" {
		return schema.BranchDetail{}, missing("branch")
	}
	endpoint, err := repoPath(svc, owner, repo, "branches", name)
	if err != nil {
		return schema.BranchDetail{}, err
	}
	return get(ctx, s.client, endpoint, nil, schema.ParseBranchDetail)
}

// Branch is an API-bound branch.
type Branch struct {
	schema.Branch

	scope  Scope
	client *Client
}

// Detail fetches the branch together with its head commit.
func (b *Branch) Detail(ctx context.Context) (schema.BranchDetail, error) {
	return b.client.Branches.Detail(ctx, b.scope.Service, b.scope.Owner, b.scope.Repo, b.Name)
}

// Commits lists the commits of the branch.
func (b *Branch) Commits(ctx context.Context, opts *ListOptions) (*BoundPage[schema.Commit, *Commit], error) {
	if b.Name == "" {
		return nil, missing("branch")
	}
	listOpts := &CommitListOptions{Branch: String(b.Name)}
	if opts != nil {
		listOpts.ListOptions = *opts
	}
	page, err := b.client.Commits.List(ctx, b.scope.Service, b.scope.Owner, b.scope.Repo, listOpts)
	if err != nil {
		return nil, err
	}
	return Bind(page, UpgradeCommit, b.scope), nil
}
