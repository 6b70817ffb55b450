package codecov

import (
	"context"
	"strconv"

	"github.com/s0up4200/codecovctl/schema"
)

// PullsService handles pull request endpoints.
type PullsService service

// List lists the pull requests of a repository.
func (s *PullsService) List(ctx context.Context, svc schema.Service, owner, repo string, opts *PullListOptions) (*Page[schema.Pull], error) {
	endpoint, err := repoPath(svc, owner, repo, "pulls")
	if err != nil {
		return nil, err
	}
	return getPage(ctx, s.client, endpoint, opts, schema.ParsePull)
}

// Detail fetches a single pull request.
func (s *PullsService) Detail(ctx context.Context, svc schema.Service, owner, repo string, id int) (schema.Pull, error) {
	endpoint, err := repoPath(svc, owner, repo, "pulls", strconv.Itoa(id))
	if err != nil {
		return schema.Pull{}, err
	}
	return get(ctx, s.client, endpoint, nil, schema.ParsePull)
}
