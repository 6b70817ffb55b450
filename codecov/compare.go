package codecov

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/s0up4200/codecovctl/schema"
)

// CompareService handles comparison endpoints.
type CompareService service

func compareEndpoint(svc schema.Service, owner, repo string, rest ...string) (string, error) {
	endpoint, err := repoPath(svc, owner, repo)
	if err != nil {
		return "", err
	}
	return endpoint + "compare" + joinSegments(rest), nil
}

// Commits compares two commits, branches or a pull request.
func (s *CompareService) Commits(ctx context.Context, svc schema.Service, owner, repo string, opts *CompareOptions) (schema.CommitComparison, error) {
	endpoint, err := repoPath(svc, owner, repo, "compare")
	if err != nil {
		return schema.CommitComparison{}, err
	}
	return get(ctx, s.client, endpoint, opts, schema.ParseCommitComparison)
}

// Components compares the totals of every component.
func (s *CompareService) Components(ctx context.Context, svc schema.Service, owner, repo string, opts *CompareOptions) ([]schema.ComponentComparison, error) {
	endpoint, err := compareEndpoint(svc, owner, repo, "components")
	if err != nil {
		return nil, err
	}
	return get(ctx, s.client, endpoint, opts, parseList(schema.ParseComponentComparison))
}

// Flags compares the totals of every flag.
func (s *CompareService) Flags(ctx context.Context, svc schema.Service, owner, repo string, opts *CompareOptions) ([]schema.FlagComparison, error) {
	endpoint, err := compareEndpoint(svc, owner, repo, "flags")
	if err != nil {
		return nil, err
	}
	return get(ctx, s.client, endpoint, opts, parseList(schema.ParseFlagComparison))
}

// File compares a single file. The path keeps its slashes.
func (s *CompareService) File(ctx context.Context, svc schema.Service, owner, repo, path string, opts *CompareOptions) (schema.FileComparison, error) {
	if path == "" {
		return schema.FileComparison{}, missing("path")
	}
	endpoint, err := compareEndpoint(svc, owner, repo, "file")
	if err != nil {
		return schema.FileComparison{}, err
	}
	return get(ctx, s.client, endpoint+"/"+filePath(path), opts, schema.ParseFileComparison)
}

// parseList decodes a bare JSON array with an element parser.
func parseList[T any](parse func([]byte) (T, error)) func([]byte) ([]T, error) {
	return func(data []byte) ([]T, error) {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		out := make([]T, 0, len(raw))
		for i, item := range raw {
			v, err := parse(item)
			if err != nil {
				return nil, fmt.Errorf("decode list item %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}
