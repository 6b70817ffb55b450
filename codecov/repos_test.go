package codecov

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/codecovctl/schema"
)

const emptyPage = `{"count":0,"next":null,"previous":null,"results":[],"total_pages":0}`

func TestRepoEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		call      func(ctx context.Context, r *Repo) error
		wantPath  string
		wantQuery string
		body      string
	}{
		{
			name: "detail",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.Detail(ctx)
				return err
			},
			wantPath: "/api/v2/github/kiraware/repos/pycodecov/",
			body:     `{"name":"pycodecov","private":false,"author":{"service":"github","username":"kiraware"},"branch":"main"}`,
		},
		{
			name: "config",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.Config(ctx)
				return err
			},
			wantPath: "/api/v2/github/kiraware/repos/pycodecov/config/",
			body:     `{"upload_token":"u","graph_token":"g"}`,
		},
		{
			name: "branches",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.Branches(ctx, &BranchListOptions{Ordering: String("-updatestamp")})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/branches/",
			wantQuery: "ordering=-updatestamp",
			body:      emptyPage,
		},
		{
			name: "commits",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.Commits(ctx, &CommitListOptions{Branch: String("main")})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/commits/",
			wantQuery: "branch=main",
			body:      emptyPage,
		},
		{
			name: "pulls",
			call: func(ctx context.Context, r *Repo) error {
				state := schema.PullStateMerged
				_, err := r.Pulls(ctx, &PullListOptions{State: &state})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/pulls/",
			wantQuery: "state=merged",
			body:      emptyPage,
		},
		{
			name: "pull",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.Pull(ctx, 42)
				return err
			},
			wantPath: "/api/v2/github/kiraware/repos/pycodecov/pulls/42/",
			body:     `{"pullid":42,"state":"open"}`,
		},
		{
			name: "compare",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.Compare(ctx, &CompareOptions{Base: String("aaa"), Head: String("bbb")})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/compare/",
			wantQuery: "base=aaa&head=bbb",
			body:      `{"base_commit":"aaa","head_commit":"bbb"}`,
		},
		{
			name: "compare components",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.CompareComponents(ctx, &CompareOptions{PullID: Int(7)})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/compare/components",
			wantQuery: "pullid=7",
			body:      `[{"component_id":"api","name":"API"}]`,
		},
		{
			name: "compare flags",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.CompareFlags(ctx, &CompareOptions{PullID: Int(7)})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/compare/flags",
			wantQuery: "pullid=7",
			body:      `[]`,
		},
		{
			name: "compare file keeps slashes",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.CompareFile(ctx, "src/pycodecov/api.py", &CompareOptions{PullID: Int(7)})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/compare/file/src/pycodecov/api.py",
			wantQuery: "pullid=7",
			body:      `{"name":{"base":"src/pycodecov/api.py","head":"src/pycodecov/api.py"}}`,
		},
		{
			name: "components",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.Components(ctx)
				return err
			},
			wantPath: "/api/v2/github/kiraware/repos/pycodecov/components/",
			body:     `[]`,
		},
		{
			name: "flags",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.Flags(ctx, &ListOptions{PageSize: Int(5)})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/flags/",
			wantQuery: "page_size=5",
			body:      emptyPage,
		},
		{
			name: "coverage trend",
			call: func(ctx context.Context, r *Repo) error {
				interval := schema.Interval7Days
				_, err := r.CoverageTrend(ctx, &CoverageTrendOptions{Interval: &interval})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/coverage/",
			wantQuery: "interval=7d",
			body:      emptyPage,
		},
		{
			name: "flag coverage trend",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.FlagCoverageTrend(ctx, "unit", nil)
				return err
			},
			wantPath: "/api/v2/github/kiraware/repos/pycodecov/flags/unit/coverage/",
			body:     emptyPage,
		},
		{
			name: "report",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.CoverageReport(ctx, &ReportOptions{Branch: String("main"), Path: String("src")})
				return err
			},
			wantPath:  "/api/v2/github/kiraware/repos/pycodecov/report/",
			wantQuery: "branch=main&path=src",
			body:      `{"totals":{},"commit_file_url":"","files":[]}`,
		},
		{
			name: "totals",
			call: func(ctx context.Context, r *Repo) error {
				_, err := r.CoverageTotals(ctx, nil)
				return err
			},
			wantPath: "/api/v2/github/kiraware/repos/pycodecov/totals/",
			body:     `{"totals":{"coverage":91.5},"commit_file_url":"","files":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				w.Write([]byte(tt.body))
			})

			repo := client.Repo(schema.ServiceGitHub, "kiraware", "pycodecov")
			require.NoError(t, tt.call(context.Background(), repo))
		})
	}
}

func TestCommitScopedRequests(t *testing.T) {
	var paths, queries []string
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		queries = append(queries, r.URL.RawQuery)
		switch r.URL.Path {
		case "/api/v2/github/kiraware/repos/pycodecov/commits/":
			w.Write([]byte(`{"count":1,"next":null,"previous":null,"results":[{"commitid":"abc123","timestamp":"2024-03-25T16:38:25Z"}],"total_pages":1}`))
		case "/api/v2/github/kiraware/repos/pycodecov/commits/abc123/":
			w.Write([]byte(`{"commitid":"abc123","timestamp":"2024-03-25T16:38:25Z","report":{"totals":{},"files":[]}}`))
		default:
			w.Write([]byte(`{"totals":{"coverage":88.8},"commit_file_url":"x","files":[]}`))
		}
	})
	ctx := context.Background()

	commits, err := client.Repo(schema.ServiceGitHub, "kiraware", "pycodecov").Commits(ctx, nil)
	require.NoError(t, err)
	require.Len(t, commits.Results, 1)

	commit := commits.Results[0]
	assert.Equal(t, Scope{Service: schema.ServiceGitHub, Owner: "kiraware", Repo: "pycodecov"}, commit.Scope())

	detail, err := commit.Detail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", detail.CommitID)

	opts := &ReportOptions{Flag: String("unit")}
	totals, err := commit.CoverageTotals(ctx, opts)
	require.NoError(t, err)
	assert.InDelta(t, 88.8, totals.Totals.Coverage, 0.001)
	assert.Nil(t, opts.SHA, "caller options must not be modified")

	assert.Equal(t, []string{
		"/api/v2/github/kiraware/repos/pycodecov/commits/",
		"/api/v2/github/kiraware/repos/pycodecov/commits/abc123/",
		"/api/v2/github/kiraware/repos/pycodecov/totals/",
	}, paths)
	assert.Equal(t, "flag=unit&sha=abc123", queries[2])
}

func TestPathEscaping(t *testing.T) {
	assert.Equal(t, "/github/a%20b/repos/", apiPath("github", "a b", "repos"))
	assert.Equal(t, "dir/file%20name.go", filePath("/dir/file name.go"))
}
