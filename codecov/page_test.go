package codecov

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/codecovctl/schema"
)

// ownersHandler serves three pages of two owners each under /api/v2/github/.
func ownersHandler(base func() string, hits *atomic.Int32) http.HandlerFunc {
	const totalPages = 3
	return func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		if page > totalPages {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Invalid page."}`))
			return
		}

		link := func(p int) any {
			if p < 1 || p > totalPages {
				return nil
			}
			return fmt.Sprintf("%s/api/v2/github/?page=%d", base(), p)
		}

		results := []map[string]any{}
		for i := 0; i < 2; i++ {
			results = append(results, map[string]any{
				"service":  "github",
				"username": fmt.Sprintf("owner-%d-%d", page, i),
				"name":     nil,
			})
		}

		json.NewEncoder(w).Encode(map[string]any{
			"count":       6,
			"next":        link(page + 1),
			"previous":    link(page - 1),
			"results":     results,
			"total_pages": totalPages,
		})
	}
}

func usernames(owners []*Owner) []string {
	out := make([]string, len(owners))
	for i, o := range owners {
		out[i] = *o.Username
	}
	return out
}

func TestPageNoLinkNoRequest(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	data := []byte(`{"count":1,"next":null,"previous":null,"results":[{"service":"github","username":"a"}],"total_pages":1}`)
	page, err := NewPage(client, data, schema.DecoderFunc[schema.Owner](schema.ParseOwner))
	require.NoError(t, err)

	next, err := page.NextPage(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, next)

	prev, err := page.PreviousPage(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, prev)

	bound := Bind(page, UpgradeOwner, Scope{Service: schema.ServiceGitHub})
	boundNext, err := bound.NextPage(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, boundNext)

	assert.Zero(t, hits.Load())
}

func TestPageCursorSymmetry(t *testing.T) {
	var hits atomic.Int32
	var baseURL string
	client, server := newTestClient(t, "", ownersHandler(func() string { return baseURL }, &hits))
	baseURL = server.URL
	ctx := context.Background()

	second, err := client.ServiceOwners(ctx, schema.ServiceGitHub, &ListOptions{Page: Int(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner-2-0", "owner-2-1"}, usernames(second.Results))
	assert.True(t, second.HasNext())
	assert.True(t, second.HasPrevious())

	third, err := second.NextPage(ctx)
	require.NoError(t, err)
	require.NotNil(t, third)
	assert.Equal(t, []string{"owner-3-0", "owner-3-1"}, usernames(third.Results))
	assert.False(t, third.HasNext())

	back, err := third.PreviousPage(ctx)
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.Equal(t, usernames(second.Results), usernames(back.Results))
	assert.Equal(t, second.Count, back.Count)
	assert.Equal(t, second.TotalPages, back.TotalPages)

	last, err := third.NextPage(ctx)
	assert.NoError(t, err)
	assert.Nil(t, last)
	assert.Equal(t, int32(3), hits.Load())
}

func TestBindPreservesPage(t *testing.T) {
	client, err := NewClient("")
	require.NoError(t, err)

	data := []byte(`{
		"count": 10,
		"next": "https://api.codecov.io/api/v2/github/?page=3",
		"previous": "https://api.codecov.io/api/v2/github/?page=1",
		"results": [
			{"service": "github", "username": "a"},
			{"service": "gitlab", "username": "b"},
			{"service": "bitbucket", "username": "c"}
		],
		"total_pages": 4
	}`)
	page, err := NewPage(client, data, schema.JSON[schema.Owner]("owner"))
	require.NoError(t, err)

	bound := Bind(page, UpgradeOwner, Scope{Service: schema.ServiceGitHub})

	assert.Equal(t, page.Count, bound.Count)
	assert.Equal(t, page.TotalPages, bound.TotalPages)
	assert.Equal(t, page.Next, bound.Next)
	assert.Equal(t, page.Previous, bound.Previous)
	require.Len(t, bound.Results, len(page.Results))
	for i, item := range page.Results {
		assert.Equal(t, item, bound.Results[i].Owner)
	}
	assert.Same(t, page, bound.Plain())
}

func TestBoundPageThreadsScope(t *testing.T) {
	var baseURL string
	client, server := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/github/kiraware/repos/", r.URL.Path)
		page := r.URL.Query().Get("page")

		var next any
		if page == "" {
			next = baseURL + "/api/v2/github/kiraware/repos/?page=2"
		}
		json.NewEncoder(w).Encode(map[string]any{
			"count":    2,
			"next":     next,
			"previous": nil,
			"results": []map[string]any{{
				"name":    "repo-" + page,
				"private": false,
				"author":  map[string]any{"service": "gitlab", "username": "someone-else"},
				"branch":  "main",
			}},
			"total_pages": 2,
		})
	})
	baseURL = server.URL
	ctx := context.Background()

	owner := UpgradeOwner(schema.Owner{Service: schema.ServiceGitHub, Username: String("kiraware")}, client, Scope{})
	first, err := owner.Repos(ctx, nil)
	require.NoError(t, err)

	want := Scope{Service: schema.ServiceGitHub, Owner: "kiraware"}
	assert.Equal(t, want, first.Scope())

	second, err := first.NextPage(ctx)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, want, second.Scope())

	require.Len(t, second.Results, 1)
	repo := second.Results[0]
	assert.Equal(t, "repo-2", repo.Name)
	assert.Equal(t, schema.ServiceGitHub, repo.Service())
	assert.Equal(t, "kiraware", repo.OwnerName())
}

func TestPageCancellation(t *testing.T) {
	var hits atomic.Int32
	var baseURL string
	client, server := newTestClient(t, "", ownersHandler(func() string { return baseURL }, &hits))
	baseURL = server.URL

	first, err := client.ServiceOwners(context.Background(), schema.ServiceGitHub, nil)
	require.NoError(t, err)
	before := usernames(first.Results)
	beforeNext := *first.Next

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	next, err := first.NextPage(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, next)

	assert.Equal(t, before, usernames(first.Results))
	assert.Equal(t, beforeNext, *first.Next)
}

func TestPageErrorResponse(t *testing.T) {
	var baseURL string
	client, server := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Invalid page."}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"count":       4,
			"next":        baseURL + "/api/v2/github/?page=2",
			"previous":    nil,
			"results":     []any{},
			"total_pages": 2,
		})
	})
	baseURL = server.URL

	first, err := client.ServiceOwners(context.Background(), schema.ServiceGitHub, nil)
	require.NoError(t, err)

	_, err = first.NextPage(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, map[string]any{"detail": "Invalid page."}, apiErr.Content)
}

func TestWalk(t *testing.T) {
	var hits atomic.Int32
	var baseURL string
	client, server := newTestClient(t, "", ownersHandler(func() string { return baseURL }, &hits))
	baseURL = server.URL
	ctx := context.Background()

	first, err := client.ServiceOwners(ctx, schema.ServiceGitHub, nil)
	require.NoError(t, err)

	all, err := CollectBound(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"owner-1-0", "owner-1-1",
		"owner-2-0", "owner-2-1",
		"owner-3-0", "owner-3-1",
	}, usernames(all))

	plain, err := Collect(ctx, first.Plain())
	require.NoError(t, err)
	assert.Len(t, plain, 6)

	hits.Store(0)
	seen := 0
	err = WalkBound(ctx, first, func(o *Owner) error {
		seen++
		if seen == 3 {
			return ErrStopWalk
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, seen)
	assert.Equal(t, int32(1), hits.Load())
}

func TestPageLinkToOtherHostDropsToken(t *testing.T) {
	var foreignAuth atomic.Value
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignAuth.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"count":       2,
			"next":        nil,
			"previous":    nil,
			"results":     []map[string]any{{"service": "github", "username": "elsewhere"}},
			"total_pages": 2,
		})
	}))
	defer foreign.Close()

	client, _ := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"count":       2,
			"next":        foreign.URL + "/api/v2/github/?page=2",
			"previous":    nil,
			"results":     []map[string]any{{"service": "github", "username": "home"}},
			"total_pages": 2,
		})
	})
	ctx := context.Background()

	first, err := client.ServiceOwners(ctx, schema.ServiceGitHub, nil)
	require.NoError(t, err)

	second, err := first.NextPage(ctx)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, []string{"elsewhere"}, usernames(second.Results))
	assert.Equal(t, "", foreignAuth.Load())

	back, err := second.PreviousPage(ctx)
	require.NoError(t, err)
	assert.Nil(t, back)
}
