package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/codecovctl/codecov"
	"github.com/s0up4200/codecovctl/config"
)

// runCLI executes the root command against a config pointing at server.
func runCLI(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()

	// Flag values outlive a single Execute
	filterExpr, preset, jsonOutput = "", "", false
	serviceFlag, ownerFlag = "", ""
	reposFlags, commitsFlags = listFlags{}, listFlags{}
	compareBase, compareHead, comparePull, compareBy, compareFile = "", "", 0, "", ""
	totalsJobs, showLines = 4, false

	path := filepath.Join(t.TempDir(), "config.yaml")
	url := "https://api.codecov.io"
	if server != nil {
		url = server.URL
	}
	content := "codecov:\n  url: " + url + "\n  service: github\n  owner: kiraware\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func reposPage(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(map[string]any{
		"count":    2,
		"next":     nil,
		"previous": nil,
		"results": []map[string]any{
			{
				"name":    "pycodecov",
				"private": false,
				"author":  map[string]any{"service": "github", "username": "kiraware"},
				"branch":  "main",
				"active":  true,
				"totals":  map[string]any{"coverage": 91.5, "lines": 200},
			},
			{
				"name":    "legacy",
				"private": true,
				"author":  map[string]any{"service": "github", "username": "kiraware"},
				"branch":  "master",
				"active":  false,
				"totals":  map[string]any{"coverage": 12.0, "lines": 50},
			},
		},
		"total_pages": 1,
	})
}

func TestReposFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/github/kiraware/repos/", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		reposPage(w)
	}))
	defer server.Close()

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "no filter",
			args: []string{"repos"},
			want: []string{"pycodecov", "legacy"},
		},
		{
			name:    "expression",
			args:    []string{"repos", "--filter", "Coverage >= 80"},
			want:    []string{"pycodecov"},
			notWant: []string{"legacy"},
		},
		{
			name:    "preset",
			args:    []string{"repos", "--preset", "low"},
			want:    []string{"legacy"},
			notWant: []string{"pycodecov"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, server, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestReposInvalidFilterFailsBeforeRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		reposPage(w)
	}))
	defer server.Close()

	_, err := runCLI(t, server, "repos", "--filter", "Coverage >=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter expression")
	assert.Zero(t, calls.Load())
}

func TestReposUnknownPreset(t *testing.T) {
	_, err := runCLI(t, nil, "repos", "--preset", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestTotalsConcurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/github/kiraware/repos/api/totals/", r.URL.Path)
		coverage := map[string]float64{"aaa": 70, "bbb": 85}[r.URL.Query().Get("sha")]
		json.NewEncoder(w).Encode(map[string]any{
			"totals": map[string]any{"coverage": coverage},
			"files":  []any{},
		})
	}))
	defer server.Close()

	out, err := runCLI(t, server, "totals", "api", "aaa", "bbb", "--json")
	require.NoError(t, err)

	var got map[string]struct {
		Totals struct {
			Coverage float64 `json:"coverage"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 70.0, got["aaa"].Totals.Coverage)
	assert.Equal(t, 85.0, got["bbb"].Totals.Coverage)
}

func TestTotalsErrorStopsCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	}))
	defer server.Close()

	_, err := runCLI(t, server, "totals", "api", "missing")
	require.Error(t, err)
	assert.True(t, codecov.IsNotFound(err))
	assert.Equal(t, "not found: Not found.", describeError(err))
}

func TestCompareRequiresSides(t *testing.T) {
	_, err := runCLI(t, nil, "compare", "api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--base and --head")
}

func TestComparePull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/github/kiraware/repos/api/compare/flags", r.URL.Path)
		assert.Equal(t, "pullid=7", r.URL.RawQuery)
		json.NewEncoder(w).Encode([]map[string]any{{
			"name":               "unit",
			"base_report_totals": map[string]any{"coverage": 80},
			"head_report_totals": map[string]any{"coverage": 82.5},
			"diff_totals":        nil,
		}})
	}))
	defer server.Close()

	out, err := runCLI(t, server, "compare", "api", "--pull", "7", "--by", "flags")
	require.NoError(t, err)
	assert.Contains(t, out, "╰── unit")
	assert.Contains(t, out, "80.00% -> 82.50% (+2.50%)")
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unauthorized",
			err:  &codecov.APIError{StatusCode: http.StatusUnauthorized, Content: map[string]any{"detail": "Invalid token."}},
			want: "Invalid token. (check codecov.token or " + config.TokenEnv + ")",
		},
		{
			name: "server error",
			err:  &codecov.APIError{StatusCode: http.StatusInternalServerError, Body: []byte("boom")},
			want: "codecov API error: status 500: boom",
		},
		{
			name: "plain",
			err:  assert.AnError,
			want: assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}

func TestVersion(t *testing.T) {
	SetVersion("v1.2.3", "2026-01-01")
	defer SetVersion("dev", "unknown")

	out, err := runCLI(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "codecovctl v1.2.3 (built 2026-01-01")
}

func TestCurrentVersion(t *testing.T) {
	defer SetVersion("dev", "unknown")

	SetVersion("dev", "unknown")
	_, err := currentVersion()
	assert.Error(t, err)

	SetVersion("v1.4.0", "unknown")
	v, err := currentVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", v.String())
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := runCLI(t, nil, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.codecov.io", loaded.Codecov.URL)

	_, err = runCLI(t, nil, "config", "init", path)
	assert.Error(t, err)
}
