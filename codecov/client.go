package codecov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/s0up4200/codecovctl/schema"
)

// DefaultBaseURL is the public Codecov API host.
const DefaultBaseURL = "https://api.codecov.io"

const apiPrefix = "/api/v2"

// Client represents a Codecov API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	host       string
	authorized bool
	userAgent  string
	httpClient *http.Client
	// anonClient shares the pool but never carries the token; used for
	// links that leave the API host.
	anonClient *http.Client
	transport  http.RoundTripper
	logger     zerolog.Logger

	Users    *UsersService
	Repos    *ReposService
	Branches *BranchesService
	Commits  *CommitsService
	Pulls    *PullsService
	Compare  *CompareService
	Coverage *CoverageService
}

type service struct {
	client *Client
}

// NewClient creates a new Codecov client. An empty token yields an
// anonymous client that can only read public data.
func NewClient(token string, opts ...Option) (*Client, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	baseURL := strings.TrimRight(options.baseURL, "/")
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", ErrInvalidConfig, options.baseURL)
	}
	if options.timeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}

	httpClient := &http.Client{Timeout: options.timeout}
	if options.httpClient != nil {
		copied := *options.httpClient
		httpClient = &copied
		if httpClient.Timeout == 0 {
			httpClient.Timeout = options.timeout
		}
	}

	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}
	httpClient.Transport = base
	anonClient := httpClient
	if token != "" {
		copied := *httpClient
		anonClient = &copied
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		}
	}

	c := &Client{
		baseURL:    baseURL,
		host:       parsed.Host,
		authorized: token != "",
		userAgent:  options.userAgent,
		httpClient: httpClient,
		anonClient: anonClient,
		transport:  base,
		logger:     options.logger,
	}

	svc := service{client: c}
	c.Users = (*UsersService)(&svc)
	c.Repos = (*ReposService)(&svc)
	c.Branches = (*BranchesService)(&svc)
	c.Commits = (*CommitsService)(&svc)
	c.Pulls = (*PullsService)(&svc)
	c.Compare = (*CompareService)(&svc)
	c.Coverage = (*CoverageService)(&svc)

	return c, nil
}

// BaseURL returns the API host the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle pooled connections. The client stays usable.
func (c *Client) Close() {
	type closeIdler interface {
		CloseIdleConnections()
	}
	if t, ok := c.transport.(closeIdler); ok {
		t.CloseIdleConnections()
	}
}

// ServiceOwners lists the owners of a Git hosting service.
func (c *Client) ServiceOwners(ctx context.Context, svc schema.Service, opts *ListOptions) (*BoundPage[schema.Owner, *Owner], error) {
	return c.Users.ServiceOwners(ctx, svc, opts)
}

// doRequest performs a GET on an API path with the encoded query options.
func (c *Client) doRequest(ctx context.Context, endpoint string, opts any) ([]byte, error) {
	u := c.baseURL + apiPrefix + endpoint
	if opts != nil {
		params, err := query.Values(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query: %w", err)
		}
		if len(params) > 0 {
			u += "?" + params.Encode()
		}
	}
	return c.getURL(ctx, u)
}

// getURL performs a GET on an absolute URL, such as a pagination link.
func (c *Client) getURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	httpClient, authorized := c.httpClient, c.authorized
	if !strings.EqualFold(req.URL.Host, c.host) {
		httpClient, authorized = c.anonClient, false
		if c.authorized {
			c.logger.Warn().Str("url", rawURL).Msg("Link points outside the API host, sending it without the token")
		}
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Bool("authorized", authorized).
		Dur("duration", time.Since(start)).
		Msg("Codecov API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}
	var content any
	if err := json.Unmarshal(body, &content); err == nil {
		apiErr.Content = content
	} else if len(body) > 0 {
		apiErr.Content = string(body)
	}
	return apiErr
}

func get[T any](ctx context.Context, c *Client, endpoint string, opts any, parse func([]byte) (T, error)) (T, error) {
	var zero T
	body, err := c.doRequest(ctx, endpoint, opts)
	if err != nil {
		return zero, err
	}
	v, err := parse(body)
	if err != nil {
		return zero, fmt.Errorf("failed to parse response: %w", err)
	}
	return v, nil
}

func getPage[T any](ctx context.Context, c *Client, endpoint string, opts any, parse func([]byte) (T, error)) (*Page[T], error) {
	body, err := c.doRequest(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}
	return newPage(c, body, schema.DecoderFunc[T](parse))
}

// apiPath joins escaped path segments into an endpoint ending in a slash.
func apiPath(segments ...string) string {
	return joinSegments(segments) + "/"
}

func joinSegments(segments []string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// filePath escapes each element of a slash separated path while keeping the slashes.
func filePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
