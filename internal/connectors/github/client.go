package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/qalint/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// maxInlineSize is the largest file the contents API returns inline.
const maxInlineSize = 1024 * 1024

// markdownExtensions are the files picked up when a directory is expanded.
var markdownExtensions = map[string]bool{".md": true, ".markdown": true, ".mdx": true}

// Client wraps the go-github client with rate limiting and error mapping.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client. An empty token makes anonymous requests.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{
			gh:          gh.NewClient(&http.Client{Timeout: DefaultTimeout}),
			rateLimiter: NewRateLimiter(false),
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(tc),
		rateLimiter: NewRateLimiter(true),
	}
}

// NewClientWithHTTPClient creates a client against a custom API base URL,
// such as GitHub Enterprise or a test server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	c := gh.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		c.BaseURL = u
	}
	return &Client{gh: c, rateLimiter: NewRateLimiter(true)}, nil
}

// GetFile returns the content of the file r points at.
func (c *Client) GetFile(ctx context.Context, r Ref) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: r.Ref}
	file, dir, resp, err := c.gh.Repositories.GetContents(ctx, r.Owner, r.Repo, r.Path, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get contents")
	}
	if file == nil || dir != nil || file.GetType() != "file" {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, r)
	}

	if file.GetEncoding() == "none" || file.GetSize() > maxInlineSize {
		logger.Debug("%s is %d bytes, downloading", r, file.GetSize())
		return c.download(ctx, r)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return []byte(content), nil
}

// download fetches a file too large for the contents API.
func (c *Client) download(ctx context.Context, r Ref) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: r.Ref}
	rc, resp, err := c.gh.Repositories.DownloadContents(ctx, r.Owner, r.Repo, r.Path, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "download contents")
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read contents: %w", err)
	}
	return content, nil
}

// ListDocuments returns every Markdown file at or below r.Path.
func (c *Client) ListDocuments(ctx context.Context, r Ref) ([]Ref, error) {
	sha := r.Ref
	if sha == "" {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
		repo, resp, err := c.gh.Repositories.Get(ctx, r.Owner, r.Repo)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return nil, c.wrapError(err, "get repo")
		}
		sha = repo.GetDefaultBranch()
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	tree, resp, err := c.gh.Git.GetTree(ctx, r.Owner, r.Repo, sha, true)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get tree")
	}
	if tree.GetTruncated() {
		logger.Warn("tree of %s/%s is truncated, some documents are skipped", r.Owner, r.Repo)
	}

	var refs []Ref
	for _, entry := range tree.Entries {
		p := entry.GetPath()
		if entry.GetType() != "blob" || !under(p, r.Path) {
			continue
		}
		if !markdownExtensions[strings.ToLower(path.Ext(p))] {
			continue
		}
		refs = append(refs, r.withPath(p))
	}
	return refs, nil
}

// under reports whether p is dir or inside it.
func under(p, dir string) bool {
	return dir == "" || p == dir || strings.HasPrefix(p, dir+"/")
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RateLimitError{
			ResetAt:   time.Now().Add(abuseErr.GetRetryAfter()),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
