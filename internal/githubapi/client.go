// Package githubapi provides the issue tracker client built on go-github.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client creates issues in repositories owned by a single account.
type Client struct {
	logger *slog.Logger
	gh     *github.Client
	owner  string
}

// Option customizes a Client.
type Option func(*Client) error

// WithBaseURL points the client at a different API root, e.g. GitHub
// Enterprise or a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse github base url: %w", err)
		}
		c.gh.BaseURL = u
		return nil
	}
}

// NewClient constructs a Client authenticated with token for repositories of owner.
func NewClient(logger *slog.Logger, token, owner string, opts ...Option) (*Client, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("repository owner is empty")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("github token is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	c := &Client{
		logger: logger,
		gh:     github.NewClient(httpClient),
		owner:  owner,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Owner returns the account owning the target repositories.
func (c *Client) Owner() string {
	return c.owner
}

// CreateIssue opens an issue in repo and returns its web URL. A retried call
// creates a duplicate issue.
func (c *Client) CreateIssue(ctx context.Context, req IssueRequest) (*Issue, error) {
	if strings.TrimSpace(req.Repo) == "" {
		return nil, &TrackerError{Owner: c.owner, Err: fmt.Errorf("repository is empty")}
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, &TrackerError{Owner: c.owner, Repo: req.Repo, Err: fmt.Errorf("issue title is empty")}
	}

	labels := append([]string(nil), req.Labels...)
	in := &github.IssueRequest{
		Title:  github.String(req.Title),
		Body:   github.String(req.Body),
		Labels: &labels,
	}

	c.logger.Debug("creating github issue", "owner", c.owner, "repo", req.Repo, "labels", labels)

	created, resp, err := c.gh.Issues.Create(ctx, c.owner, req.Repo, in)
	if err != nil {
		terr := &TrackerError{Owner: c.owner, Repo: req.Repo, Err: err}
		if resp != nil {
			terr.StatusCode = resp.StatusCode
		}
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			terr.StatusCode = http.StatusForbidden
			terr.RateLimited = true
		}
		return nil, terr
	}

	out := &Issue{
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
		Title:  created.GetTitle(),
	}
	c.logger.Info("github issue created", "repo", req.Repo, "number", out.Number, "issue_url", out.URL)
	return out, nil
}
