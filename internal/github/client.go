package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
)

// Star is one starred repository as returned by the starring API.
type Star struct {
	Name        string
	HTMLURL     string
	Description string
	StarredAt   time.Time
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	PerPage int
	Timeout time.Duration
}

// Client fetches starred repositories one page at a time.
type Client struct {
	gh      *gh.Client
	perPage int
}

// NewClient builds a client against opts.BaseURL, or the public API when empty.
func NewClient(opts Options) (*Client, error) {
	httpClient := &http.Client{Timeout: opts.Timeout}
	c := gh.NewClient(httpClient)
	if opts.Token != "" {
		c = c.WithAuthToken(opts.Token)
	}

	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		c.BaseURL = u
	}

	perPage := opts.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}

	return &Client{gh: c, perPage: perPage}, nil
}

// StarredPage fetches one page of username's stars. next is the page named
// by the response's rel="next" link, or 0 on the last page.
func (c *Client) StarredPage(ctx context.Context, username string, page int) (stars []Star, next int, err error) {
	opts := &gh.ActivityListStarredOptions{
		ListOptions: gh.ListOptions{Page: page, PerPage: c.perPage},
	}
	// A non-empty user selects /users/{user}/starred; the library asks for
	// the star+json media type so starred_at is populated.
	repos, resp, err := c.gh.Activity.ListStarred(ctx, username, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list starred page %d: %w", page, err)
	}

	stars = make([]Star, 0, len(repos))
	for _, r := range repos {
		repo := r.GetRepository()
		stars = append(stars, Star{
			Name:        repo.GetName(),
			HTMLURL:     repo.GetHTMLURL(),
			Description: repo.GetDescription(),
			StarredAt:   r.GetStarredAt().Time.UTC(),
		})
	}
	return stars, resp.NextPage, nil
}
