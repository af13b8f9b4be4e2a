package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rybkr/branchvista/internal/timeline"
)

const (
	defaultBaseURL = "https://api.github.com"
	pageSize       = 100
)

var (
	ErrNotFound       = errors.New("repository not found")
	ErrBadCredentials = errors.New("invalid github token")
	ErrRateLimited    = errors.New("github api rate limit exceeded, add a token to raise it")
)

// HTTPClient is the part of *http.Client the GitHub client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds connection parameters for the GitHub API.
type Config struct {
	BaseURL string
	Token   string
}

// Client talks to the GitHub REST API. An empty token works for public
// repositories at a reduced rate limit.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

// NewClient creates a GitHub API client. A nil httpClient gets a default
// with a 30-second timeout.
func NewClient(cfg Config, httpClient HTTPClient) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		httpClient: httpClient,
	}
}

// Repo is the subset of repository metadata the dashboard shows. Fetching it
// also serves as the access probe: a bad URL or token fails here first.
type Repo struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	HTMLURL       string `json:"html_url"`
}

// Repository fetches repository metadata.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*Repo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	var out Repo
	if err := c.doRequest(ctx, url, &out); err != nil {
		return nil, fmt.Errorf("fetching repository %s/%s: %w", owner, repo, err)
	}
	return &out, nil
}

// Commits fetches up to limit commits, newest first, following GitHub's
// pagination.
func (c *Client) Commits(ctx context.Context, owner, repo string, limit int) ([]timeline.Commit, error) {
	commits := make([]timeline.Commit, 0, limit)

	for page := 1; len(commits) < limit; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=%d&page=%d",
			c.baseURL, owner, repo, pageSize, page)

		var batch []githubCommit
		if err := c.doRequest(ctx, url, &batch); err != nil {
			return nil, fmt.Errorf("fetching commits: %w", err)
		}
		for _, gc := range batch {
			commits = append(commits, gc.toCommit())
		}
		if len(batch) < pageSize {
			break
		}
	}

	if len(commits) > limit {
		commits = commits[:limit]
	}
	return commits, nil
}

// Branches fetches all branch heads, following GitHub's pagination.
func (c *Client) Branches(ctx context.Context, owner, repo string) ([]timeline.Branch, error) {
	var branches []timeline.Branch

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/branches?per_page=%d&page=%d",
			c.baseURL, owner, repo, pageSize, page)

		var batch []githubBranch
		if err := c.doRequest(ctx, url, &batch); err != nil {
			return nil, fmt.Errorf("fetching branches: %w", err)
		}
		for _, gb := range batch {
			branches = append(branches, timeline.Branch{
				Name:      gb.Name,
				Tip:       gb.Commit.SHA,
				Protected: gb.Protected,
			})
		}
		if len(batch) < pageSize {
			break
		}
	}

	return branches, nil
}

func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrBadCredentials
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(string(body)), "rate limit") {
			return ErrRateLimited
		}
		return fmt.Errorf("access denied (status 403): %s", strings.TrimSpace(string(body)))
	default:
		return fmt.Errorf("github api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// githubCommit mirrors the GitHub commit list payload.
type githubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Parents []struct {
		SHA string `json:"sha"`
	} `json:"parents"`
}

func (gc githubCommit) toCommit() timeline.Commit {
	parents := make([]string, 0, len(gc.Parents))
	for _, p := range gc.Parents {
		parents = append(parents, p.SHA)
	}
	return timeline.Commit{
		SHA:     gc.SHA,
		Message: gc.Commit.Message,
		Author:  gc.Commit.Author.Name,
		Date:    gc.Commit.Author.Date,
		Parents: parents,
	}
}

// githubBranch mirrors the GitHub branch list payload.
type githubBranch struct {
	Name   string `json:"name"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
	Protected bool `json:"protected"`
}
