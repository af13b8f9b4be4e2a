package github

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var namePattern = regexp.MustCompile(`^[\w.-]+$`)

// ParseRepoURL extracts (owner, repo) from a GitHub repository URL such as
// https://github.com/owner/repo. Trailing slashes and extra path segments
// (e.g. /tree/main) are tolerated; non-github.com hosts are not.
func ParseRepoURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("repository URL is required")
	}
	raw = strings.TrimRight(raw, "/")

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Host != "github.com" {
		return "", "", fmt.Errorf("not a github.com URL: %q", raw)
	}

	parts := strings.FieldsFunc(parsed.Path, func(r rune) bool { return r == '/' })
	if len(parts) < 2 {
		return "", "", fmt.Errorf("URL must be in the form https://github.com/owner/repo")
	}

	owner, repo := parts[0], parts[1]
	if !namePattern.MatchString(owner) || !namePattern.MatchString(repo) {
		return "", "", fmt.Errorf("invalid repository owner or name: %s/%s", owner, repo)
	}
	return owner, repo, nil
}
