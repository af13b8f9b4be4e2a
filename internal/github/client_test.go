package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommitPage(start, n int) []githubCommit {
	page := make([]githubCommit, n)
	for i := range page {
		gc := githubCommit{SHA: fmt.Sprintf("sha-%04d", start+i)}
		gc.Commit.Message = fmt.Sprintf("commit %d", start+i)
		gc.Commit.Author.Name = "jane"
		gc.Commit.Author.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(start+i) * time.Hour)
		if start+i > 0 {
			gc.Parents = []struct {
				SHA string `json:"sha"`
			}{{SHA: fmt.Sprintf("sha-%04d", start+i-1)}}
		}
		page[i] = gc
	}
	return page
}

func TestCommitsPagination(t *testing.T) {
	var pagesServed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/widgets/commits", r.URL.Path)
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)

		switch page {
		case "1":
			json.NewEncoder(w).Encode(testCommitPage(0, pageSize))
		case "2":
			json.NewEncoder(w).Encode(testCommitPage(pageSize, 20))
		default:
			t.Fatalf("unexpected page %s", page)
		}
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	commits, err := client.Commits(context.Background(), "acme", "widgets", 150)
	require.NoError(t, err)

	assert.Len(t, commits, 120)
	assert.Equal(t, []string{"1", "2"}, pagesServed)
	assert.Equal(t, "sha-0000", commits[0].SHA)
	assert.Equal(t, "jane", commits[0].Author)
	assert.Empty(t, commits[0].Parents)
	assert.Equal(t, []string{"sha-0000"}, commits[1].Parents)
}

func TestCommitsLimit(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(testCommitPage(0, pageSize))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	commits, err := client.Commits(context.Background(), "acme", "widgets", 5)
	require.NoError(t, err)

	assert.Len(t, commits, 5)
	assert.Equal(t, 1, requests)
}

func TestBranches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/widgets/branches", r.URL.Path)
		fmt.Fprint(w, `[
			{"name":"main","commit":{"sha":"abc"},"protected":true},
			{"name":"feature/x","commit":{"sha":"def"},"protected":false}
		]`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	branches, err := client.Branches(context.Background(), "acme", "widgets")
	require.NoError(t, err)

	require.Len(t, branches, 2)
	assert.Equal(t, "main", branches[0].Name)
	assert.Equal(t, "abc", branches[0].Tip)
	assert.True(t, branches[0].Protected)
	assert.Equal(t, "feature/x", branches[1].Name)
}

func TestRepository(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/widgets", r.URL.Path)
		fmt.Fprint(w, `{"name":"widgets","full_name":"acme/widgets","default_branch":"main"}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	repo, err := client.Repository(context.Background(), "acme", "widgets")
	require.NoError(t, err)

	assert.Equal(t, "acme/widgets", repo.FullName)
	assert.Equal(t, "main", repo.DefaultBranch)
}

func TestAuthorizationHeader(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok123"}, srv.Client())
	_, err := client.Repository(context.Background(), "acme", "widgets")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", auth)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"message":"Not Found"}`, wantErr: ErrNotFound},
		{name: "bad token", status: http.StatusUnauthorized, body: `{"message":"Bad credentials"}`, wantErr: ErrBadCredentials},
		{name: "rate limited", status: http.StatusForbidden, body: `{"message":"API rate limit exceeded"}`, wantErr: ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			client := NewClient(Config{BaseURL: srv.URL}, srv.Client())
			_, err := client.Repository(context.Background(), "acme", "widgets")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestForbiddenWithoutRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Resource not accessible"}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	_, err := client.Repository(context.Background(), "acme", "widgets")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}
