package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".branchvista.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCommitLimit, cfg.CommitLimit)
	assert.Equal(t, DefaultRefreshSeconds, cfg.RefreshSeconds)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.CacheTTLSeconds)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
port: 9090
repo_url: https://github.com/acme/widgets
commit_limit: 250
refresh_seconds: 30
cache_ttl_seconds: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://github.com/acme/widgets", cfg.RepoURL)
	assert.Equal(t, 250, cfg.CommitLimit)
	assert.Equal(t, 30*time.Second, cfg.RefreshPeriod())
	assert.Equal(t, 10*time.Second, cfg.CacheTTL())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "port: 9090\ntoken: from-file\n")
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a port\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateCommitLimitBounds(t *testing.T) {
	for _, limit := range []int{MinCommitLimit - 1, MaxCommitLimit + 1} {
		cfg := &Config{
			Port:            DefaultPort,
			CommitLimit:     limit,
			RefreshSeconds:  DefaultRefreshSeconds,
			CacheTTLSeconds: DefaultCacheTTLSeconds,
		}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "limit %d", limit)
	}
}

func TestValidatePortRange(t *testing.T) {
	cfg := &Config{
		Port:            -1,
		CommitLimit:     DefaultCommitLimit,
		RefreshSeconds:  DefaultRefreshSeconds,
		CacheTTLSeconds: DefaultCacheTTLSeconds,
	}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestWatchReload(t *testing.T) {
	path := writeConfig(t, "commit_limit: 100\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 1)
	require.NoError(t, Watch(ctx, path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}))

	// Rewrite the file and wait for the debounced reload.
	require.NoError(t, os.WriteFile(path, []byte("commit_limit: 200\n"), 0o600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 200, cfg.CommitLimit)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

func TestWatchIgnoresInvalidReload(t *testing.T) {
	path := writeConfig(t, "commit_limit: 100\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 1)
	require.NoError(t, Watch(ctx, path, func(cfg *Config) {
		reloaded <- cfg
	}))

	// commit_limit of 1 fails validation; the callback must not fire.
	require.NoError(t, os.WriteFile(path, []byte("commit_limit: 1\n"), 0o600))

	select {
	case cfg := <-reloaded:
		t.Fatalf("unexpected reload with invalid config: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}
