package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/rybkr/branchvista/internal/config"
	"github.com/rybkr/branchvista/internal/github"
	"github.com/rybkr/branchvista/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default ~/.branchvista.yaml)")
	repoURL := flag.String("repo", "", "GitHub repository URL (https://github.com/owner/repo)")
	port := flag.Int("port", 0, "Port to serve on")
	limit := flag.Int("limit", 0, "Number of commits to fetch (10-500)")
	promptToken := flag.Bool("prompt-token", false, "Prompt for a GitHub token instead of using config or GITHUB_TOKEN")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	if *repoURL != "" {
		cfg.RepoURL = *repoURL
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *limit != 0 {
		cfg.CommitLimit = *limit
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	if *promptToken {
		token, err := readToken()
		if err != nil {
			log.Fatal("reading token", "err", err)
		}
		cfg.Token = token
	}

	owner, repo, err := github.ParseRepoURL(cfg.RepoURL)
	if err != nil {
		log.Fatal("invalid repository URL", "err", err)
	}

	client := github.NewClient(github.Config{Token: cfg.Token}, nil)
	fetcher := github.NewCachingClient(client, cfg.CacheTTL())

	srv := server.New(fetcher, cfg, owner, repo)

	watchPath := *configPath
	if watchPath == "" {
		if watchPath, err = config.DefaultPath(); err != nil {
			log.Fatal("resolving config path", "err", err)
		}
	}
	if err := config.Watch(context.Background(), watchPath, srv.ApplyConfig); err != nil {
		log.Warn("config hot-reload unavailable", "err", err)
	}

	log.Info("branchvista running",
		"url", fmt.Sprintf("http://localhost:%d", cfg.Port),
		"repo", owner+"/"+repo,
		"limit", cfg.CommitLimit)
	if err := srv.Start(); err != nil {
		log.Fatal("server failed", "err", err)
	}
}

// readToken prompts on the terminal without echoing the input.
func readToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "GitHub token (input hidden): ")
	token, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(token)), nil
}
