package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rybkr/branchvista/internal/config"
	"github.com/rybkr/branchvista/internal/github"
	"github.com/rybkr/branchvista/internal/timeline"
)

// lanes fetches a repository once and prints the computed branch layout,
// mostly for debugging the analysis without a browser.
func main() {
	repoURL := flag.String("repo", "", "GitHub repository URL (https://github.com/owner/repo)")
	limit := flag.Int("limit", config.DefaultCommitLimit, "Number of commits to fetch (10-500)")
	asJSON := flag.Bool("json", false, "Print the raw layout as JSON")
	flag.Parse()

	owner, repo, err := github.ParseRepoURL(*repoURL)
	if err != nil {
		log.Fatal("invalid repository URL", "err", err)
	}

	client := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	commits, err := client.Commits(ctx, owner, repo, *limit)
	if err != nil {
		log.Fatal("fetching commits", "err", err)
	}
	branches, err := client.Branches(ctx, owner, repo)
	if err != nil {
		log.Fatal("fetching branches", "err", err)
	}

	layout := timeline.Analyze(commits, branches)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(layout); err != nil {
			log.Fatal("encoding layout", "err", err)
		}
		return
	}

	printLayout(layout, commits)
}

func printLayout(layout timeline.Layout, commits []timeline.Commit) {
	stats := timeline.ComputeStats(commits)
	fmt.Printf("%d commits, %d contributors, %d branches with history, %d markers\n\n",
		stats.TotalCommits, stats.UniqueAuthors, len(layout.Polylines), len(layout.Markers))

	pointsPerBranch := make(map[string]int, len(layout.Polylines))
	colorPerBranch := make(map[string]string, len(layout.Polylines))
	for _, line := range layout.Polylines {
		pointsPerBranch[line.Branch] = len(line.Points)
		colorPerBranch[line.Branch] = line.Color
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LANE\tBRANCH\tCOLOR\tCOMMITS")
	for lane := 0; lane < len(layout.LaneNames); lane++ {
		name := layout.LaneNames[lane]
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", lane, name, colorPerBranch[name], pointsPerBranch[name])
	}
	w.Flush()
}
