package server

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/rybkr/branchvista/internal/github"
	"github.com/rybkr/branchvista/internal/timeline"
)

// Snapshot is one complete analysis pass over the repository: raw data,
// derived layout, and summary statistics. A fresh snapshot replaces the old
// one atomically; nothing is mutated in place.
type Snapshot struct {
	ID         string            `json:"id"`
	FetchedAt  time.Time         `json:"fetchedAt"`
	Repository *github.Repo      `json:"repository"`
	Commits    []timeline.Commit `json:"commits"`
	Branches   []timeline.Branch `json:"branches"`
	Layout     timeline.Layout   `json:"layout"`
	Stats      timeline.Stats    `json:"stats"`
}

func (s *Server) buildSnapshot(ctx context.Context) (*Snapshot, error) {
	repo, err := s.fetcher.Repository(ctx, s.owner, s.repo)
	if err != nil {
		return nil, err
	}
	commits, err := s.fetcher.Commits(ctx, s.owner, s.repo, s.commitLimit())
	if err != nil {
		return nil, err
	}
	branches, err := s.fetcher.Branches(ctx, s.owner, s.repo)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:         uuid.NewString(),
		FetchedAt:  time.Now().UTC(),
		Repository: repo,
		Commits:    commits,
		Branches:   branches,
		Layout:     timeline.Analyze(commits, branches),
		Stats:      timeline.ComputeStats(commits),
	}, nil
}

// snapshotChanged reports whether the fresh snapshot's content differs from
// the cached one. ID and FetchedAt always differ and are ignored.
func snapshotChanged(old, fresh *Snapshot) bool {
	if old == nil {
		return true
	}
	return !jsonEqual(old.Repository, fresh.Repository) ||
		!jsonEqual(old.Layout, fresh.Layout) ||
		!jsonEqual(old.Stats, fresh.Stats)
}

// jsonEqual compares via the marshaled form, which is deterministic for our
// data types (struct fields in order, map keys sorted).
func jsonEqual(a, b interface{}) bool {
	aJSON, errA := json.Marshal(a)
	bJSON, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(aJSON, bJSON)
}
