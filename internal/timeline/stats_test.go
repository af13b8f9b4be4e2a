package timeline

import "testing"

func TestComputeStats(t *testing.T) {
	commits := []Commit{
		{SHA: "a", Author: "jane"},
		{SHA: "b", Author: "jane"},
		{SHA: "c", Author: "eve"},
	}

	stats := ComputeStats(commits)

	if stats.TotalCommits != 3 {
		t.Fatalf("expected 3 commits, got %d", stats.TotalCommits)
	}
	if stats.UniqueAuthors != 2 {
		t.Fatalf("expected 2 authors, got %d", stats.UniqueAuthors)
	}
	if stats.CommitsByAuthor["jane"] != 2 || stats.CommitsByAuthor["eve"] != 1 {
		t.Fatalf("unexpected author counts: %v", stats.CommitsByAuthor)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.TotalCommits != 0 || stats.UniqueAuthors != 0 {
		t.Fatalf("unexpected stats for empty input: %+v", stats)
	}
}
