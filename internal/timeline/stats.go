package timeline

// Stats summarizes one fetched commit window.
type Stats struct {
	TotalCommits    int            `json:"totalCommits"`
	UniqueAuthors   int            `json:"uniqueAuthors"`
	CommitsByAuthor map[string]int `json:"commitsByAuthor"`
}

// ComputeStats counts commits per author over the supplied window.
func ComputeStats(commits []Commit) Stats {
	byAuthor := make(map[string]int)
	for _, c := range commits {
		byAuthor[c.Author]++
	}
	return Stats{
		TotalCommits:    len(commits),
		UniqueAuthors:   len(byAuthor),
		CommitsByAuthor: byAuthor,
	}
}
