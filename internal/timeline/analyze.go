package timeline

// Analyze runs the full pipeline over one fetched window: branch colors,
// first-parent membership, lane allocation, and the final drawable layout.
// Empty inputs produce an empty layout, not an error.
func Analyze(commits []Commit, branches []Branch) Layout {
	colors := AssignColors(branches)
	membership, dates, _ := Resolve(commits, branches)

	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	lanes := AllocateLanes(names)

	return BuildLayout(commits, membership, dates, colors, lanes)
}
