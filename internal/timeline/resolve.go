package timeline

import "time"

// Resolve walks each branch's first-parent chain from its tip and labels
// every reachable commit with the branch name. It also builds the sha→date
// and sha→parents indices over the supplied commit window.
//
// A tip (or ancestor) missing from the commit window simply ends that walk;
// it is the expected consequence of a truncated fetch, not an error. Merge
// commits are followed through their first parent only, so commits reachable
// solely through a merge's later parents are not attributed here. A visited
// set per walk guards against malformed parent cycles.
func Resolve(commits []Commit, branches []Branch) (Membership, map[string]time.Time, map[string][]string) {
	parents := make(map[string][]string, len(commits))
	dates := make(map[string]time.Time, len(commits))
	for _, c := range commits {
		parents[c.SHA] = c.Parents
		dates[c.SHA] = c.Date
	}

	membership := make(Membership)
	for _, branch := range branches {
		visited := make(map[string]bool)
		current := branch.Tip
		for {
			chain, ok := parents[current]
			if !ok {
				break // outside the fetched window
			}
			if visited[current] {
				break // malformed history, refuse to loop
			}
			visited[current] = true

			membership[current] = append(membership[current], branch.Name)
			if len(chain) == 0 {
				break // root commit
			}
			current = chain[0]
		}
	}

	return membership, dates, parents
}
