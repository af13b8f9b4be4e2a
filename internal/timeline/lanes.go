package timeline

// AllocateLanes assigns each distinct branch name a unique vertical lane,
// numbered 0, 1, 2, … in first-encounter order. Duplicate names keep their
// first lane.
func AllocateLanes(names []string) map[string]int {
	lanes := make(map[string]int, len(names))
	for _, name := range names {
		if _, ok := lanes[name]; ok {
			continue
		}
		lanes[name] = len(lanes)
	}
	return lanes
}
