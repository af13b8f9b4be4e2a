package timeline

import "strings"

// DetachedBranch labels commits unreachable from any branch tip.
const DetachedBranch = "(detached)"

// DetachedColor is the neutral gray used for detached commit markers.
const DetachedColor = "#95A5A6"

// branchKeyword pairs a branch-naming convention with its display color.
// The first keyword contained in a branch name wins, so order matters.
type branchKeyword struct {
	keyword string
	color   string
}

var branchKeywords = []branchKeyword{
	{"main", "#2ECC71"},
	{"master", "#2ECC71"},
	{"develop", "#3498DB"},
	{"release", "#E74C3C"},
	{"feature", "#9B59B6"},
	{"hotfix", "#E67E22"},
	{"bugfix", "#F1C40F"},
}

// defaultPalette colors branches that match no keyword. It rotates with
// wraparound, so color reuse is expected past ten unmatched branches.
var defaultPalette = []string{
	"#1ABC9C", "#16A085", "#27AE60", "#2980B9", "#8E44AD",
	"#2C3E50", "#F39C12", "#D35400", "#C0392B", "#BDC3C7",
}

// AssignColors maps every branch name to a hex color. Names containing a
// known keyword (case-insensitive) take that keyword's color; the rest draw
// from the default palette in order. Keyword matches do not consume palette
// slots.
func AssignColors(branches []Branch) map[string]string {
	colors := make(map[string]string, len(branches))
	used := 0

	for _, branch := range branches {
		lower := strings.ToLower(branch.Name)

		assigned := false
		for _, bk := range branchKeywords {
			if strings.Contains(lower, bk.keyword) {
				colors[branch.Name] = bk.color
				assigned = true
				break
			}
		}
		if !assigned {
			colors[branch.Name] = defaultPalette[used%len(defaultPalette)]
			used++
		}
	}

	return colors
}
