package timeline

import "time"

// Commit is a single commit record as returned by the data provider.
// The analysis only reads it; the caller owns the slice.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Parents []string  `json:"parents"`
}

// Branch is a branch head as returned by the data provider.
type Branch struct {
	Name      string `json:"name"`
	Tip       string `json:"commit"`
	Protected bool   `json:"protected"`
}

// Membership maps a commit sha to the branches that reach it via
// first-parent descent from their tips. The slice order reflects the order
// branches were processed, not any semantic priority.
type Membership map[string][]string

// Point is a single polyline vertex: a commit date at a branch's lane.
type Point struct {
	Date time.Time `json:"date"`
	Lane int       `json:"lane"`
}

// Polyline is the date-ordered line drawn for one branch.
type Polyline struct {
	Branch string  `json:"branch"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Marker is one commit dot. A commit that belongs to several branches
// produces one marker per owning branch, each at that branch's lane.
type Marker struct {
	SHA   string    `json:"sha"`
	Date  time.Time `json:"date"`
	Lane  int       `json:"lane"`
	Color string    `json:"color"`
	Label string    `json:"label"`
}

// Layout is the full set of drawing primitives for one analysis pass.
// LaneNames maps lane numbers back to branch names for axis tick labels.
type Layout struct {
	Polylines []Polyline     `json:"polylines"`
	Markers   []Marker       `json:"markers"`
	LaneNames map[int]string `json:"laneNames"`
}
