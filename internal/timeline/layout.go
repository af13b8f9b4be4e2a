package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// messagePreviewLen caps the commit message shown in marker hover text.
const messagePreviewLen = 50

// BuildLayout turns resolved branch memberships into drawing primitives: one
// date-ordered polyline per branch that owns at least one commit, and one
// marker per commit-branch pair. A multi-branch commit keeps one marker per
// owning branch but all of them are tinted with the first-listed branch's
// color. Commits with no owning branch are routed to the "(detached)"
// sentinel, whose lane is allocated lazily on first use.
//
// Every sha in membership is guaranteed a date by Resolve; a commit missing
// from the date index is a contract violation and panics.
func BuildLayout(commits []Commit, membership Membership, dates map[string]time.Time, colors map[string]string, lanes map[string]int) Layout {
	layout := Layout{LaneNames: make(map[int]string, len(lanes))}

	// Emit polylines in lane order so the output is deterministic.
	ordered := make([]string, 0, len(lanes))
	for name := range lanes {
		ordered = append(ordered, name)
	}
	sort.Slice(ordered, func(i, j int) bool { return lanes[ordered[i]] < lanes[ordered[j]] })

	for _, name := range ordered {
		layout.LaneNames[lanes[name]] = name

		points := branchPoints(name, lanes[name], membership, dates)
		if len(points) == 0 {
			continue
		}
		layout.Polylines = append(layout.Polylines, Polyline{
			Branch: name,
			Color:  colors[name],
			Points: points,
		})
	}

	detachedLane := -1
	for _, c := range commits {
		date, ok := dates[c.SHA]
		if !ok {
			panic(fmt.Sprintf("timeline: commit %s has no date index entry", c.SHA))
		}

		owners := membership[c.SHA]
		color := DetachedColor
		if len(owners) > 0 {
			color = colors[owners[0]]
		} else {
			owners = []string{DetachedBranch}
		}

		label := hoverLabel(c, owners, date)
		for _, owner := range owners {
			lane, ok := lanes[owner]
			if !ok {
				if detachedLane < 0 {
					detachedLane = len(lanes)
					layout.LaneNames[detachedLane] = DetachedBranch
				}
				lane = detachedLane
			}
			layout.Markers = append(layout.Markers, Marker{
				SHA:   shortSHA(c.SHA),
				Date:  date,
				Lane:  lane,
				Color: color,
				Label: label,
			})
		}
	}

	return layout
}

func branchPoints(name string, lane int, membership Membership, dates map[string]time.Time) []Point {
	var points []Point
	for sha, owners := range membership {
		for _, owner := range owners {
			if owner == name {
				points = append(points, Point{Date: dates[sha], Lane: lane})
				break
			}
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

func hoverLabel(c Commit, owners []string, date time.Time) string {
	msg := []rune(c.Message)
	if len(msg) > messagePreviewLen {
		msg = msg[:messagePreviewLen]
	}
	return fmt.Sprintf("Commit: %s<br>Branch: %s<br>Author: %s<br>Date: %s<br>Message: %s...",
		shortSHA(c.SHA),
		strings.Join(owners, ", "),
		c.Author,
		date.Format("2006-01-02 15:04:05"),
		string(msg))
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
