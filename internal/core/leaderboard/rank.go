package leaderboard

import (
	"cmp"
	"slices"
)

// Compare orders a before b for metric m: non-quoting posts first, then m descending, then the
// other metric descending. Equal posts compare 0 so a stable sort keeps feed order
func Compare(a, b Post, m Metric) int {
	if a.Quoting != b.Quoting {
		if a.Quoting {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(m.Count(b), m.Count(a)); c != 0 {
		return c
	}
	o := m.Other()
	return cmp.Compare(o.Count(b), o.Count(a))
}

// Rank sorts a copy of posts by m and keeps the eligible entries among the first top.
// Entries with a zero count or quoting another post are skipped, not replaced
func Rank(posts []Post, m Metric, top int) []Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b Post) int { return Compare(a, b, m) })

	n := max(min(top, len(sorted)), 0)
	out := make([]Post, 0, n)
	for _, p := range sorted[:n] {
		if p.Quoting || m.Count(p) == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}
