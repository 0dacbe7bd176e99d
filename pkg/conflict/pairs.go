package conflict

import "tableflip.dev/lineup/pkg/event"

// Pair is two events whose start times are within the timeout of each other.
type Pair struct {
	First  event.Parsed `json:"first"`
	Second event.Parsed `json:"second"`
	Diff   int          `json:"diff"`
}

// Pairs reports every pair of events at most timeout minutes apart. This is
// a coarser relation than group membership: two events on either side of a
// group boundary can still form a pair. Use Groups for layout.
func Pairs(events []event.Parsed, timeout int) []Pair {
	sorted := Sorted(events)
	pairs := make([]Pair, 0)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			diff := sorted[j].Minutes - sorted[i].Minutes
			if diff < 0 {
				diff = -diff
			}
			if diff > timeout {
				// sorted ascending, nothing further can be closer
				break
			}
			pairs = append(pairs, Pair{First: sorted[i], Second: sorted[j], Diff: diff})
		}
	}
	return pairs
}

// Any reports whether at least two events are within timeout of each other.
func Any(events []event.Parsed, timeout int) bool {
	sorted := Sorted(events)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Minutes-sorted[i-1].Minutes <= timeout {
			return true
		}
	}
	return false
}
