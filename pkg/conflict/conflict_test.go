package conflict

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"tableflip.dev/lineup/pkg/event"
)

func parsedAt(minutes ...int) []event.Parsed {
	out := make([]event.Parsed, 0, len(minutes))
	for i, m := range minutes {
		e := event.New(fmt.Sprintf("Act %d", i), fmt.Sprintf("%d:%02d", m/60, m%60), "Main")
		out = append(out, event.Parsed{Event: e, Minutes: m})
	}
	return out
}

func groupMinutes(groups []Group) [][]int {
	out := make([][]int, 0, len(groups))
	for _, g := range groups {
		ms := make([]int, 0, len(g.Events))
		for _, e := range g.Events {
			ms = append(ms, e.Minutes)
		}
		out = append(out, ms)
	}
	return out
}

func TestGroupsPairAndSingleton(t *testing.T) {
	groups := Groups(parsedAt(100, 105, 200), 10)
	want := [][]int{{100, 105}, {200}}
	if got := groupMinutes(groups); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !groups[0].HasConflict || groups[0].Color != Blue {
		t.Fatalf("expected first group to be a blue conflict, got %+v", groups[0])
	}
	if groups[1].HasConflict || groups[1].Color != "" {
		t.Fatalf("expected singleton without color, got %+v", groups[1])
	}
}

func TestGroupsStartAnchored(t *testing.T) {
	groups := Groups(parsedAt(100, 108, 120), 10)
	want := [][]int{{100, 108}, {120}}
	if got := groupMinutes(groups); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGroupsChainAnchored(t *testing.T) {
	groups := Groups(parsedAt(100, 108, 116, 140), 10, WithMode(ChainAnchored))
	want := [][]int{{100, 108, 116}, {140}}
	if got := groupMinutes(groups); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	start := Groups(parsedAt(100, 108, 116, 140), 10)
	wantStart := [][]int{{100, 108}, {116}, {140}}
	if got := groupMinutes(start); !reflect.DeepEqual(got, wantStart) {
		t.Fatalf("expected %v, got %v", wantStart, got)
	}
}

func TestGroupsSortsAndKeepsTieOrder(t *testing.T) {
	events := parsedAt(300, 100, 100, 50)
	groups := Groups(events, 0)
	want := [][]int{{50}, {100, 100}, {300}}
	if got := groupMinutes(groups); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	tie := groups[1].Events
	if tie[0].Name != "Act 1" || tie[1].Name != "Act 2" {
		t.Fatalf("expected stable tie order Act 1, Act 2; got %s, %s", tie[0].Name, tie[1].Name)
	}
	if events[0].Minutes != 300 {
		t.Fatalf("input slice was reordered")
	}
}

func TestGroupsEmpty(t *testing.T) {
	if groups := Groups(nil, 15); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGroupsColorCycle(t *testing.T) {
	minutes := make([]int, 0)
	for i := 0; i < 8; i++ {
		base := i * 100
		minutes = append(minutes, base, base+1)
	}
	groups := Groups(parsedAt(minutes...), 5)
	if len(groups) != 8 {
		t.Fatalf("expected 8 groups, got %d", len(groups))
	}
	for i, g := range groups {
		want := Palette[i%6]
		if g.Color != want {
			t.Fatalf("group %d: expected %s, got %s", i, want, g.Color)
		}
	}
	if groups[6].Color != groups[0].Color {
		t.Fatalf("expected 7th conflicting group to reuse the first color")
	}
}

func TestGroupsColorsSkipSingletons(t *testing.T) {
	groups := Groups(parsedAt(0, 100, 101, 200, 300, 301), 5)
	var colors []Color
	for _, g := range groups {
		colors = append(colors, g.Color)
	}
	want := []Color{"", Blue, "", Purple}
	if !reflect.DeepEqual(colors, want) {
		t.Fatalf("expected %v, got %v", want, colors)
	}
	if Conflicting(groups) != 2 {
		t.Fatalf("expected 2 conflicting groups")
	}
}

// randomEvents builds a reproducible event set with plenty of near collisions.
func randomEvents(r *rand.Rand, n int) []event.Parsed {
	minutes := make([]int, n)
	for i := range minutes {
		minutes[i] = r.Intn(24 * 60)
		if i > 0 && r.Intn(3) == 0 {
			minutes[i] = minutes[i-1] + r.Intn(20)
		}
	}
	return parsedAt(minutes...)
}

func TestGroupsProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		events := randomEvents(r, r.Intn(40))
		timeout := []int{5, 10, 15, 20, 25, 30}[r.Intn(6)]
		groups := Groups(events, timeout)

		// Partition: every input event appears exactly once.
		seen := make(map[string]int)
		for _, e := range Flatten(groups) {
			seen[e.ID]++
		}
		if len(Flatten(groups)) != len(events) {
			t.Fatalf("round %d: expected %d events, got %d", round, len(events), len(Flatten(groups)))
		}
		for _, e := range events {
			if seen[e.ID] != 1 {
				t.Fatalf("round %d: event %s seen %d times", round, e.ID, seen[e.ID])
			}
		}

		prevStart := -1
		conflictIndex := 0
		for gi, g := range groups {
			for i := 1; i < len(g.Events); i++ {
				if g.Events[i].Minutes < g.Events[i-1].Minutes {
					t.Fatalf("round %d: group %d not sorted", round, gi)
				}
			}
			for _, e := range g.Events {
				if e.Minutes-g.Start > timeout {
					t.Fatalf("round %d: event %d outside window of group starting %d", round, e.Minutes, g.Start)
				}
			}
			if g.Len() == 1 && (g.HasConflict || g.Color != "") {
				t.Fatalf("round %d: singleton marked as conflict: %+v", round, g)
			}
			if g.Len() > 1 {
				if !g.HasConflict || g.Color != ColorAt(conflictIndex) {
					t.Fatalf("round %d: group %d expected color %s, got %+v", round, gi, ColorAt(conflictIndex), g)
				}
				conflictIndex++
			}
			if gi > 0 {
				prev := groups[gi-1]
				if g.Events[0].Minutes-prev.Start <= timeout {
					t.Fatalf("round %d: boundary at %d is within timeout of previous start %d", round, g.Events[0].Minutes, prev.Start)
				}
				if g.Start < prevStart {
					t.Fatalf("round %d: groups out of chronological order", round)
				}
			}
			prevStart = g.Start
		}

		again := Groups(events, timeout)
		if !reflect.DeepEqual(groups, again) {
			t.Fatalf("round %d: grouping is not idempotent", round)
		}
	}
}

func TestPairsCrossGroupBoundary(t *testing.T) {
	events := parsedAt(100, 108, 116)
	groups := Groups(events, 10)
	want := [][]int{{100, 108}, {116}}
	if got := groupMinutes(groups); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected groups %v, got %v", want, got)
	}

	pairs := Pairs(events, 10)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].First.Minutes != 100 || pairs[0].Second.Minutes != 108 || pairs[0].Diff != 8 {
		t.Fatalf("expected the 100/108 pair, got %+v", pairs[0])
	}
	last := pairs[1]
	if last.First.Minutes != 108 || last.Second.Minutes != 116 || last.Diff != 8 {
		t.Fatalf("expected the 108/116 pair across the boundary, got %+v", last)
	}
}

func TestPairsOutsideTimeout(t *testing.T) {
	pairs := Pairs(parsedAt(100, 108, 120), 10)
	if len(pairs) != 1 || pairs[0].Diff != 8 {
		t.Fatalf("expected only the 100/108 pair, got %+v", pairs)
	}
}

func TestPairsMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 100; round++ {
		events := randomEvents(r, r.Intn(25))
		timeout := 15
		brute := 0
		for i := 0; i < len(events); i++ {
			for j := i + 1; j < len(events); j++ {
				d := events[i].Minutes - events[j].Minutes
				if d < 0 {
					d = -d
				}
				if d <= timeout {
					brute++
				}
			}
		}
		if got := len(Pairs(events, timeout)); got != brute {
			t.Fatalf("round %d: expected %d pairs, got %d", round, brute, got)
		}
		if Any(events, timeout) != (brute > 0) {
			t.Fatalf("round %d: Any disagrees with pair count %d", round, brute)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != StartAnchored {
		t.Fatalf("expected start mode by default, got %q %v", m, err)
	}
	if m, err := ParseMode("Chain"); err != nil || m != ChainAnchored {
		t.Fatalf("expected chain mode, got %q %v", m, err)
	}
	if _, err := ParseMode("sliding"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
