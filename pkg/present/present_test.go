package present

import (
	"testing"

	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/event"
)

type at struct {
	name    string
	minutes int
}

func scheduled(entries ...at) []event.Parsed {
	out := make([]event.Parsed, 0, len(entries))
	for _, e := range entries {
		ev := event.New(e.name, "", "Main")
		out = append(out, event.Parsed{Event: ev, Minutes: e.minutes})
	}
	return out
}

func TestBuildRows(t *testing.T) {
	groups := conflict.Groups(scheduled(
		at{"Opening", 60},
		at{"Alpha", 100},
		at{"Beta", 105},
		at{"Gamma", 110},
		at{"Closing", 300},
	), 10)

	rows := BuildRows(groups)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0].IsConflict || rows[0].GroupSize != 0 || rows[0].Color != "" {
		t.Fatalf("expected plain first row, got %+v", rows[0])
	}
	if !rows[1].IsConflict || rows[1].GroupSize != 3 || rows[1].Color != conflict.Blue {
		t.Fatalf("expected group head with size 3, got %+v", rows[1])
	}
	for _, r := range rows[2:4] {
		if !r.IsConflict || r.GroupSize != 0 || r.Color != conflict.Blue {
			t.Fatalf("expected group member row, got %+v", r)
		}
	}
	if rows[4].Event.Name != "Closing" || rows[4].IsConflict {
		t.Fatalf("expected plain closing row, got %+v", rows[4])
	}
}

func TestBuildRowsEmpty(t *testing.T) {
	if rows := BuildRows(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestBuildPrintDocument(t *testing.T) {
	groups := conflict.Groups(scheduled(
		at{"Alpha", 100},
		at{"Beta", 104},
		at{"Closing", 300},
	), 15)

	doc := BuildPrintDocument(groups, "Your schedule for Friday")
	if doc.Header != "Your schedule for Friday" {
		t.Fatalf("unexpected header %q", doc.Header)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(doc.Entries))
	}
	block := doc.Entries[0]
	if !block.Conflict || block.Color != conflict.Blue || len(block.Cards) != 2 {
		t.Fatalf("unexpected conflict block %+v", block)
	}
	if block.Cards[0].Badge != 1 || block.Cards[1].Badge != 2 {
		t.Fatalf("expected badges 1 and 2, got %d and %d", block.Cards[0].Badge, block.Cards[1].Badge)
	}
	if block.Start != "1:40" || block.Span != 4 {
		t.Fatalf("expected window 1:40 spanning 4 minutes, got %q %d", block.Start, block.Span)
	}
	plain := doc.Entries[1]
	if plain.Conflict || len(plain.Cards) != 1 || plain.Cards[0].Badge != 0 {
		t.Fatalf("unexpected plain entry %+v", plain)
	}
	if doc.Conflicts() != 1 {
		t.Fatalf("expected 1 conflict block, got %d", doc.Conflicts())
	}
}
