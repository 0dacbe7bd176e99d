package event

import "testing"

func TestGenerateID(t *testing.T) {
	for _, tc := range []struct {
		name, time, stage string
		want              string
	}{
		{"Okean Elzy", "21:00", "Main Stage", "Okean_Elzy_21_00_Main_Stage"},
		{"  DakhaBrakha!! ", "19:30", "Green", "DakhaBrakha_19_30_Green"},
		{"Бумбокс", "20:15", "Сцена №2", "Бумбокс_20_15_Сцена_2"},
		{"--", "", "", ""},
		{"A & B", "1:05", "", "A_B_1_05"},
	} {
		if got := GenerateID(tc.name, tc.time, tc.stage); got != tc.want {
			t.Errorf("GenerateID(%q, %q, %q): expected %q, got %q", tc.name, tc.time, tc.stage, tc.want, got)
		}
	}
}

func TestNewIsDeterministic(t *testing.T) {
	a := New("Artist", "18:00", "Main")
	b := New("Artist", "18:00", "Main").WithMeta("https://example.com/a", "a.jpg")
	if a.ID != b.ID {
		t.Fatalf("expected equal ids, got %q and %q", a.ID, b.ID)
	}
	if b.Link != "https://example.com/a" || b.ImageURL != "a.jpg" {
		t.Fatalf("metadata not carried: %+v", b)
	}
	if a.Link != "" {
		t.Fatalf("WithMeta mutated the receiver")
	}
}

func TestNormalizeRecomputesID(t *testing.T) {
	e := Event{ID: "stale", Name: "Artist", Time: "18:00", Stage: "Main"}
	if got := e.Normalize().ID; got != "Artist_18_00_Main" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestParseAllDropsUnparseable(t *testing.T) {
	events := []Event{
		New("A", "18:00", "Main"),
		New("B", "TBA", "Main"),
		New("C", "7:45", "Forest"),
	}
	parsed := ParseAll(events)
	if len(parsed) != 2 {
		t.Fatalf("expected 2 parsed events, got %d", len(parsed))
	}
	if parsed[0].Name != "A" || parsed[0].Minutes != 18*60 {
		t.Fatalf("unexpected first event %+v", parsed[0])
	}
	if parsed[1].Name != "C" || parsed[1].Minutes != 7*60+45 {
		t.Fatalf("unexpected second event %+v", parsed[1])
	}
}

func TestIndexFirstWins(t *testing.T) {
	events := []Event{New("A", "1:00", "x"), New("B", "2:00", "x"), New("A", "1:00", "x")}
	idx := Index(events)
	if idx[events[0].ID] != 0 {
		t.Fatalf("expected first occurrence index 0, got %d", idx[events[0].ID])
	}
	if !Contains(events, events[1].ID) || Contains(events, "missing") {
		t.Fatalf("Contains returned wrong result")
	}
}
