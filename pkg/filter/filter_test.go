package filter

import (
	"reflect"
	"testing"

	"tableflip.dev/lineup/pkg/event"
)

func page() []event.Event {
	return []event.Event{
		event.New("Alpha", "18:00", "Main"),
		event.New("Beta", "18:10", "Forest"),
		event.New("Gamma", "19:00", "Main"),
		event.New("Delta", "20:00", "Beach"),
	}
}

func names(events []event.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Name)
	}
	return out
}

func TestVisibleNoFilters(t *testing.T) {
	all := page()
	got := Visible(all, nil, State{})
	if !reflect.DeepEqual(names(got), names(all)) {
		t.Fatalf("expected every event visible, got %v", names(got))
	}
}

func TestVisibleFavoritesOnly(t *testing.T) {
	all := page()
	favs := []event.Event{all[2], all[0]}
	got := Visible(all, favs, State{ShowFavoritesOnly: true})
	want := []string{"Alpha", "Gamma"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}
}

func TestVisibleStagesAndFavorites(t *testing.T) {
	all := page()
	favs := []event.Event{all[0], all[1], all[3]}
	got := Visible(all, favs, State{ShowFavoritesOnly: true, SelectedStages: []string{"Main", "Beach"}})
	want := []string{"Alpha", "Delta"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}
}

func TestSchedulingSetIgnoresFilters(t *testing.T) {
	all := page()
	offPage := event.New("Omega", "21:00", "Main")
	favs := []event.Event{all[3], offPage, all[1]}

	got := SchedulingSet(favs, all)
	want := []string{"Delta", "Beta"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}

	// The favorites-only toggle changes what is listed but the
	// scheduling set has no dependency on it.
	shown := Visible(all, favs, State{ShowFavoritesOnly: true})
	hidden := Visible(all, favs, State{})
	if len(shown) == len(hidden) {
		t.Fatalf("expected favorites-only to narrow the list")
	}
	if again := SchedulingSet(favs, all); !reflect.DeepEqual(got, again) {
		t.Fatalf("scheduling set changed between calls")
	}
}

func TestSchedulingSetEmpty(t *testing.T) {
	if got := SchedulingSet(nil, page()); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", names(got))
	}
	if got := SchedulingSet(page(), nil); len(got) != 0 {
		t.Fatalf("expected empty set with no page, got %v", names(got))
	}
}

func TestStagesAndHidden(t *testing.T) {
	all := page()
	stages := Stages(all)
	if want := []string{"Main", "Forest", "Beach"}; !reflect.DeepEqual(stages, want) {
		t.Fatalf("expected %v, got %v", want, stages)
	}

	st := State{}.SelectAll(stages)
	if len(st.SelectedStages) != 3 || !st.StagePasses("Beach") || st.StagePasses("Nowhere") {
		t.Fatalf("unexpected stage selection %+v", st)
	}

	visible := Visible(all, nil, State{SelectedStages: []string{"Main"}})
	hidden := HiddenStages(all, visible)
	if want := []string{"Forest", "Beach"}; !reflect.DeepEqual(hidden, want) {
		t.Fatalf("expected hidden %v, got %v", want, hidden)
	}
}
