package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/runner/events"
	"tableflip.dev/lineup/pkg/runner/favorite"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LINEUP_CONFIG_PATH", t.TempDir())
	t.Setenv("LINEUP_PATH", t.TempDir())
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type scheduleView struct {
	Status  app.Status `json:"status"`
	Timeout int        `json:"timeout"`
	Mode    string     `json:"mode"`
}

func TestScheduleWithoutFavorites(t *testing.T) {
	out, err := execute(t, "schedule", "--ephemeral", "--page", "testdata/friday.html", "--json")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	var got scheduleView
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Status != app.StatusNoFavorites || got.Timeout != 15 {
		t.Fatalf("unexpected schedule: %+v", got)
	}
}

func TestScheduleFlagsOverrideConfig(t *testing.T) {
	out, err := execute(t, "schedule", "--ephemeral", "--page", "testdata/friday.html", "--json", "-t", "20 min", "--mode", "chain")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	var got scheduleView
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Timeout != 20 || got.Mode != "chain" {
		t.Fatalf("expected 20 minute chain schedule, got %d %s", got.Timeout, got.Mode)
	}
}

func TestScheduleRejectsBadTimeout(t *testing.T) {
	if _, err := execute(t, "schedule", "--ephemeral", "--page", "testdata/friday.html", "-t", "7"); err == nil {
		t.Fatal("expected timeout 7 to be rejected")
	}
}

func TestScheduleNeedsPage(t *testing.T) {
	_, err := execute(t, "schedule", "--ephemeral")
	if !errors.Is(err, errNoPage) {
		t.Fatalf("expected errNoPage, got %v", err)
	}
}

func TestEventsStageFilter(t *testing.T) {
	out, err := execute(t, "events", "--ephemeral", "--page", "testdata/friday.html", "--json", "-s", "Forest")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	var got events.Listing
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got.Events) != 1 || got.Events[0].Name != "Secret guest" {
		t.Fatalf("expected only the Forest event, got %+v", got.Events)
	}
	if len(got.HiddenStages) != 1 || got.HiddenStages[0] != "Main Stage" {
		t.Fatalf("expected Main Stage hidden, got %v", got.HiddenStages)
	}
}

func TestFavoriteToggle(t *testing.T) {
	out, err := execute(t, "favorite", "--ephemeral", "--page", "testdata/friday.html", "--json", "Okean_Elzy_21_00_Main_Stage")
	if err != nil {
		t.Fatalf("favorite: %v", err)
	}
	var got []favorite.Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 1 || !got[0].Favorite || got[0].Title != "21:00 Okean Elzy @ Main Stage" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestFavoriteNeedsID(t *testing.T) {
	if _, err := execute(t, "favorite", "--ephemeral"); err == nil {
		t.Fatal("expected an error without ids")
	}
}

func TestJSONAndYAMLExclusive(t *testing.T) {
	_, err := execute(t, "events", "--ephemeral", "--page", "testdata/friday.html", "--json", "--yaml")
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected mutually exclusive error, got %v", err)
	}
}

func TestSettingsShow(t *testing.T) {
	out, err := execute(t, "settings", "--ephemeral", "--json")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if !strings.Contains(out, `"scheduleHelper": true`) || !strings.Contains(out, `"language": "uk"`) {
		t.Fatalf("unexpected settings:\n%s", out)
	}
}
