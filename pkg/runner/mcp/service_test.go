package mcp

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/event"
	"tableflip.dev/lineup/pkg/extract"
	"tableflip.dev/lineup/pkg/store"
)

func newService(t *testing.T) (*Service, store.KV) {
	t.Helper()
	kv := store.NewMemory()
	h := app.New(kv)
	if err := h.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	h.SetPage(&extract.Snapshot{
		Day:    "Saturday",
		Blocks: 2,
		Events: []event.Event{
			event.New("Alpha", "18:00", "Main"),
			event.New("Beta", "18:05", "Forest"),
			event.New("Gamma", "19:00", "Main"),
		},
	})
	return NewService(h, nil), kv
}

func TestServiceToggleAndList(t *testing.T) {
	ctx := context.Background()
	svc, kv := newService(t)

	res, err := svc.ToggleFavorite(ctx, "Beta_18_05_Forest")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !res.Favorite {
		t.Fatalf("expected favorite after toggle")
	}
	stored, _ := store.LoadFavorites(ctx, kv)
	if len(stored) != 1 {
		t.Fatalf("toggle not persisted: %+v", stored)
	}

	events, err := svc.ListEvents(ctx, true, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || events[0].Name != "Beta" || !events[0].Favorite {
		t.Fatalf("unexpected favorites-only events %+v", events)
	}

	events, _ = svc.ListEvents(ctx, false, "Main")
	if len(events) != 2 {
		t.Fatalf("expected 2 events on Main, got %d", len(events))
	}

	favs, err := svc.ListFavorites(ctx)
	if err != nil || len(favs) != 1 || !favs[0].OnPage {
		t.Fatalf("unexpected favorites %+v %v", favs, err)
	}

	if _, err := svc.ToggleFavorite(ctx, " "); err == nil {
		t.Fatalf("expected error for blank id")
	}
	if _, err := svc.ToggleFavorite(ctx, "missing"); !errors.Is(err, app.ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestServiceBuildSchedule(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	for _, id := range []string{"Alpha_18_00_Main", "Beta_18_05_Forest", "Gamma_19_00_Main"} {
		if _, err := svc.ToggleFavorite(ctx, id); err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}

	sched, err := svc.BuildSchedule(ctx, ScheduleOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sched.Status != app.StatusReady || sched.Conflicts() != 1 || len(sched.Groups) != 2 {
		t.Fatalf("unexpected schedule %+v", sched)
	}

	sched, err = svc.BuildSchedule(ctx, ScheduleOptions{Timeout: 5})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sched.Timeout != 5 || sched.Conflicts() != 1 {
		t.Fatalf("expected 5 minute schedule with one conflict, got %+v", sched)
	}

	if _, err := svc.BuildSchedule(ctx, ScheduleOptions{Timeout: 3}); err == nil {
		t.Fatalf("expected error for invalid timeout")
	}
	if _, err := svc.BuildSchedule(ctx, ScheduleOptions{Mode: "sideways"}); err == nil {
		t.Fatalf("expected error for invalid mode")
	}

	doc, err := svc.PrintSchedule(ctx)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if doc.Header != "Ваш розклад на Saturday" || doc.Conflicts() != 1 {
		t.Fatalf("unexpected print document %+v", doc)
	}
}

func TestServiceRescanWithoutSource(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Rescan(context.Background()); err == nil {
		t.Fatalf("expected error without a page source")
	}
}
