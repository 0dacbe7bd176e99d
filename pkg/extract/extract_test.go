package extract

import (
	"net/url"
	"strings"
	"testing"
)

const schedulePage = `<html><body>
<div class="schedule_day_list">
  <a class="schedule_day_link">Thursday</a>
  <a class="schedule_day_link active"> Friday </a>
</div>
<div class="schedule_block">
  <div class="schedule_block_title"> Main Stage </div>
  <div class="schedule_item">
    <a class="schedule_link" href="/artists/okean-elzy">
      <div class="schedule_img"><img src="/img/oe.jpg"></div>
      <div class="schedule_descr">
        <div class="schedule_time">21:00</div>
        <div class="schedule_name"> Okean Elzy </div>
      </div>
    </a>
  </div>
  <div class="schedule_item">
    <a class="schedule_link" href="https://example.org/dakha">
      <div class="schedule_descr">
        <div class="schedule_time">19:30</div>
        <div class="schedule_name">DakhaBrakha</div>
      </div>
    </a>
  </div>
  <div class="schedule_item"><div class="schedule_name">Broken item</div></div>
</div>
<div class="schedule_block">
  <div class="schedule_block_title">Forest</div>
  <div class="schedule_item">
    <a class="schedule_link" href="/artists/tba">
      <div class="schedule_descr">
        <div class="schedule_time">TBA</div>
        <div class="schedule_name">Secret guest</div>
      </div>
    </a>
  </div>
</div>
</body></html>`

func TestParse(t *testing.T) {
	base, _ := url.Parse("https://atlasfestival.com/schedule/")
	snap, err := Parse(strings.NewReader(schedulePage), Options{BaseURL: base})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !snap.Ready() || snap.Blocks != 2 {
		t.Fatalf("expected 2 blocks, got %d", snap.Blocks)
	}
	if snap.Day != "Friday" {
		t.Fatalf("expected active day Friday, got %q", snap.Day)
	}
	if len(snap.Stages) != 2 || snap.Stages[0] != "Main Stage" || snap.Stages[1] != "Forest" {
		t.Fatalf("unexpected stages %v", snap.Stages)
	}
	if len(snap.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap.Events))
	}

	oe := snap.Events[0]
	if oe.Name != "Okean Elzy" || oe.Time != "21:00" || oe.Stage != "Main Stage" {
		t.Fatalf("unexpected first event %+v", oe)
	}
	if oe.ID != "Okean_Elzy_21_00_Main_Stage" {
		t.Fatalf("unexpected id %q", oe.ID)
	}
	if oe.Link != "https://atlasfestival.com/artists/okean-elzy" {
		t.Fatalf("link not resolved: %q", oe.Link)
	}
	if oe.ImageURL != "https://atlasfestival.com/img/oe.jpg" {
		t.Fatalf("image not resolved: %q", oe.ImageURL)
	}
	if snap.Events[1].Link != "https://example.org/dakha" || snap.Events[1].ImageURL != "" {
		t.Fatalf("unexpected second event %+v", snap.Events[1])
	}
	if snap.Events[2].Stage != "Forest" || snap.Events[2].Time != "TBA" {
		t.Fatalf("unexpected third event %+v", snap.Events[2])
	}
}

func TestParseNotReady(t *testing.T) {
	snap, err := Parse(strings.NewReader(`<html><body><p>loading</p></body></html>`), Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if snap.Ready() {
		t.Fatalf("expected page without blocks to be not ready")
	}
	if len(snap.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(snap.Events))
	}
}
