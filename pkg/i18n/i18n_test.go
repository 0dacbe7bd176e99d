package i18n

import "testing"

func TestGet(t *testing.T) {
	tests := []struct {
		locale string
		key    string
		subs   []string
		want   string
	}{
		{"en", "yourSchedule", []string{"Friday"}, "Your schedule for Friday"},
		{"uk", "yourSchedule", []string{"п'ятниця"}, "Ваш розклад на п'ятниця"},
		{"", "conflict", nil, "Конфлікт"},
		{"de", "conflict", nil, "Конфлікт"},
		{"EN", "stage", nil, "Stage"},
		{"en", "doesNotExist", nil, "doesNotExist"},
		{"en", "conflictsFound", []string{"3"}, "Conflicts found: 3"},
	}
	for _, tt := range tests {
		c, err := Load(tt.locale)
		if err != nil {
			t.Fatalf("load %q: %v", tt.locale, err)
		}
		if got := c.Get(tt.key, tt.subs...); got != tt.want {
			t.Errorf("%s/%s: expected %q, got %q", tt.locale, tt.key, tt.want, got)
		}
	}
}

func TestFallbackToDefaultLocale(t *testing.T) {
	c := MustLoad("en")
	delete(c.messages, "time")
	if got := c.Get("time"); got != "Час" {
		t.Fatalf("expected fallback to uk, got %q", got)
	}
}

func TestLocales(t *testing.T) {
	got := Locales()
	if len(got) != 2 || got[0] != "en" || got[1] != "uk" {
		t.Fatalf("unexpected locales %v", got)
	}
}
