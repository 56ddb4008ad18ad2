package panel

import (
	"testing"
	"time"
)

func TestDateFormatter(t *testing.T) {
	day := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		locale string
		want   string
	}{
		{"", "Monday, October 19, 2026"},
		{"en-US", "Monday, October 19, 2026"},
		{"en-GB", "Monday 19 October 2026"},
		{"de-DE", "Monday, October 19, 2026"},
	}

	for _, tc := range tests {
		t.Run("locale "+tc.locale, func(t *testing.T) {
			f, err := NewDateFormatter(tc.locale)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := f.Format(day); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if _, err := NewDateFormatter("not a locale!"); err == nil {
		t.Fatal("expected invalid locale to fail")
	}
}

func TestMustDateFormatter(t *testing.T) {
	day := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	if got := defaultDates.Format(day); got != "Monday, October 19, 2026" {
		t.Errorf("unexpected default date line %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected invalid locale to panic")
		}
	}()
	MustDateFormatter("not a locale!")
}
