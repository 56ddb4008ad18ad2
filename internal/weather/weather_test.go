package weather

import (
	"errors"
	"testing"
)

// scriptedRandom returns queued integers (clamped into the requested range)
// and a fixed Bernoulli outcome.
type scriptedRandom struct {
	ints []int
	fail bool
}

func (s *scriptedRandom) UniformInt(lo, hi int) int {
	if len(s.ints) == 0 {
		return lo
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *scriptedRandom) Bernoulli(float64) bool {
	return s.fail
}

func TestCatalogKnownCities(t *testing.T) {
	tests := []struct {
		city    string
		country string
		temps   TempRange
	}{
		{"London", "United Kingdom", TempRange{5, 25}},
		{"New York", "United States", TempRange{-5, 35}},
		{"Tokyo", "Japan", TempRange{0, 30}},
		{"Paris", "France", TempRange{0, 28}},
		{"Sydney", "Australia", TempRange{10, 40}},
		{"Berlin", "Germany", TempRange{-10, 30}},
		{"Mumbai", "India", TempRange{15, 45}},
		{"Toronto", "Canada", TempRange{-20, 30}},
	}

	catalog := DefaultCatalog()
	if got := len(catalog.Cities()); got != len(tests) {
		t.Fatalf("expected %d cities, got %d", len(tests), got)
	}

	for _, tc := range tests {
		t.Run(tc.city, func(t *testing.T) {
			if got := catalog.Country(tc.city); got != tc.country {
				t.Errorf("expected country %q, got %q", tc.country, got)
			}
			if got := catalog.TempRange(tc.city); got != tc.temps {
				t.Errorf("expected range %v, got %v", tc.temps, got)
			}
		})
	}
}

func TestCatalogFallback(t *testing.T) {
	catalog := DefaultCatalog()
	for _, city := range []string{"Atlantis", "london", "LONDON", ""} {
		if got := catalog.Country(city); got != FallbackCountry {
			t.Errorf("%q: expected fallback country, got %q", city, got)
		}
		if got := catalog.TempRange(city); got != FallbackRange {
			t.Errorf("%q: expected fallback range, got %v", city, got)
		}
	}

	loc := catalog.Locate("Atlantis")
	if loc.String() != "Atlantis, Country" {
		t.Fatalf("unexpected location line %q", loc.String())
	}
}

func TestConditionIcons(t *testing.T) {
	want := map[Condition]string{
		ConditionSunny:        "fa-sun",
		ConditionPartlyCloudy: "fa-cloud-sun",
		ConditionCloudy:       "fa-cloud",
		ConditionRainy:        "fa-cloud-rain",
		ConditionLightRain:    "fa-cloud-sun-rain",
		ConditionSnow:         "fa-snowflake",
		ConditionFoggy:        "fa-smog",
	}
	if len(Conditions) != len(want) {
		t.Fatalf("expected %d conditions, got %d", len(want), len(Conditions))
	}
	for _, c := range Conditions {
		if c.Icon() != want[c] {
			t.Errorf("%s: expected icon %q, got %q", c, want[c], c.Icon())
		}
	}
	if Condition("Hail").Valid() {
		t.Error("unexpected valid condition outside the fixed set")
	}
}

func TestUniformRandomBounds(t *testing.T) {
	t.Run("lowest draw maps to lo", func(t *testing.T) {
		r := NewRandomFrom(func() float64 { return 0 })
		if got := r.UniformInt(-20, 30); got != -20 {
			t.Fatalf("expected -20, got %d", got)
		}
	})
	t.Run("highest draw maps to hi", func(t *testing.T) {
		r := NewRandomFrom(func() float64 { return 0.999999 })
		if got := r.UniformInt(5, 25); got != 25 {
			t.Fatalf("expected 25, got %d", got)
		}
	})
	t.Run("bernoulli compares against p", func(t *testing.T) {
		r := NewRandomFrom(func() float64 { return 0.05 })
		if !r.Bernoulli(0.1) {
			t.Fatal("expected true for draw below p")
		}
		r = NewRandomFrom(func() float64 { return 0.5 })
		if r.Bernoulli(0.1) {
			t.Fatal("expected false for draw above p")
		}
	})
	t.Run("default source stays in range", func(t *testing.T) {
		r := NewRandom()
		for i := 0; i < 1000; i++ {
			if v := r.UniformInt(1, 3); v < 1 || v > 3 {
				t.Fatalf("draw %d out of range", v)
			}
		}
	})
}

func TestGenerateReading(t *testing.T) {
	t.Run("scripted draws map onto fields", func(t *testing.T) {
		rnd := &scriptedRandom{ints: []int{12, 3, 7, 55, 2, 18}}
		r := GenerateReading(DefaultCatalog(), rnd, "London")

		if r.Location.String() != "London, United Kingdom" {
			t.Errorf("unexpected location %q", r.Location.String())
		}
		if r.TemperatureC != 12 {
			t.Errorf("expected temperature 12, got %d", r.TemperatureC)
		}
		if r.Condition != ConditionRainy || r.Icon != "fa-cloud-rain" {
			t.Errorf("unexpected condition %q/%q", r.Condition, r.Icon)
		}
		if r.WindSpeedKmh != 7 || r.HumidityPct != 55 || r.FeelsLikeC != 10 || r.VisibilityKm != 18 {
			t.Errorf("unexpected details %+v", r)
		}
	})

	t.Run("random draws respect bounds", func(t *testing.T) {
		catalog := DefaultCatalog()
		rnd := NewRandom()
		cities := append(catalog.Cities(), "Atlantis")
		for _, city := range cities {
			temps := catalog.TempRange(city)
			for i := 0; i < 200; i++ {
				r := GenerateReading(catalog, rnd, city)
				if !temps.Contains(r.TemperatureC) {
					t.Fatalf("%s: temperature %d outside %v", city, r.TemperatureC, temps)
				}
				if r.WindSpeedKmh < 5 || r.WindSpeedKmh > 25 {
					t.Fatalf("wind %d out of range", r.WindSpeedKmh)
				}
				if r.HumidityPct < 30 || r.HumidityPct > 90 {
					t.Fatalf("humidity %d out of range", r.HumidityPct)
				}
				if r.VisibilityKm < 5 || r.VisibilityKm > 20 {
					t.Fatalf("visibility %d out of range", r.VisibilityKm)
				}
				if d := r.TemperatureC - r.FeelsLikeC; d < 1 || d > 3 {
					t.Fatalf("feels-like drop %d out of range", d)
				}
				if !r.Condition.Valid() || r.Icon != r.Condition.Icon() {
					t.Fatalf("unexpected condition %q/%q", r.Condition, r.Icon)
				}
			}
		}
	})
}

func TestLookupFailureMessage(t *testing.T) {
	var err error = &LookupFailure{City: "Paris"}
	if err.Error() != "Unable to fetch weather data for Paris" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	var lf *LookupFailure
	if !errors.As(err, &lf) || lf.City != "Paris" {
		t.Fatal("expected errors.As to recover the failure")
	}
}
