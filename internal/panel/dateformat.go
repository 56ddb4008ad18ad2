package panel

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is the locale the date line is written in unless configured.
const DefaultLocale = "en-US"

var dateLocales = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
}

// Full weekday, month name, day and year, indexed like dateLocales.
var dateLayouts = []string{
	"Monday, January 2, 2006",
	"Monday 2 January 2006",
}

var dateMatcher = language.NewMatcher(dateLocales)

// DateFormatter renders the panel's date line.
type DateFormatter struct {
	layout string
}

// NewDateFormatter returns a formatter for locale. Locales without a
// dedicated layout fall back to the closest supported one.
func NewDateFormatter(locale string) (*DateFormatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid date locale %q: %w", locale, err)
	}

	_, idx, _ := dateMatcher.Match(tag)
	return &DateFormatter{layout: dateLayouts[idx]}, nil
}

// MustDateFormatter is like NewDateFormatter but panics on an invalid locale.
func MustDateFormatter(locale string) *DateFormatter {
	d, err := NewDateFormatter(locale)
	if err != nil {
		panic(err)
	}
	return d
}

var defaultDates = MustDateFormatter(DefaultLocale)

// Format renders t.
func (d *DateFormatter) Format(t time.Time) string {
	return t.Format(d.layout)
}
