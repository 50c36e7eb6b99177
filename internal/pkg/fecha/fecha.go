// Package fecha renders booking start times as short human strings in a fixed
// locale, e.g. "martes, 14 de enero · 10:30".
package fecha

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/es_MX"
)

// Separator joins the date part and the clock part.
const Separator = " · "

// Formatter renders an instant that is already in the display zone.
type Formatter interface {
	Format(t time.Time) string
}

type localeFormatter struct {
	trans    locales.Translator
	datePart func(trans locales.Translator, t time.Time) string
}

func (f localeFormatter) Format(t time.Time) string {
	return f.datePart(f.trans, t) + Separator + t.Format("15:04")
}

func spanishDate(trans locales.Translator, t time.Time) string {
	return fmt.Sprintf("%s, %d de %s", trans.WeekdayWide(t.Weekday()), t.Day(), trans.MonthWide(t.Month()))
}

func englishDate(trans locales.Translator, t time.Time) string {
	return fmt.Sprintf("%s, %s %d", trans.WeekdayWide(t.Weekday()), trans.MonthWide(t.Month()), t.Day())
}

// NewFormatter returns the Formatter for a locale name such as "es" or "en_US".
func NewFormatter(locale string) (Formatter, error) {
	switch strings.ReplaceAll(strings.TrimSpace(locale), "-", "_") {
	case "", "es", "es_ES":
		return localeFormatter{trans: es.New(), datePart: spanishDate}, nil
	case "es_MX":
		return localeFormatter{trans: es_MX.New(), datePart: spanishDate}, nil
	case "en":
		return localeFormatter{trans: en.New(), datePart: englishDate}, nil
	case "en_US":
		return localeFormatter{trans: en_US.New(), datePart: englishDate}, nil
	default:
		return nil, fmt.Errorf("unsupported display locale %q", locale)
	}
}

// Renderer converts raw start timestamps into display strings.
type Renderer struct {
	formatter Formatter
}

func NewRenderer(formatter Formatter) *Renderer {
	return &Renderer{formatter: formatter}
}

// LoadZone resolves an IANA zone name. The host-dependent "Local" and the empty
// name are not zones and are rejected.
func LoadZone(name string) (*time.Location, bool) {
	if name == "" || name == "Local" {
		return nil, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// Pretty renders startAt in the given IANA zone. It returns nil when the input is
// missing, the zone is unknown, the timestamp does not parse, or the formatter panics.
func (r *Renderer) Pretty(startAt *string, zone string) (out *string) {
	if startAt == nil || strings.TrimSpace(*startAt) == "" {
		return nil
	}
	loc, ok := LoadZone(zone)
	if !ok {
		return nil
	}
	t, ok := ParseInstant(*startAt, loc)
	if !ok {
		return nil
	}

	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	s := r.formatter.Format(t.In(loc))
	return &s
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseInstant parses an ISO-8601 timestamp. Timestamps without an offset are read
// in loc; a bare date is midnight UTC.
func ParseInstant(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
