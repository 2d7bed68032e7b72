package naming

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Derived date/time keys.
const (
	KeyYear      = "Y"
	KeyYearShort = "y"
	KeyMonth     = "m"
	KeyDay       = "D"
	KeyTime      = "t"
	KeyHour      = "H"
	KeyHour12    = "h"
	KeyMinute    = "M"
	KeySecond    = "S"
	KeyWeek      = "W"
	KeyWeekday   = "a"
)

// ErrUnparsableDate is returned by ParseDateTime when no layout matches.
var ErrUnparsableDate = errors.New("unparsable date")

// dateLayouts are tried in order; the first successful parse wins.
var dateLayouts = []string{
	"2006:01:02 15:04:05",
	"2006:01:02 15:04:05-0700",
	"2006:01:02 15:04:05-07:00",
}

// ParseDateTime parses an EXIF timestamp such as "2023:09:08 18:56:54",
// optionally followed by a numeric UTC offset. The returned time keeps the
// wall clock as written; an offset only fixes its location. The value must
// match a layout exactly, so fractional seconds are rejected.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var first error
	for _, l := range dateLayouts {
		t, err := time.Parse(l, s)
		if err == nil && t.Format(l) != s {
			err = fmt.Errorf("%q does not match layout %q exactly", s, l)
		}
		if err == nil {
			return t, nil
		}
		if first == nil {
			first = err
		}
	}
	return time.Time{}, fmt.Errorf("%w %q: %v", ErrUnparsableDate, s, first)
}

// DateVars is the structured form of the date/time variables.
type DateVars struct {
	Year      string
	YearShort string
	Month     string
	Day       string
	Time      string
	Hour      string
	Hour12    string
	Minute    string
	Second    string
	Week      string
	Weekday   string
}

// NewDateVars formats the calendar and clock fields of t.
func NewDateVars(t time.Time) DateVars {
	_, week := t.ISOWeek()
	hour12 := t.Hour() % 12
	if t.Hour() == 12 {
		hour12 = 12
	}
	return DateVars{
		Year:      fmt.Sprintf("%d", t.Year()),
		YearShort: fmt.Sprintf("%02d", t.Year()%100),
		Month:     fmt.Sprintf("%02d", int(t.Month())),
		Day:       fmt.Sprintf("%02d", t.Day()),
		Time:      fmt.Sprintf("%02d%02d%02d", t.Hour(), t.Minute(), t.Second()),
		Hour:      fmt.Sprintf("%02d", t.Hour()),
		// Midnight is 00, noon is 12.
		Hour12:  fmt.Sprintf("%02d", hour12),
		Minute:  fmt.Sprintf("%02d", t.Minute()),
		Second:  fmt.Sprintf("%02d", t.Second()),
		Week:    fmt.Sprintf("%02d", week),
		Weekday: t.Weekday().String()[:3],
	}
}

// Vars returns d keyed by the short variable names.
func (d DateVars) Vars() Vars {
	return Vars{
		KeyYear:      d.Year,
		KeyYearShort: d.YearShort,
		KeyMonth:     d.Month,
		KeyDay:       d.Day,
		KeyTime:      d.Time,
		KeyHour:      d.Hour,
		KeyHour12:    d.Hour12,
		KeyMinute:    d.Minute,
		KeySecond:    d.Second,
		KeyWeek:      d.Week,
		KeyWeekday:   d.Weekday,
	}
}

// DeriveDateVars returns the date/time variables for s. An unparsable value
// is logged and yields an empty set.
func DeriveDateVars(s string) Vars {
	t, err := ParseDateTime(s)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"value": s,
		}).WithError(err).Warn("skipping date variables")
		return Vars{}
	}
	return NewDateVars(t).Vars()
}
