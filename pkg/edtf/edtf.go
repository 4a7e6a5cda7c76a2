// Package edtf parses Extended Date/Time Format (ISO 8601-2) strings at
// levels 0 and 1: calendar dates, reduced precision, seasons, unspecified
// digits, uncertain/approximate qualifiers, and intervals.
package edtf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// Season codes per EDTF level 1.
const (
	SeasonSpring = 21
	SeasonSummer = 22
	SeasonAutumn = 23
	SeasonWinter = 24
)

// Date is one EDTF date, possibly reduced to year or year-month precision.
type Date struct {
	Year int
	// Month is 1-12, or a season code 21-24, or 0 for year precision.
	Month int
	// Day is 1-31, or 0 when unspecified.
	Day int
	// Uncertain marks the '?' qualifier.
	Uncertain bool
	// Approximate marks the '~' qualifier ('%' sets both).
	Approximate bool
	// UnspecifiedDigits counts trailing 'X' digits in the year
	// (e.g. 2 for "19XX").
	UnspecifiedDigits int
}

// Season reports whether Month holds a season code.
func (d *Date) Season() bool {
	return d.Month >= SeasonSpring && d.Month <= SeasonWinter
}

// SortKey folds the date into one comparable integer (year-month-day).
func (d *Date) SortKey() int {
	m := d.Month
	if d.Season() {
		// Seasons sort after named months of the same year.
		m = m - SeasonSpring + 13
	}
	return d.Year*10000 + m*100 + d.Day
}

// Value is a parsed EDTF string: a single date or an interval, possibly
// open at one end.
type Value struct {
	Start *Date
	End   *Date
	// OpenStart marks "../DATE", OpenEnd marks "DATE/..".
	OpenStart bool
	OpenEnd   bool
}

// Year returns the primary year: the start of an interval, or the date's
// own year. Zero when only an open start exists without a date.
func (v *Value) Year() int {
	if v.Start != nil {
		return v.Start.Year
	}
	if v.End != nil {
		return v.End.Year
	}
	return 0
}

// Interval reports whether the value spans two dates or is open-ended.
func (v *Value) Interval() bool {
	return v.OpenStart || v.OpenEnd || v.End != nil
}

// Approximate reports whether any part of the value is approximate.
func (v *Value) Approximate() bool {
	if v.Start != nil && v.Start.Approximate {
		return true
	}
	return v.End != nil && v.End.Approximate
}

// Parse parses an EDTF level 0/1 string.
func Parse(s string) (*Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty date")
	}

	// Interval forms: "A/B", "A/..", "../B".
	if i := splitInterval(s); i >= 0 {
		left, right := s[:i], s[i+1:]
		v := &Value{}
		switch {
		case left == "..":
			v.OpenStart = true
		case left != "":
			d, err := parseDate(left)
			if err != nil {
				return nil, err
			}
			v.Start = d
		default:
			return nil, fmt.Errorf("interval %q: missing start", s)
		}
		switch {
		case right == "..":
			v.OpenEnd = true
		case right != "":
			d, err := parseDate(right)
			if err != nil {
				return nil, err
			}
			v.End = d
		default:
			return nil, fmt.Errorf("interval %q: missing end", s)
		}
		return v, nil
	}

	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &Value{Start: d}, nil
}

// ParseLenient parses EDTF first and falls back to free-form date
// recognition, so "June 3, 1998" degrades to a usable date instead of an
// error. The error from the strict parse is returned when both fail.
func ParseLenient(s string) (*Value, error) {
	v, err := Parse(s)
	if err == nil {
		return v, nil
	}
	t, perr := dateparse.ParseAny(s)
	if perr != nil {
		return nil, err
	}
	return &Value{Start: &Date{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
	}}, nil
}

// splitInterval finds the interval slash, ignoring any inside "..".
func splitInterval(s string) int {
	return strings.IndexByte(s, '/')
}

// parseDate parses one side of an interval: a date with optional trailing
// qualifier.
func parseDate(s string) (*Date, error) {
	d := &Date{}

	// Trailing qualifier applies to the whole date (level 1).
	switch {
	case strings.HasSuffix(s, "%"):
		d.Uncertain = true
		d.Approximate = true
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "?"):
		d.Uncertain = true
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "~"):
		d.Approximate = true
		s = s[:len(s)-1]
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	parts := strings.Split(s, "-")
	if len(parts) == 0 || len(parts) > 3 {
		return nil, fmt.Errorf("malformed date %q", s)
	}

	year, unspecified, err := parseYear(parts[0])
	if err != nil {
		return nil, err
	}
	d.Year = year
	d.UnspecifiedDigits = unspecified
	if neg {
		d.Year = -d.Year
	}

	if len(parts) > 1 {
		m, err := parseMonth(parts[1])
		if err != nil {
			return nil, err
		}
		d.Month = m
	}
	if len(parts) > 2 {
		if d.Season() {
			return nil, fmt.Errorf("malformed date %q: day after season", s)
		}
		day, err := strconv.Atoi(parts[2])
		if err != nil || day < 1 || day > 31 {
			return nil, fmt.Errorf("malformed date %q: bad day", s)
		}
		d.Day = day
	}
	return d, nil
}

// parseYear handles plain four-digit years and unspecified trailing digits
// ("19XX", legacy "19uu"). Unspecified digits are zero-filled in Year.
func parseYear(s string) (int, int, error) {
	if len(s) != 4 {
		return 0, 0, fmt.Errorf("malformed year %q", s)
	}
	unspecified := 0
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c == 'X' || c == 'u' {
			unspecified++
			continue
		}
		break
	}
	digits := s[:len(s)-unspecified]
	year := 0
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed year %q", s)
		}
		year = n
	}
	for i := 0; i < unspecified; i++ {
		year *= 10
	}
	return year, unspecified, nil
}

func parseMonth(s string) (int, error) {
	m, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("malformed month %q", s)
	}
	if (m >= 1 && m <= 12) || (m >= SeasonSpring && m <= SeasonWinter) {
		return m, nil
	}
	return 0, fmt.Errorf("month %d out of range", m)
}
