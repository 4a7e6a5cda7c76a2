package values

import (
	"strconv"
	"time"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/edtf"
)

// En dash joins date range endpoints.
const rangeDash = "–"

var seasonNames = map[int]string{
	edtf.SeasonSpring: "Spring",
	edtf.SeasonSummer: "Summer",
	edtf.SeasonAutumn: "Autumn",
	edtf.SeasonWinter: "Winter",
}

// Date extracts a rendered date for a date component. Malformed dates
// degrade to the raw string with a warning; a missing issued date renders
// the locale's no-date term. The entry's year suffix is appended when the
// hints carry one.
func Date(ctx *Context, comp *models.TemplateComponent) ProcValue {
	var raw models.EdtfDate
	switch comp.Date {
	case "issued":
		raw = ctx.Ref.Issued
	case "accessed":
		raw = ctx.Ref.Accessed
	default:
		ctx.warn(WarnInvalidOverrideTarget, "unknown date variable "+comp.Date)
		return ProcValue{}
	}

	if raw.IsZero() {
		if comp.Date != "issued" {
			return ProcValue{}
		}
		return ProcValue{Value: ctx.Locale.Terms.NoDate + ctx.Hints.YearSuffix}
	}

	v, err := edtf.ParseLenient(raw.String())
	if err != nil {
		ctx.warn(WarnMalformedDate,
			"reference "+ctx.Ref.ID+": "+err.Error())
		return ProcValue{Value: raw.String()}
	}

	form := comp.Form
	if form == "" {
		form = "year"
	}

	text := formatValue(ctx, v, form)
	if text == "" {
		return ProcValue{}
	}
	return ProcValue{Value: text + ctx.Hints.YearSuffix}
}

func formatValue(ctx *Context, v *edtf.Value, form string) string {
	switch {
	case v.OpenStart:
		return rangeDash + formatDate(ctx, v.End, form)
	case v.OpenEnd:
		return formatDate(ctx, v.Start, form) + rangeDash
	case v.End != nil:
		return formatDate(ctx, v.Start, form) + rangeDash + formatDate(ctx, v.End, form)
	default:
		return formatDate(ctx, v.Start, form)
	}
}

func formatDate(ctx *Context, d *edtf.Date, form string) string {
	year := yearText(ctx, d)

	var out string
	switch form {
	case "year":
		out = year
	case "year-month":
		if m := monthText(ctx, d); m != "" {
			out = m + " " + year
		} else {
			out = year
		}
	case "month-day":
		m := monthText(ctx, d)
		switch {
		case m == "":
			out = ""
		case d.Day > 0:
			out = m + " " + strconv.Itoa(d.Day)
		default:
			out = m
		}
	default: // full
		m := monthText(ctx, d)
		switch {
		case m == "" || d.Season():
			if m != "" {
				out = m + " " + year
			} else {
				out = year
			}
		case d.Day > 0:
			out = m + " " + strconv.Itoa(d.Day) + ", " + year
		default:
			out = m + " " + year
		}
	}
	if out == "" {
		return out
	}
	if d.Approximate {
		out = ctx.Locale.Terms.Circa + " " + out
	}
	if d.Uncertain {
		out += "?"
	}
	return out
}

// yearText renders the year, restoring unspecified digits ("19XX" renders
// as "19XX", not "1900").
func yearText(ctx *Context, d *edtf.Date) string {
	s := strconv.Itoa(d.Year)
	if d.UnspecifiedDigits > 0 && len(s) >= d.UnspecifiedDigits {
		s = s[:len(s)-d.UnspecifiedDigits]
		for i := 0; i < d.UnspecifiedDigits; i++ {
			s += "X"
		}
	}
	return s
}

func monthText(ctx *Context, d *edtf.Date) string {
	if d.Month == 0 {
		return ""
	}
	if d.Season() {
		return seasonNames[d.Month]
	}
	format := models.MonthLong
	if ctx.Cfg != nil && ctx.Cfg.Dates != nil && ctx.Cfg.Dates.Month != "" {
		format = ctx.Cfg.Dates.Month
	}
	name := time.Month(d.Month).String()
	switch format {
	case models.MonthNumeric:
		return strconv.Itoa(d.Month)
	case models.MonthShort:
		if len(name) > 3 {
			return name[:3] + "."
		}
		return name
	default:
		return name
	}
}
