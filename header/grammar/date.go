package grammar

import (
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// UnixDateWithEarlyYear is a date format seen in the wild that the usual
// parsers have trouble with.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// DateTime is the value of a date field like Date or Resent-Date.
type DateTime struct {
	node
	raw   string
	t     time.Time
	valid bool
}

// Time returns the parsed time. It is the zero time if Valid is false.
func (d *DateTime) Time() time.Time {
	return d.t
}

// Valid reports whether a time could be parsed from the value.
func (d *DateTime) Valid() bool {
	return d.valid
}

// Raw returns the value the tree was parsed from.
func (d *DateTime) Raw() string {
	return d.raw
}

// String returns the time formatted per RFC 5322 or an empty string when no
// time could be parsed.
func (d *DateTime) String() string {
	if !d.valid {
		return ""
	}
	return d.t.Format(time.RFC1123Z)
}

// ParseDateTime parses a date-time. The RFC 5322 format is tried first. Failing
// that, many other formats are tried and a successful parse of one of them is
// recorded as an ObsoleteHeaderDefect. When nothing works, the result is
// invalid with an InvalidDateDefect.
func ParseDateTime(value string) *DateTime {
	d := &DateTime{raw: value}
	body := strings.TrimSpace(value)
	if body == "" {
		d.addDefect(newDefect(MissingValueDefect, "expected date-time but found nothing"))
		return d
	}

	if t, err := mail.ParseDate(body); err == nil {
		d.t, d.valid = t, true
		return d
	}

	t, err := dateparse.ParseAny(body)
	if err != nil {
		t, err = time.Parse(UnixDateWithEarlyYear, body)
	}

	if err != nil {
		d.addDefect(newDefect(InvalidDateDefect, "date-time %q cannot be parsed", body))
		return d
	}

	d.t, d.valid = t, true
	d.addDefect(newDefect(ObsoleteHeaderDefect, "date-time %q is not in RFC 5322 format", body))
	return d
}
