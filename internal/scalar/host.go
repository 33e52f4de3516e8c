// Package scalar implements the host scalar capabilities: date and time part
// extraction and coercion of raw values to canonical text.
//
// Malformed input never fails: parts come back as zero and canonical text
// as "" (or NULL for numbers). Callers do not re-validate.
package scalar

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Canonical host formats.
const (
	DateLayout      = "01/02/2006"
	TimeLayout      = "15:04:05"
	TimestampLayout = DateLayout + " " + TimeLayout
)

// NullNumber is the canonical text of a value with no numeric content.
const NullNumber = "NULL"

// hostLayouts are tried before cast's ISO-oriented list.
var hostLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"3:04:05 PM",
	"3:04 PM",
	"3:04PM",
	"15:04:05",
	"15:04",
}

var clockPattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})(?::(\d{2}))?(?:\.\d+)?\s*([ap]\.?m\.?)?`)

// Host is the default scalar host. The zero value is ready to use and
// safe for concurrent use.
type Host struct {
	// Location is used for values without a zone. Defaults to UTC.
	Location *time.Location
}

// Parse returns the time represented by raw.
func (h Host) Parse(raw string) (time.Time, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return time.Time{}, false
	}
	loc := h.location()

	for _, layout := range hostLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := cast.ToTimeInDefaultLocationE(strings.TrimSpace(raw), loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DateParts extracts year, month and day. Unparseable input yields zeros.
func (h Host) DateParts(raw string) (year, month, day int) {
	t, ok := h.Parse(raw)
	if !ok {
		return 0, 0, 0
	}
	return t.Year(), int(t.Month()), t.Day()
}

// TimeParts extracts the hour text, minute and second. The hour text keeps
// any am/pm marker ("3 PM") so the caller decides on 24-hour adjustment.
func (h Host) TimeParts(raw string) (hour string, minute, second int) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		if t, ok := h.Parse(raw); ok {
			return strconv.Itoa(t.Hour()), t.Minute(), t.Second()
		}
		return "0", 0, 0
	}

	hour = m[1]
	if m[4] != "" {
		hour += " " + m[4]
	}
	minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	return hour, minute, second
}

// Date returns raw in canonical date form, or "" when it is not a date.
func (h Host) Date(raw string) string {
	t, ok := h.Parse(raw)
	if !ok {
		return ""
	}
	return t.Format(DateLayout)
}

// Time returns raw in canonical time form, or "" when it is not a time.
func (h Host) Time(raw string) string {
	if t, ok := h.Parse(raw); ok {
		return t.Format(TimeLayout)
	}
	if clockPattern.MatchString(raw) {
		hour, minute, second := h.TimeParts(raw)
		return FormatClock(Hour24(hour), minute, second)
	}
	return ""
}

// Timestamp returns raw in canonical timestamp form, or "".
func (h Host) Timestamp(raw string) string {
	t, ok := h.Parse(raw)
	if !ok {
		return ""
	}
	return t.Format(TimestampLayout)
}

// Number coerces raw to canonical numeric text. Plain decimals keep every
// digit; only sign, leading and trailing zeros are normalized. Text that is
// not a number keeps its sign, digits and first decimal point; text with no
// digits, or a value out of float64 range, is NULL.
func (h Host) Number(raw string) string {
	s := strings.TrimSpace(raw)
	if d, ok := plainDecimal(s); ok {
		return d
	}
	if f, err := cast.ToFloat64E(s); err == nil && s != "" && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if _, err := strconv.ParseFloat(s, 64); errors.Is(err, strconv.ErrRange) {
		return NullNumber
	}

	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			b.WriteRune(r)
			seenDot = true
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	if d, ok := plainDecimal(b.String()); ok {
		return d
	}
	return NullNumber
}

// plainDecimal reports whether s is an optionally signed run of digits with
// at most one point, and returns it without a plus sign, redundant leading
// zeros or trailing fractional zeros.
func plainDecimal(s string) (string, bool) {
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" || !allDigits(whole) || !allDigits(frac) {
		return "", false
	}

	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	frac = strings.TrimRight(frac, "0")

	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (h Host) location() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.UTC
}

// Hour24 reads the leading number of an hour text and adds 12 when the text
// carries a pm marker and the hour is below 12.
func Hour24(hourText string) int {
	digits := strings.TrimLeft(hourText, " ")
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	hour, _ := strconv.Atoi(digits[:end])

	folded := strings.ToLower(strings.ReplaceAll(hourText, ".", ""))
	if strings.Contains(folded, "pm") && hour < 12 {
		hour += 12
	}
	return hour
}

// FormatClock composes a zero-padded HH:MM:SS.
func FormatClock(hour, minute, second int) string {
	return pad2(hour) + ":" + pad2(minute) + ":" + pad2(second)
}

// FormatDate composes a zero-padded YYYY-MM-DD.
func FormatDate(year, month, day int) string {
	y := strconv.Itoa(year)
	for len(y) < 4 {
		y = "0" + y
	}
	return y + "-" + pad2(month) + "-" + pad2(day)
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
