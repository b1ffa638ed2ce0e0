// Package datetime implements the pure date/time helper the core reader
// relies on to make its start-date field interpretable: a scalar value
// (alias DateTime) whose integer part counts days since the ordinal
// 1899-12-30 (proleptic Gregorian) and whose fractional part is the
// elapsed fraction of that day.
//
// These functions are independent of rpt.Reader — they operate purely on
// float64 values — and are not on the hot read path; they exist to
// encode/decode and format the simulation start time a Reader yields.
package datetime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DateTime is the number of days since 1899-12-30, with the fractional
// part giving the elapsed portion of that day.
type DateTime float64

// DateDelta is the number of days from the proleptic Gregorian ordinal
// 0001-01-01 to this package's epoch, 1899-12-30. EncodeDate returns
// -DateDelta for a calendar date that does not exist (e.g. 2023-02-29).
const DateDelta = 693594

// SecondsPerDay is the number of seconds in a day, used to convert
// between a DateTime's fractional part and hh:mm:ss.
const SecondsPerDay = 86400.0

// Format selects the field ordering used by Format. The original source
// this package is modeled on keeps the active format in a single
// process-wide variable mutated by a setter; here it is an explicit
// parameter on every call instead.
type Format int

const (
	YMD Format = iota
	MDY
	DMY
)

var monthNames = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

var daysPerMonth = [2][12]int{
	{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}, // normal
	{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}, // leap
}

// epochJDN is the Julian Day Number of 1899-12-30, this package's day 0.
const epochJDN = 2415019

// IsLeap reports whether year is a leap year under the Gregorian rule:
// divisible by 4, excluding centuries not divisible by 400.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month (1-12) of year.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	leap := 0
	if IsLeap(year) {
		leap = 1
	}
	return daysPerMonth[leap][month-1]
}

// julianDayNumber converts a proleptic Gregorian calendar date to a
// Julian Day Number using the Fliegel & Van Flandern algorithm.
func julianDayNumber(y, m, d int) int64 {
	a := (14 - m) / 12
	y2 := int64(y) + 4800 - int64(a)
	m2 := int64(m) + 12*int64(a) - 3
	return int64(d) + (153*m2+2)/5 + 365*y2 + y2/4 - y2/100 + y2/400 - 32045
}

// civilFromJDN is the inverse of julianDayNumber.
func civilFromJDN(jdn int64) (y, m, d int) {
	p := jdn + 32044
	q := (4*p + 3) / 146097
	r := p - 146097*q/4
	a := (4*r + 3) / 1461
	b := r - 1461*a/4
	c := (5*b + 2) / 153
	dd := b - (153*c+2)/5 + 1
	mm := c + 3 - 12*(c/10)
	yy := 100*q + a - 4800 + c/10
	return int(yy), int(mm), int(dd)
}

// EncodeDate returns the DateTime value for the calendar date (year,
// month, day). If the date does not exist (bad month, or a day beyond
// the month's length — including non-leap February 29), it returns the
// sentinel -DateDelta instead.
func EncodeDate(year, month, day int) DateTime {
	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, month) {
		return -DateDelta
	}
	return DateTime(julianDayNumber(year, month, day) - epochJDN)
}

// DecodeDate returns the calendar (year, month, day) for date's integer
// part.
func DecodeDate(date DateTime) (year, month, day int) {
	days := int64(math.Floor(float64(date)))
	return civilFromJDN(days + epochJDN)
}

// EncodeTime returns the fractional-day DateTime value for a time of
// day. Out-of-range fields are not validated; callers pass values
// already checked by DecodeTime's own output range.
func EncodeTime(hour, minute, second int) DateTime {
	total := hour*3600 + minute*60 + second
	return DateTime(float64(total) / SecondsPerDay)
}

// DecodeTime returns the hour, minute, and second encoded by date's
// fractional part, rounded to the nearest second.
func DecodeTime(date DateTime) (hour, minute, second int) {
	frac := float64(date) - math.Floor(float64(date))
	total := int(math.Round(frac * SecondsPerDay))
	if total >= 86400 {
		total = 86399
	}
	hour = total / 3600
	minute = (total % 3600) / 60
	second = total % 60
	return
}

// DayOfWeek returns the day of the week for date, with 1 = Sunday,
// derived from the fact that the epoch (1899-12-30) was a Saturday.
func DayOfWeek(date DateTime) int {
	days := int64(math.Floor(float64(date)))
	idx := ((days % 7) + 7 + 6) % 7 // 0 = Sunday .. 6 = Saturday
	return int(idx) + 1
}

// MonthOfYear returns the calendar month (1-12) for date.
func MonthOfYear(date DateTime) int {
	_, m, _ := DecodeDate(date)
	return m
}

// DayOfYear returns the 1-based ordinal day within date's calendar year.
func DayOfYear(date DateTime) int {
	y, _, _ := DecodeDate(date)
	jan1 := EncodeDate(y, 1, 1)
	return int(math.Floor(float64(date))-math.Floor(float64(jan1))) + 1
}

// HourOfDay returns the hour (0-23) encoded by date's fractional part.
func HourOfDay(date DateTime) int {
	h, _, _ := DecodeTime(date)
	return h
}

// Format renders date's date portion using f's field ordering, with a
// three-letter uppercase month name.
func (f Format) Format(date DateTime) string {
	y, m, d := DecodeDate(date)
	name := monthNames[m-1]
	switch f {
	case MDY:
		return fmt.Sprintf("%3s-%02d-%4d", name, d, y)
	case DMY:
		return fmt.Sprintf("%02d-%3s-%4d", d, name, y)
	default: // YMD
		return fmt.Sprintf("%4d-%3s-%02d", y, name, d)
	}
}

// TimeString renders date's time-of-day portion as hh:mm:ss.
func TimeString(date DateTime) string {
	h, m, s := DecodeTime(date)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func findMonth(s string) int {
	u := strings.ToUpper(s)
	for i, name := range monthNames {
		if u == name {
			return i + 1
		}
	}
	return 0
}

// ParseDate parses a date string in any of the three field orderings,
// accepting '-' or '/' as the separator and either a numeric or
// three-letter month name.
func ParseDate(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	var sep byte
	switch {
	case strings.ContainsRune(s, '-'):
		sep = '-'
	case strings.ContainsRune(s, '/'):
		sep = '/'
	default:
		return 0, fmt.Errorf("datetime: no separator found in %q", s)
	}
	parts := strings.Split(s, string(sep))
	if len(parts) != 3 {
		return 0, fmt.Errorf("datetime: expected 3 fields in %q", s)
	}

	fields := make([]int, 3)
	monthField := -1
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			fields[i] = n
			continue
		}
		if mm := findMonth(p); mm != 0 {
			fields[i] = mm
			monthField = i
			continue
		}
		return 0, fmt.Errorf("datetime: invalid field %q in %q", p, s)
	}

	var y, m, d int
	switch {
	case fields[0] > 31 && monthField <= 1:
		// Y-M-D
		y, m, d = fields[0], fields[1], fields[2]
	case monthField == 0:
		// M-D-Y
		m, d, y = fields[0], fields[1], fields[2]
	case monthField == 1:
		// D-M-Y
		d, m, y = fields[0], fields[1], fields[2]
	default:
		// Ambiguous numeric-only date: assume Y-M-D if first field could
		// be a year, else fall back to M-D-Y.
		if fields[0] > 12 {
			y, m, d = fields[0], fields[1], fields[2]
		} else {
			m, d, y = fields[0], fields[1], fields[2]
		}
	}

	dt := EncodeDate(y, m, d)
	if dt == -DateDelta {
		return dt, fmt.Errorf("datetime: %q is not a valid calendar date", s)
	}
	return dt, nil
}

// ParseTime parses an "hh:mm:ss" string.
func ParseTime(s string) (DateTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("datetime: expected hh:mm:ss, got %q", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("datetime: invalid time field %q in %q", p, s)
		}
		vals[i] = n
	}
	return EncodeTime(vals[0], vals[1], vals[2]), nil
}

// AddSeconds returns date advanced by seconds, carrying through the
// hours/minutes/seconds fraction rather than accumulating directly in
// fractional days.
func AddSeconds(date DateTime, seconds float64) DateTime {
	days := math.Floor(float64(date))
	daySeconds := (float64(date) - days) * SecondsPerDay
	total := daySeconds + seconds
	carry := math.Floor(total / SecondsPerDay)
	total -= carry * SecondsPerDay
	if total < 0 {
		total += SecondsPerDay
		carry--
	}
	return DateTime(days + carry + total/SecondsPerDay)
}

// AddDays combines a date and a duration, both expressed as DateTime
// values, carrying the combined time-of-day fraction through to the day
// count rather than relying on raw float addition.
func AddDays(date1, date2 DateTime) DateTime {
	d1 := math.Floor(float64(date1))
	t1 := (float64(date1) - d1) * SecondsPerDay
	d2 := math.Floor(float64(date2))
	t2 := (float64(date2) - d2) * SecondsPerDay

	total := t1 + t2
	carry := math.Floor(total / SecondsPerDay)
	total -= carry * SecondsPerDay

	return DateTime(d1 + d2 + carry + total/SecondsPerDay)
}

// TimeDiff returns the number of whole seconds between date1 and date2
// (date1 - date2).
func TimeDiff(date1, date2 DateTime) int64 {
	return int64(math.Round(float64(date1-date2) * SecondsPerDay))
}
