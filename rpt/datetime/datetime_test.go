package datetime

import "testing"

func TestEncodeDecodeDateRoundTrip(t *testing.T) {
	cases := []struct{ y, m, d int }{
		{1899, 12, 30},
		{1900, 1, 1},
		{2000, 2, 29},
		{2023, 3, 15},
		{2024, 2, 29},
		{9999, 12, 31},
	}
	for _, c := range cases {
		dt := EncodeDate(c.y, c.m, c.d)
		gy, gm, gd := DecodeDate(dt)
		if gy != c.y || gm != c.m || gd != c.d {
			t.Errorf("EncodeDate(%d,%d,%d) round-trip = (%d,%d,%d)", c.y, c.m, c.d, gy, gm, gd)
		}
	}
}

func TestEncodeDateRejectsNonLeapFeb29(t *testing.T) {
	if dt := EncodeDate(2023, 2, 29); dt != -DateDelta {
		t.Errorf("EncodeDate(2023,2,29) = %v; want %v", dt, DateTime(-DateDelta))
	}
	if dt := EncodeDate(2024, 2, 29); dt == -DateDelta {
		t.Errorf("EncodeDate(2024,2,29) returned the invalid-date sentinel")
	}
}

func TestEncodeDateRejectsBadMonth(t *testing.T) {
	if dt := EncodeDate(2023, 13, 1); dt != -DateDelta {
		t.Errorf("EncodeDate(2023,13,1) = %v; want sentinel", dt)
	}
	if dt := EncodeDate(2023, 0, 1); dt != -DateDelta {
		t.Errorf("EncodeDate(2023,0,1) = %v; want sentinel", dt)
	}
}

func TestIsLeapYearLaw(t *testing.T) {
	cases := []struct {
		year int
		leap bool
	}{
		{1900, false},
		{2000, true},
		{2024, true},
		{2023, false},
		{2100, false},
		{2400, true},
	}
	for _, c := range cases {
		if got := IsLeap(c.year); got != c.leap {
			t.Errorf("IsLeap(%d) = %v; want %v", c.year, got, c.leap)
		}
	}
}

func TestEncodeDecodeTimeRoundTrip(t *testing.T) {
	cases := []struct{ h, m, s int }{
		{0, 0, 0},
		{12, 30, 45},
		{23, 59, 59},
	}
	for _, c := range cases {
		dt := EncodeTime(c.h, c.m, c.s)
		gh, gm, gs := DecodeTime(dt)
		if gh != c.h || gm != c.m || gs != c.s {
			t.Errorf("EncodeTime(%d,%d,%d) round-trip = (%d,%d,%d)", c.h, c.m, c.s, gh, gm, gs)
		}
	}
}

func TestDayOfWeekEpoch(t *testing.T) {
	// 1899-12-30, day 0, is a Saturday.
	if got := DayOfWeek(EncodeDate(1899, 12, 30)); got != 7 {
		t.Errorf("DayOfWeek(epoch) = %d; want 7 (Saturday)", got)
	}
	// 1900-01-01 is two days later, a Monday.
	if got := DayOfWeek(EncodeDate(1900, 1, 1)); got != 2 {
		t.Errorf("DayOfWeek(1900-01-01) = %d; want 2 (Monday)", got)
	}
}

func TestDayOfYear(t *testing.T) {
	if got := DayOfYear(EncodeDate(2023, 1, 1)); got != 1 {
		t.Errorf("DayOfYear(2023-01-01) = %d; want 1", got)
	}
	if got := DayOfYear(EncodeDate(2023, 12, 31)); got != 365 {
		t.Errorf("DayOfYear(2023-12-31) = %d; want 365", got)
	}
	if got := DayOfYear(EncodeDate(2024, 12, 31)); got != 366 {
		t.Errorf("DayOfYear(2024-12-31) = %d; want 366 (leap year)", got)
	}
}

func TestFormatOrderings(t *testing.T) {
	dt := EncodeDate(2023, 3, 5)
	if got := YMD.Format(dt); got != "2023-MAR-05" {
		t.Errorf("YMD.Format = %q; want %q", got, "2023-MAR-05")
	}
	if got := MDY.Format(dt); got != "MAR-05-2023" {
		t.Errorf("MDY.Format = %q; want %q", got, "MAR-05-2023")
	}
	if got := DMY.Format(dt); got != "05-MAR-2023" {
		t.Errorf("DMY.Format = %q; want %q", got, "05-MAR-2023")
	}
}

func TestTimeString(t *testing.T) {
	dt := EncodeDate(2023, 3, 5) + EncodeTime(6, 7, 8)
	if got := TimeString(dt); got != "06:07:08" {
		t.Errorf("TimeString = %q; want %q", got, "06:07:08")
	}
}

func TestParseDateOrderings(t *testing.T) {
	want := EncodeDate(2023, 3, 5)
	cases := []string{
		"2023-03-05",
		"2023-MAR-05",
		"03-05-2023",
		"MAR-05-2023",
		"05-MAR-2023",
		"2023/03/05",
	}
	for _, s := range cases {
		got, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDate(%q) = %v; want %v", s, got, want)
		}
	}
}

func TestParseDateRejectsInvalid(t *testing.T) {
	if _, err := ParseDate("2023-02-29"); err == nil {
		t.Error("ParseDate(2023-02-29) expected error for non-leap Feb 29")
	}
	if _, err := ParseDate("not a date"); err == nil {
		t.Error("ParseDate(garbage) expected error")
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("06:07:08")
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	want := EncodeTime(6, 7, 8)
	if got != want {
		t.Errorf("ParseTime(06:07:08) = %v; want %v", got, want)
	}
}

func TestAddSecondsCarriesIntoNextDay(t *testing.T) {
	start := EncodeDate(2023, 3, 5) + EncodeTime(23, 59, 0)
	got := AddSeconds(start, 120)
	y, m, d := DecodeDate(got)
	h, mi, s := DecodeTime(got)
	if y != 2023 || m != 3 || d != 6 || h != 0 || mi != 1 || s != 0 {
		t.Errorf("AddSeconds carried to %d-%d-%d %02d:%02d:%02d; want 2023-3-6 00:01:00", y, m, d, h, mi, s)
	}
}

func TestAddSecondsCarriesIntoPreviousDay(t *testing.T) {
	start := EncodeDate(2023, 3, 5) + EncodeTime(0, 0, 30)
	got := AddSeconds(start, -60)
	y, m, d := DecodeDate(got)
	h, mi, s := DecodeTime(got)
	if y != 2023 || m != 3 || d != 4 || h != 23 || mi != 59 || s != 30 {
		t.Errorf("AddSeconds carried back to %d-%d-%d %02d:%02d:%02d; want 2023-3-4 23:59:30", y, m, d, h, mi, s)
	}
}

func TestAddDaysCarriesTimeFraction(t *testing.T) {
	date := EncodeDate(2023, 3, 5) + EncodeTime(12, 0, 0)
	duration := EncodeTime(18, 0, 0) // 18 hours as a bare duration
	got := AddDays(date, duration)
	y, m, d := DecodeDate(got)
	h, mi, _ := DecodeTime(got)
	if y != 2023 || m != 3 || d != 6 || h != 6 || mi != 0 {
		t.Errorf("AddDays = %d-%d-%d %02d:%02d; want 2023-3-6 06:00", y, m, d, h, mi)
	}
}

func TestTimeDiff(t *testing.T) {
	a := EncodeDate(2023, 3, 5) + EncodeTime(12, 0, 0)
	b := EncodeDate(2023, 3, 5) + EncodeTime(10, 0, 0)
	if got := TimeDiff(a, b); got != 7200 {
		t.Errorf("TimeDiff = %d; want 7200", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2023, 2); got != 28 {
		t.Errorf("DaysInMonth(2023,2) = %d; want 28", got)
	}
	if got := DaysInMonth(2024, 2); got != 29 {
		t.Errorf("DaysInMonth(2024,2) = %d; want 29", got)
	}
	if got := DaysInMonth(2023, 4); got != 30 {
		t.Errorf("DaysInMonth(2023,4) = %d; want 30", got)
	}
}
