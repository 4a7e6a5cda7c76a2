package edtf

import "testing"

func TestParseSingleDates(t *testing.T) {
	tests := []struct {
		in    string
		year  int
		month int
		day   int
	}{
		{"2020", 2020, 0, 0},
		{"2020-06", 2020, 6, 0},
		{"2020-06-03", 2020, 6, 3},
		{"1998-21", 1998, SeasonSpring, 0},
		{"1998-24", 1998, SeasonWinter, 0},
	}
	for _, tt := range tests {
		v, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.in, err)
		}
		d := v.Start
		if d.Year != tt.year || d.Month != tt.month || d.Day != tt.day {
			t.Errorf("Parse(%q) = %d-%d-%d, want %d-%d-%d",
				tt.in, d.Year, d.Month, d.Day, tt.year, tt.month, tt.day)
		}
	}
}

func TestParseQualifiers(t *testing.T) {
	v, err := Parse("1984?")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !v.Start.Uncertain || v.Start.Approximate {
		t.Errorf("1984? parsed uncertain=%v approximate=%v, want true false",
			v.Start.Uncertain, v.Start.Approximate)
	}

	v, err = Parse("1984~")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if v.Start.Uncertain || !v.Start.Approximate {
		t.Errorf("1984~ parsed uncertain=%v approximate=%v, want false true",
			v.Start.Uncertain, v.Start.Approximate)
	}

	v, err = Parse("1984%")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !v.Start.Uncertain || !v.Start.Approximate {
		t.Errorf("1984%% should be both uncertain and approximate")
	}
}

func TestParseUnspecifiedDigits(t *testing.T) {
	v, err := Parse("19XX")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if v.Start.Year != 1900 || v.Start.UnspecifiedDigits != 2 {
		t.Errorf("19XX parsed year=%d unspecified=%d, want 1900 2",
			v.Start.Year, v.Start.UnspecifiedDigits)
	}

	// Legacy lowercase form.
	v, err = Parse("199u")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if v.Start.Year != 1990 || v.Start.UnspecifiedDigits != 1 {
		t.Errorf("199u parsed year=%d unspecified=%d, want 1990 1",
			v.Start.Year, v.Start.UnspecifiedDigits)
	}
}

func TestParseIntervals(t *testing.T) {
	v, err := Parse("2004-06/2006-08")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !v.Interval() {
		t.Fatal("expected interval")
	}
	if v.Start.Year != 2004 || v.End.Year != 2006 {
		t.Errorf("interval years = %d/%d, want 2004/2006", v.Start.Year, v.End.Year)
	}

	v, err = Parse("1985/..")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !v.OpenEnd || v.Start.Year != 1985 {
		t.Errorf("1985/.. parsed openEnd=%v start=%v", v.OpenEnd, v.Start)
	}

	v, err = Parse("../1985")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !v.OpenStart || v.End.Year != 1985 {
		t.Errorf("../1985 parsed openStart=%v end=%v", v.OpenStart, v.End)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "20", "2020-13", "2020-21-03", "June 1998", "2020-06-45"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestParseLenientRecoversFreeFormDates(t *testing.T) {
	v, err := ParseLenient("June 3, 1998")
	if err != nil {
		t.Fatalf("ParseLenient returned error: %v", err)
	}
	if v.Start.Year != 1998 || v.Start.Month != 6 || v.Start.Day != 3 {
		t.Errorf("got %d-%d-%d, want 1998-6-3", v.Start.Year, v.Start.Month, v.Start.Day)
	}

	if _, err := ParseLenient("not a date at all"); err == nil {
		t.Error("ParseLenient accepted garbage, want error")
	}
}

func TestSortKeyOrdersSeasonsAfterMonths(t *testing.T) {
	dec, _ := Parse("1998-12")
	spring, _ := Parse("1998-21")
	if dec.Start.SortKey() >= spring.Start.SortKey() {
		t.Errorf("December key %d should sort before Spring key %d",
			dec.Start.SortKey(), spring.Start.SortKey())
	}
}
