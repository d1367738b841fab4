package normalize

import "testing"

func TestTimeOfDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"8", 480, true},
		{"8:30", 510, true},
		{"08:30", 510, true},
		{"12:10", 730, true},
		{"12:10:45", 730, true}, // 秒數捨去
		{"0:00", 0, true},
		{"23:59", 1439, true},
		{"", 0, false},
		{"nan", 0, false},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"早", 0, false},
		{"8:3:1:2", 0, false},
	}
	for _, c := range cases {
		minutes, ok := TimeOfDay(c.in)
		if ok != c.ok || minutes != c.minutes {
			t.Fatalf("%q want=(%d,%v) got=(%d,%v)", c.in, c.minutes, c.ok, minutes, ok)
		}
	}
}

func TestClockText(t *testing.T) {
	t.Parallel()

	if got := ClockText(730); got != "12:10" {
		t.Fatalf("730 want=12:10 got=%s", got)
	}
	if got := ClockText(65); got != "01:05" {
		t.Fatalf("65 want=01:05 got=%s", got)
	}
}

func TestFirstHourOfRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		hour int
		ok   bool
	}{
		{"8", 8, true},
		{"8:30", 8, true},
		{"8:30-12:00", 8, true},
		{"15:00-18:00", 15, true},
		{"18:30-21:30", 18, true},
		{"", 0, false},
		{"午", 0, false},
	}
	for _, c := range cases {
		hour, ok := FirstHourOfRange(c.in)
		if ok != c.ok || hour != c.hour {
			t.Fatalf("%q want=(%d,%v) got=(%d,%v)", c.in, c.hour, c.ok, hour, ok)
		}
	}
}
