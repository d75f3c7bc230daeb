package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"12.345", 1235, true},
		{"12.344", 1234, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestCentsFromFloat(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
		ok  bool
	}{
		{12.345, 1235, true}, // half-up even where float math sits below .5
		{12.35, 1235, true},
		{10.01, 1001, true},
		{50, 5000, true},
		{0.005, 1, true},
		{0, 0, false},
		{-3.5, 0, false},
	}
	for _, tc := range cases {
		got, err := CentsFromFloat(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%v expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%v expected error", tc.in)
		}
	}
}

// Rounding must be idempotent: re-rounding any amount the system produced
// leaves it unchanged.
func TestRoundingIdempotent(t *testing.T) {
	for _, v := range []float64{12.345, 0.01, 37.65, 10.01, 99.995} {
		once, err := CentsFromFloat(v)
		if err != nil {
			t.Fatalf("round %v: %v", v, err)
		}
		twice, err := CentsFromFloat(Money{Cents: once}.Float64())
		if err != nil {
			t.Fatalf("re-round %v: %v", v, err)
		}
		if once != twice {
			t.Fatalf("rounding not idempotent for %v: %d != %d", v, once, twice)
		}
	}
}
