package cli

import (
	"strings"
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.0, "$0.00"},
		{1234.5, "$1234.50"},
		{0.005, "$0.01"},   // half rounds away from zero
		{0.125, "$0.13"},   // not banker's rounding
		{99.999, "$100.00"},
		{123.45, "$123.45"},
		{-3.5, "-$3.50"},   // minus ahead of symbol
		{-0.001, "$0.00"},  // rounds to zero, no negative zero
	}

	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCurrencyShape(t *testing.T) {
	amounts := []float64{0, 0.1, 1, 9.99, 10, 123.456, 99999.9, 1e6}
	for _, a := range amounts {
		got := FormatCurrency(a)
		if !strings.HasPrefix(got, "$") {
			t.Fatalf("FormatCurrency(%v) = %q, missing currency symbol", a, got)
		}
		dot := strings.IndexByte(got, '.')
		if dot < 0 || len(got)-dot-1 != 2 {
			t.Fatalf("FormatCurrency(%v) = %q, want exactly two decimals", a, got)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(nil); got != "—" {
		t.Fatalf("FormatCount(nil) = %q, want unknown marker", got)
	}
	zero := 0
	if got := FormatCount(&zero); got != "0" {
		t.Fatalf("FormatCount(0) = %q, want \"0\"", got)
	}
	big := 1234567
	if got := FormatCount(&big); got != "1,234,567" {
		t.Fatalf("FormatCount(1234567) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-4500:    "-4,500",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-2 * time.Second), "just now"},
		{now.Add(-45 * time.Second), "45s ago"},
		{now.Add(-3 * time.Minute), "3m ago"},
		{now.Add(-2 * time.Hour), "2h ago"},
	}
	for _, c := range cases {
		if got := FormatAge(c.t, now); got != c.want {
			t.Fatalf("FormatAge(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestTruncateName(t *testing.T) {
	if got := TruncateName("Amazon Elastic Compute Cloud", 20); got != "Amazon Elastic Co..." {
		t.Fatalf("TruncateName = %q", got)
	}
	if got := TruncateName("Amazon S3", 20); got != "Amazon S3" {
		t.Fatalf("short name modified: %q", got)
	}
}
