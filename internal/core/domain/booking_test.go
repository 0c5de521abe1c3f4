package domain

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookingOverlaps(t *testing.T) {
	b := &Booking{
		StartDate: day(2022, time.December, 15),
		EndDate:   day(2022, time.December, 20),
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical range", day(2022, time.December, 15), day(2022, time.December, 20), true},
		{"straddles the end", day(2022, time.December, 18), day(2022, time.December, 25), true},
		{"straddles the start", day(2022, time.December, 10), day(2022, time.December, 16), true},
		{"fully contained", day(2022, time.December, 16), day(2022, time.December, 18), true},
		{"fully containing", day(2022, time.December, 10), day(2022, time.December, 25), true},
		{"adjacent after", day(2022, time.December, 20), day(2022, time.December, 25), false},
		{"adjacent before", day(2022, time.December, 10), day(2022, time.December, 15), false},
		{"disjoint", day(2023, time.January, 1), day(2023, time.January, 5), false},
	}
	for _, tc := range cases {
		if got := b.Overlaps(tc.start, tc.end); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNights(t *testing.T) {
	if n := Nights(day(2022, time.December, 15), day(2022, time.December, 20)); n != 5 {
		t.Errorf("expected 5 nights, got %d", n)
	}
	if n := Nights(day(2022, time.December, 15), day(2022, time.December, 16)); n != 1 {
		t.Errorf("expected 1 night, got %d", n)
	}
}

func TestBookingCostAndDebit(t *testing.T) {
	cost := BookingCost(150, day(2022, time.December, 15), day(2022, time.December, 20))
	if cost != 750 {
		t.Errorf("expected cost 750, got %v", cost)
	}
	if DebitAmount(cost) != 750 {
		t.Errorf("whole cost must debit exactly, got %d", DebitAmount(cost))
	}
	if DebitAmount(10.25) != 11 {
		t.Errorf("fractional cost must round up, got %d", DebitAmount(10.25))
	}
}
