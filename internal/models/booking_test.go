package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	b := Booking{StartTime: "10:00", EndTime: "12:00"}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "10:30", "11:30", true},
		{"covers", "09:00", "13:00", true},
		{"front edge", "09:00", "10:30", true},
		{"back edge", "11:30", "13:00", true},
		{"ends at start", "08:00", "10:00", false},
		{"starts at end", "12:00", "14:00", false},
		{"before", "08:00", "09:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Overlaps(tc.start, tc.end))
		})
	}
}
