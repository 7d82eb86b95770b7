package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{"Pending", StatusPending, true},
		{"Optimized", StatusOptimized, true},
		{"Booked", StatusBooked, true},
		{"In Transit", StatusInTransit, true},
		{"pending", "", false},
		{"IN TRANSIT", "", false},
		{"InTransit", "", false},
		{"Shipped", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidTransition(t *testing.T) {
	all := []Status{StatusPending, StatusOptimized, StatusBooked, StatusInTransit}

	allowed := map[Status]Status{
		StatusPending:   StatusOptimized,
		StatusOptimized: StatusBooked,
		StatusBooked:    StatusInTransit,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from] == to
			assert.Equal(t, want, IsValidTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestIsValidTransitionUnknownStates(t *testing.T) {
	assert.False(t, IsValidTransition(StatusInTransit, StatusPending))
	assert.False(t, IsValidTransition("Shipped", StatusPending))
	assert.False(t, IsValidTransition(StatusPending, "Shipped"))
	assert.False(t, IsValidTransition("", ""))
}
