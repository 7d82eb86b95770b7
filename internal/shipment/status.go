package shipment

// Status is the shipment's position in its forward-only lifecycle.
type Status string

// Canonical status spellings. "In Transit" carries the space on the wire.
const (
	StatusPending   Status = "Pending"
	StatusOptimized Status = "Optimized"
	StatusBooked    Status = "Booked"
	StatusInTransit Status = "In Transit"
)

// statusFlow is the single source of truth for lifecycle ordering. A
// transition is legal only between adjacent entries, left to right.
var statusFlow = []Status{StatusPending, StatusOptimized, StatusBooked, StatusInTransit}

// ParseStatus matches a raw string against the canonical spellings,
// case-sensitively.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range statusFlow {
		if raw == string(s) {
			return s, true
		}
	}
	return "", false
}

func statusIndex(s Status) int {
	for i, known := range statusFlow {
		if s == known {
			return i
		}
	}
	return -1
}

// IsValidTransition reports whether requested is exactly the next state after
// current. Equal, backward, skipping, and unknown states are all invalid;
// "In Transit" is terminal.
func IsValidTransition(current, requested Status) bool {
	from := statusIndex(current)
	to := statusIndex(requested)
	if from < 0 || to < 0 {
		return false
	}
	return to == from+1
}
