package shipment

import "time"

// Shipment represents one unit of cargo awaiting transport. OwnerID is the
// warehouse principal that created it and is the only principal allowed to
// read, mutate or delete the record.
type Shipment struct {
	ID          string
	OwnerID     string
	Weight      float64
	Volume      float64
	Destination string
	Deadline    time.Time
	Status      Status
	// IsOptimized is a legacy flag maintained by the load-planning subsystem;
	// it is tracked independently of Status and never derived here.
	IsOptimized bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdatePatch holds the validated subset of fields present in a partial
// update. Nil pointers mean the field was absent from the payload.
type UpdatePatch struct {
	Weight      *float64
	Volume      *float64
	Destination *string
	Deadline    *time.Time
	Status      *Status
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UpdatePatch) IsEmpty() bool {
	return p.Weight == nil && p.Volume == nil && p.Destination == nil &&
		p.Deadline == nil && p.Status == nil
}

// Apply builds the successor value from the current shipment and the patch.
// The receiver is not mutated; the whole new value goes to the store's update
// call in one piece.
func (s Shipment) Apply(patch UpdatePatch, now time.Time) Shipment {
	next := s
	if patch.Weight != nil {
		next.Weight = *patch.Weight
	}
	if patch.Volume != nil {
		next.Volume = *patch.Volume
	}
	if patch.Destination != nil {
		next.Destination = *patch.Destination
	}
	if patch.Deadline != nil {
		next.Deadline = *patch.Deadline
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	next.UpdatedAt = now
	return next
}
