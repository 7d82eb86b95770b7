package shipment

import "context"

// Store is the persistence port for shipments. Every read and write is
// scoped by owner; implementations return sentinel.ErrNotFound both for
// absent records and for records owned by another principal, so existence
// never leaks across owners.
type Store interface {
	// Create persists a new record, assigning id and timestamps.
	Create(ctx context.Context, s Shipment) (Shipment, error)
	// FindOwned returns the shipment only if it belongs to ownerID.
	FindOwned(ctx context.Context, id, ownerID string) (Shipment, error)
	// ListOwned returns all of ownerID's shipments, most recent first.
	ListOwned(ctx context.Context, ownerID string) ([]Shipment, error)
	// CountOwned counts ownerID's shipments, optionally filtered by status.
	CountOwned(ctx context.Context, ownerID string, status *Status) (int, error)
	// Update persists the merged record. Last write wins.
	Update(ctx context.Context, s Shipment) (Shipment, error)
	// Delete removes the record permanently.
	Delete(ctx context.Context, s Shipment) error
}
