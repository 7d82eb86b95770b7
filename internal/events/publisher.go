// Package events publishes shipment lifecycle events for downstream
// consumers (tracking, notifications). Emission is best-effort: a publish
// failure never fails the business operation that triggered it.
package events

import (
	"context"
	"time"
)

const (
	TypeShipmentCreated = "shipment.created"
	TypeShipmentUpdated = "shipment.updated"
	TypeShipmentDeleted = "shipment.deleted"
)

// Event is one lifecycle notification.
type Event struct {
	Type       string    `json:"type"`
	ShipmentID string    `json:"shipmentId"`
	OwnerID    string    `json:"ownerId"`
	Occurred   time.Time `json:"occurred"`
	Payload    any       `json:"payload,omitempty"`
}

// Publisher is the emission port. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close()                               {}
