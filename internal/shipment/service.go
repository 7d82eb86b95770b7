package shipment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"freightdesk/internal/events"
	"freightdesk/internal/identity"
	"freightdesk/internal/platform/metrics"
	dErrors "freightdesk/pkg/domain-errors"
	"freightdesk/pkg/platform/sentinel"
)

// MetricsReport is the aggregate view over one owner's shipments.
type MetricsReport struct {
	TotalShipments         int     `json:"totalShipments"`
	OptimizedShipments     int     `json:"optimizedShipments"`
	PendingShipments       int     `json:"pendingShipments"`
	OptimizationPercentage float64 `json:"optimizationPercentage"`
}

// Service orchestrates the five shipment operations: role gate, validation,
// ownership-scoped lookup, state-machine check, storage, response shaping.
type Service struct {
	store     Store
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewService(store Store, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		tracer:    otel.Tracer("freightdesk/internal/shipment"),
	}
}

// Create validates the payload and persists a new shipment for the
// principal. Status is always forced to Pending and the optimization flag to
// false, regardless of what the payload claims.
func (s *Service) Create(ctx context.Context, principal *identity.Principal, payload map[string]any) (Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "shipment.create")
	defer span.End()

	if err := Authorize(principal, OpCreate); err != nil {
		return Shipment{}, err
	}

	input, fieldErrs := ValidateCreate(payload)
	if len(fieldErrs) > 0 {
		return Shipment{}, dErrors.NewWithDetails(dErrors.CodeValidation, "invalid shipment payload", fieldErrs)
	}

	created, err := s.store.Create(ctx, Shipment{
		OwnerID:     principal.ID,
		Weight:      input.Weight,
		Volume:      input.Volume,
		Destination: input.Destination,
		Deadline:    input.Deadline,
		Status:      StatusPending,
		IsOptimized: false,
	})
	if err != nil {
		return Shipment{}, s.storageFailure(ctx, "create", err)
	}

	span.SetAttributes(attribute.String("shipment.id", created.ID))
	s.metrics.IncShipmentsCreated()
	s.emit(ctx, events.TypeShipmentCreated, created)
	return created, nil
}

// List returns the principal's shipments, most recent first.
func (s *Service) List(ctx context.Context, principal *identity.Principal) ([]Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "shipment.list")
	defer span.End()

	if err := Authorize(principal, OpList); err != nil {
		return nil, err
	}

	shipments, err := s.store.ListOwned(ctx, principal.ID)
	if err != nil {
		return nil, s.storageFailure(ctx, "list", err)
	}
	return shipments, nil
}

// Metrics fans out three independent counts and derives the optimization
// percentage. The counts are not read under a shared snapshot; momentary
// inconsistency under concurrent writes is accepted.
func (s *Service) Metrics(ctx context.Context, principal *identity.Principal) (MetricsReport, error) {
	ctx, span := s.tracer.Start(ctx, "shipment.metrics")
	defer span.End()

	if err := Authorize(principal, OpMetrics); err != nil {
		return MetricsReport{}, err
	}

	var total, optimized, pending int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.CountOwned(gctx, principal.ID, nil)
		total = n
		return err
	})
	g.Go(func() error {
		status := StatusOptimized
		n, err := s.store.CountOwned(gctx, principal.ID, &status)
		optimized = n
		return err
	})
	g.Go(func() error {
		status := StatusPending
		n, err := s.store.CountOwned(gctx, principal.ID, &status)
		pending = n
		return err
	})
	if err := g.Wait(); err != nil {
		return MetricsReport{}, s.storageFailure(ctx, "metrics", err)
	}

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(optimized)/float64(total)*100*100) / 100
	}

	return MetricsReport{
		TotalShipments:         total,
		OptimizedShipments:     optimized,
		PendingShipments:       pending,
		OptimizationPercentage: percentage,
	}, nil
}

// Update merges a validated partial payload into the owned shipment. A
// status change must be exactly one step forward in the lifecycle.
func (s *Service) Update(ctx context.Context, principal *identity.Principal, id string, payload map[string]any) (Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "shipment.update", trace.WithAttributes(attribute.String("shipment.id", id)))
	defer span.End()

	if err := Authorize(principal, OpUpdate); err != nil {
		return Shipment{}, err
	}

	patch, fieldErrs := ValidatePartialUpdate(payload)
	if len(fieldErrs) > 0 {
		return Shipment{}, dErrors.NewWithDetails(dErrors.CodeValidation, "invalid shipment payload", fieldErrs)
	}
	if patch.IsEmpty() {
		return Shipment{}, dErrors.New(dErrors.CodeNoFields, "no fields to update")
	}

	current, err := s.store.FindOwned(ctx, id, principal.ID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Shipment{}, dErrors.New(dErrors.CodeNotFound, "shipment not found")
		}
		return Shipment{}, s.storageFailure(ctx, "update", err)
	}

	if patch.Status != nil && !IsValidTransition(current.Status, *patch.Status) {
		return Shipment{}, dErrors.New(dErrors.CodeInvalidTransition,
			fmt.Sprintf("invalid status transition from %s to %s", current.Status, *patch.Status))
	}

	updated, err := s.store.Update(ctx, current.Apply(patch, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Shipment{}, dErrors.New(dErrors.CodeNotFound, "shipment not found")
		}
		return Shipment{}, s.storageFailure(ctx, "update", err)
	}

	s.metrics.IncShipmentsUpdated()
	s.emit(ctx, events.TypeShipmentUpdated, updated)
	return updated, nil
}

// Delete removes the owned shipment unless it is already in transit.
func (s *Service) Delete(ctx context.Context, principal *identity.Principal, id string) error {
	ctx, span := s.tracer.Start(ctx, "shipment.delete", trace.WithAttributes(attribute.String("shipment.id", id)))
	defer span.End()

	if err := Authorize(principal, OpDelete); err != nil {
		return err
	}

	current, err := s.store.FindOwned(ctx, id, principal.ID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "shipment not found")
		}
		return s.storageFailure(ctx, "delete", err)
	}

	if current.Status == StatusInTransit {
		return dErrors.New(dErrors.CodeConflict, "cannot delete a shipment in transit")
	}

	if err := s.store.Delete(ctx, current); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "shipment not found")
		}
		return s.storageFailure(ctx, "delete", err)
	}

	s.metrics.IncShipmentsDeleted()
	s.emit(ctx, events.TypeShipmentDeleted, current)
	return nil
}

// storageFailure logs the collaborator error with an operation tag and
// returns the generic, non-leaking domain error.
func (s *Service) storageFailure(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "shipment storage failure",
		"op", op,
		"error", err.Error(),
	)
	return dErrors.New(dErrors.CodeInternal, "storage failure")
}

func (s *Service) emit(ctx context.Context, eventType string, shipment Shipment) {
	event := events.Event{
		Type:       eventType,
		ShipmentID: shipment.ID,
		OwnerID:    shipment.OwnerID,
		Occurred:   time.Now().UTC(),
		Payload: map[string]any{
			"status":      string(shipment.Status),
			"destination": shipment.Destination,
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			"type", eventType,
			"shipment_id", shipment.ID,
			"error", err.Error(),
		)
	}
}
