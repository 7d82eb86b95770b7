package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"freightdesk/internal/identity"
	"freightdesk/internal/platform/middleware"
	"freightdesk/internal/shipment"
	"freightdesk/internal/transport/http/shared"
	dErrors "freightdesk/pkg/domain-errors"
)

// Service defines the shipment operations the handler needs.
type Service interface {
	Create(ctx context.Context, principal *identity.Principal, payload map[string]any) (shipment.Shipment, error)
	List(ctx context.Context, principal *identity.Principal) ([]shipment.Shipment, error)
	Metrics(ctx context.Context, principal *identity.Principal) (shipment.MetricsReport, error)
	Update(ctx context.Context, principal *identity.Principal, id string, payload map[string]any) (shipment.Shipment, error)
	Delete(ctx context.Context, principal *identity.Principal, id string) error
}

// Handler exposes the shipment REST endpoints.
type Handler struct {
	shipments    Service
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator
}

func New(shipments Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		shipments:    shipments,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the shipment routes. The role gate runs in middleware so a
// dealer is turned away before any body parsing happens; the service applies
// the same gate again for non-HTTP callers.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Use(middleware.RequireRole(string(identity.RoleWarehouse), h.logger))
		r.Post("/shipments", h.handleCreate)
		r.Get("/shipments", h.handleList)
		r.Get("/shipments/metrics", h.handleMetrics)
		r.Put("/shipments/{id}", h.handleUpdate)
		r.Delete("/shipments/{id}", h.handleDelete)
	})
}

// shipmentResponse is the full record shape returned by create and update.
type shipmentResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Weight      float64   `json:"weight"`
	Volume      float64   `json:"volume"`
	Destination string    `json:"destination"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status"`
	IsOptimized bool      `json:"isOptimized"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// listItem is the projection used by the list endpoint.
type listItem struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Weight      float64   `json:"weight"`
	Volume      float64   `json:"volume"`
	Destination string    `json:"destination"`
	Deadline    time.Time `json:"deadline"`
}

func toShipmentResponse(s shipment.Shipment) shipmentResponse {
	return shipmentResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Weight:      s.Weight,
		Volume:      s.Volume,
		Destination: s.Destination,
		Deadline:    s.Deadline,
		Status:      string(s.Status),
		IsOptimized: s.IsOptimized,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func principalFromContext(ctx context.Context) *identity.Principal {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil
	}
	return &identity.Principal{ID: userID, Role: identity.Role(middleware.GetRole(ctx))}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.shipments.Create(r.Context(), principalFromContext(r.Context()), payload)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]any{"shipment": toShipmentResponse(created)})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.shipments.List(r.Context(), principalFromContext(r.Context()))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	items := make([]listItem, len(shipments))
	for i, s := range shipments {
		items[i] = listItem{
			ID:          s.ID,
			Status:      string(s.Status),
			Weight:      s.Weight,
			Volume:      s.Volume,
			Destination: s.Destination,
			Deadline:    s.Deadline,
		}
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"shipments": items})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	report, err := h.shipments.Metrics(r.Context(), principalFromContext(r.Context()))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"metrics": report})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.shipments.Update(r.Context(), principalFromContext(r.Context()), id, payload)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"shipment": toShipmentResponse(updated)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.shipments.Delete(r.Context(), principalFromContext(r.Context()), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
