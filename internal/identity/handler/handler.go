package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"freightdesk/internal/identity"
	"freightdesk/internal/platform/middleware"
	"freightdesk/internal/transport/http/shared"
	dErrors "freightdesk/pkg/domain-errors"
)

// Service defines the identity operations the handler needs.
type Service interface {
	Register(ctx context.Context, req identity.RegisterRequest) (identity.User, error)
	Login(ctx context.Context, email, password string) (string, identity.User, error)
	Logout(ctx context.Context, jti string) error
}

// Handler exposes registration, login and logout endpoints.
type Handler struct {
	identity     Service
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator
}

func New(identitySvc Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		identity:     identitySvc,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the auth routes. Logout requires a valid token; the other
// two are anonymous by nature.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/auth/logout", h.handleLogout)
	})
}

type userResponse struct {
	ID        string                     `json:"id"`
	Email     string                     `json:"email"`
	Role      identity.Role              `json:"role"`
	Warehouse *identity.WarehouseProfile `json:"warehouse,omitempty"`
	Dealer    *identity.DealerProfile    `json:"dealer,omitempty"`
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role,
		Warehouse: u.Warehouse,
		Dealer:    u.Dealer,
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req identity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.identity.Register(r.Context(), req)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(r.Context(), "register failed",
				"request_id", middleware.GetRequestID(r.Context()),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, map[string]any{"user": toUserResponse(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, user, err := h.identity.Login(ctx, req.Email, req.Password)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	device := middleware.GetDevice(ctx)
	h.logger.InfoContext(ctx, "login",
		"user_id", user.ID.String(),
		"role", string(user.Role),
		"client_ip", middleware.GetClientIP(ctx),
		"browser", device.Browser,
		"os", device.OS,
		"request_id", middleware.GetRequestID(ctx),
	)

	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserResponse(user),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	jti := middleware.GetTokenID(r.Context())
	if err := h.identity.Logout(r.Context(), jti); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
