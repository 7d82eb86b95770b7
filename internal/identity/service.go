package identity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"freightdesk/internal/jwttoken"
	dErrors "freightdesk/pkg/domain-errors"
	"freightdesk/pkg/platform/sentinel"
)

// Service handles registration, login and logout. Password hashing and token
// issuance are the only credential concerns it owns; verification happens in
// the auth middleware.
type Service struct {
	users    UserStore
	tokens   *jwttoken.JWTService
	revoked  TokenRevocationList
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewService(users UserStore, tokens *jwttoken.JWTService, revoked TokenRevocationList, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		revoked:  revoked,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if errs := ValidateRegistration(req); len(errs) > 0 {
		return User{}, dErrors.NewWithDetails(dErrors.CodeValidation, "invalid registration payload", errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, dErrors.New(dErrors.CodeInternal, "failed to process credentials")
	}

	user := User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Warehouse:    req.Warehouse,
		Dealer:       req.Dealer,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return User{}, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
		}
		s.logger.ErrorContext(ctx, "register: user store failure", "error", err)
		return User{}, dErrors.New(dErrors.CodeInternal, "registration failed")
	}
	return user, nil
}

// Login verifies credentials and issues an access token. A missing user and
// a wrong password produce the same error to avoid account probing.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", User{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		s.logger.ErrorContext(ctx, "login: user store failure", "error", err)
		return "", User{}, dErrors.New(dErrors.CodeInternal, "login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", User{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, string(user.Role), s.tokenTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "login: token issuance failure", "error", err)
		return "", User{}, dErrors.New(dErrors.CodeInternal, "login failed")
	}
	return token, user, nil
}

// Logout revokes the presented token's jti for the remainder of the token
// lifetime.
func (s *Service) Logout(ctx context.Context, jti string) error {
	if err := s.revoked.RevokeToken(ctx, jti, s.tokenTTL); err != nil {
		s.logger.ErrorContext(ctx, "logout: revocation failure", "error", err)
		return dErrors.New(dErrors.CodeInternal, "logout failed")
	}
	return nil
}
