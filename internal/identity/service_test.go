package identity

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"freightdesk/internal/jwttoken"
	dErrors "freightdesk/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *MemoryTRL, *jwttoken.JWTService) {
	t.Helper()
	trl := NewMemoryTRL()
	tokens := jwttoken.NewJWTService("test-signing-key", "freightdesk", "freightdesk-api", trl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewInMemoryUserStore(), tokens, trl, time.Hour, logger), trl, tokens
}

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a warehouse account", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		user, err := svc.Register(ctx, warehouseRequest())
		require.NoError(t, err)

		assert.NotEqual(t, "", user.ID.String())
		assert.Equal(t, RoleWarehouse, user.Role)
		require.NotNil(t, user.Warehouse)
		assert.Nil(t, user.Dealer)

		// The stored credential is a hash, never the raw password.
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("rejects an invalid payload with details", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Register(ctx, RegisterRequest{})
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
		assert.NotEmpty(t, dErrors.DetailsOf(err))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Register(ctx, warehouseRequest())
		require.NoError(t, err)

		_, err = svc.Register(ctx, warehouseRequest())
		assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(err))
		assert.EqualError(t, err, "an account with this email already exists")
	})
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a verifiable token", func(t *testing.T) {
		svc, _, tokens := newTestService(t)

		registered, err := svc.Register(ctx, warehouseRequest())
		require.NoError(t, err)

		token, user, err := svc.Login(ctx, registered.Email, "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)

		claims, err := tokens.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID.String(), claims.UserID)
		assert.Equal(t, "WAREHOUSE", claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		registered, err := svc.Register(ctx, warehouseRequest())
		require.NoError(t, err)

		_, _, errWrongPassword := svc.Login(ctx, registered.Email, "wrong-pass")
		_, _, errUnknownEmail := svc.Login(ctx, "nobody@acme.example", "s3cret-pass")

		assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(errWrongPassword))
		assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(errUnknownEmail))
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})
}

func TestServiceLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newTestService(t)

	registered, err := svc.Register(ctx, warehouseRequest())
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, registered.Email, "s3cret-pass")
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.ID))

	_, err = tokens.ValidateToken(ctx, token)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	assert.EqualError(t, err, "token has been revoked")
}
