package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/pkg/platform/sentinel"
)

func newStoredUser(email string) User {
	return User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         RoleWarehouse,
		Warehouse: &WarehouseProfile{
			CompanyName: "Acme Logistics",
			ManagerName: "Jo Driver",
			Location:    "Rotterdam",
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestInMemoryUserStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		store := NewInMemoryUserStore()
		user := newStoredUser("ops@acme.example")
		require.NoError(t, store.Create(ctx, user))

		byEmail, err := store.FindByEmail(ctx, "ops@acme.example")
		require.NoError(t, err)
		assert.Equal(t, user, byEmail)

		byID, err := store.FindByID(ctx, user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, user, byID)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		store := NewInMemoryUserStore()
		require.NoError(t, store.Create(ctx, newStoredUser("Ops@Acme.example")))

		_, err := store.FindByEmail(ctx, "ops@acme.example")
		assert.NoError(t, err)
	})

	t.Run("duplicate email conflicts regardless of case", func(t *testing.T) {
		store := NewInMemoryUserStore()
		require.NoError(t, store.Create(ctx, newStoredUser("ops@acme.example")))

		err := store.Create(ctx, newStoredUser("OPS@ACME.EXAMPLE"))
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("missing users are not found", func(t *testing.T) {
		store := NewInMemoryUserStore()

		_, err := store.FindByEmail(ctx, "nobody@acme.example")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		_, err = store.FindByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestMemoryTRL(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked until ttl expires", func(t *testing.T) {
		trl := NewMemoryTRL()
		require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Hour))

		revoked, err := trl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entries read as not revoked", func(t *testing.T) {
		trl := NewMemoryTRL()
		require.NoError(t, trl.RevokeToken(ctx, "jti-1", -time.Second))

		revoked, err := trl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("unknown jti is not revoked", func(t *testing.T) {
		trl := NewMemoryTRL()

		revoked, err := trl.IsRevoked(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("empty jti is a no-op", func(t *testing.T) {
		trl := NewMemoryTRL()
		require.NoError(t, trl.RevokeToken(ctx, "", time.Hour))

		revoked, err := trl.IsRevoked(ctx, "")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
