//go:build integration

package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"freightdesk/internal/identity"
	"freightdesk/pkg/platform/sentinel"
	"freightdesk/pkg/testutil/containers"
)

const usersDDL = `
CREATE TABLE IF NOT EXISTS users (
    id         UUID PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    password   TEXT NOT NULL,
    role       TEXT NOT NULL,
    profile    JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);`

type PostgresUserStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *identity.PostgresUserStore
}

func TestPostgresUserStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.pg.Exec(s.T(), usersDDL)
	s.store = identity.NewPostgresUserStore(s.pg.DB)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.pg.Exec(s.T(), `TRUNCATE users`)
}

func warehouseUser(email string) identity.User {
	return identity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         identity.RoleWarehouse,
		Warehouse: &identity.WarehouseProfile{
			CompanyName: "Acme Logistics",
			ManagerName: "Jo Driver",
			Location:    "Rotterdam",
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	user := warehouseUser("ops@acme.example")

	s.Require().NoError(s.store.Create(ctx, user))

	byEmail, err := s.store.FindByEmail(ctx, "ops@acme.example")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)
	s.Equal(identity.RoleWarehouse, byEmail.Role)
	s.Require().NotNil(byEmail.Warehouse)
	s.Equal("Acme Logistics", byEmail.Warehouse.CompanyName)
	s.Nil(byEmail.Dealer)

	byID, err := s.store.FindByID(ctx, user.ID.String())
	s.Require().NoError(err)
	s.Equal(user.Email, byID.Email)
}

func (s *PostgresUserStoreSuite) TestEmailsAreStoredLowercased() {
	ctx := context.Background()
	user := warehouseUser("Ops@Acme.example")

	s.Require().NoError(s.store.Create(ctx, user))

	found, err := s.store.FindByEmail(ctx, "OPS@ACME.EXAMPLE")
	s.Require().NoError(err)
	s.Equal("ops@acme.example", found.Email)
}

func (s *PostgresUserStoreSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, warehouseUser("ops@acme.example")))
	s.ErrorIs(s.store.Create(ctx, warehouseUser("ops@acme.example")), sentinel.ErrConflict)
}

func (s *PostgresUserStoreSuite) TestDealerProfileRoundTrip() {
	ctx := context.Background()
	user := identity.User{
		ID:           uuid.New(),
		Email:        "fleet@haul.example",
		PasswordHash: "$2a$10$hash",
		Role:         identity.RoleDealer,
		Dealer: &identity.DealerProfile{
			TruckTypes:   []string{"flatbed", "reefer"},
			ServiceAreas: []string{"NL", "DE"},
		},
		CreatedAt: time.Now().UTC(),
	}

	s.Require().NoError(s.store.Create(ctx, user))

	found, err := s.store.FindByEmail(ctx, user.Email)
	s.Require().NoError(err)
	s.Require().NotNil(found.Dealer)
	s.Equal([]string{"flatbed", "reefer"}, found.Dealer.TruckTypes)
	s.Nil(found.Warehouse)
}

func (s *PostgresUserStoreSuite) TestMissingUsers() {
	ctx := context.Background()

	_, err := s.store.FindByEmail(ctx, "nobody@acme.example")
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByID(ctx, uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByID(ctx, "not-a-uuid")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
