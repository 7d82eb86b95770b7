//go:build integration

package shipment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"freightdesk/internal/shipment"
	"freightdesk/pkg/platform/sentinel"
	"freightdesk/pkg/testutil/containers"
)

const shipmentsDDL = `
CREATE TABLE IF NOT EXISTS shipments (
    id           UUID PRIMARY KEY,
    owner_id     UUID NOT NULL,
    weight       DOUBLE PRECISION NOT NULL,
    volume       DOUBLE PRECISION NOT NULL,
    destination  TEXT NOT NULL,
    deadline     TIMESTAMPTZ NOT NULL,
    status       TEXT NOT NULL,
    is_optimized BOOLEAN NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS shipments_owner_created_idx ON shipments (owner_id, created_at DESC);`

type PostgresStoreSuite struct {
	suite.Suite
	pg      *containers.PostgresContainer
	store   *shipment.PostgresStore
	ownerID string
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.pg.Exec(s.T(), shipmentsDDL)
	s.store = shipment.NewPostgresStore(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.pg.Exec(s.T(), `TRUNCATE shipments`)
	s.ownerID = uuid.NewString()
}

func (s *PostgresStoreSuite) newShipment() shipment.Shipment {
	return shipment.Shipment{
		OwnerID:     s.ownerID,
		Weight:      100,
		Volume:      2,
		Destination: "Rotterdam",
		Deadline:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Status:      shipment.StatusPending,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()

	created, err := s.store.Create(ctx, s.newShipment())
	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.False(created.CreatedAt.IsZero())

	found, err := s.store.FindOwned(ctx, created.ID, s.ownerID)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal(created.Destination, found.Destination)
	s.Equal(shipment.StatusPending, found.Status)
	s.True(created.Deadline.Equal(found.Deadline))
}

func (s *PostgresStoreSuite) TestOwnershipScoping() {
	ctx := context.Background()

	created, err := s.store.Create(ctx, s.newShipment())
	s.Require().NoError(err)

	otherOwner := uuid.NewString()
	_, err = s.store.FindOwned(ctx, created.ID, otherOwner)
	s.ErrorIs(err, sentinel.ErrNotFound)

	stolen := created
	stolen.OwnerID = otherOwner
	_, err = s.store.Update(ctx, stolen)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, stolen), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestMalformedIDsReadAsNotFound() {
	ctx := context.Background()

	_, err := s.store.FindOwned(ctx, "not-a-uuid", s.ownerID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindOwned(ctx, uuid.NewString(), "not-a-uuid")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListOwnedOrdering() {
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		created, err := s.store.Create(ctx, s.newShipment())
		s.Require().NoError(err)
		ids = append(ids, created.ID)
		time.Sleep(5 * time.Millisecond)
	}
	_, err := s.store.Create(ctx, shipment.Shipment{
		OwnerID:     uuid.NewString(),
		Weight:      1,
		Volume:      1,
		Destination: "elsewhere",
		Deadline:    time.Now().UTC(),
		Status:      shipment.StatusPending,
	})
	s.Require().NoError(err)

	shipments, err := s.store.ListOwned(ctx, s.ownerID)
	s.Require().NoError(err)
	s.Require().Len(shipments, 3)
	s.Equal(ids[2], shipments[0].ID)
	s.Equal(ids[0], shipments[2].ID)
}

func (s *PostgresStoreSuite) TestCountOwned() {
	ctx := context.Background()

	for _, status := range []shipment.Status{shipment.StatusPending, shipment.StatusPending, shipment.StatusOptimized} {
		sh := s.newShipment()
		sh.Status = status
		_, err := s.store.Create(ctx, sh)
		s.Require().NoError(err)
	}

	total, err := s.store.CountOwned(ctx, s.ownerID, nil)
	s.Require().NoError(err)
	s.Equal(3, total)

	pending := shipment.StatusPending
	n, err := s.store.CountOwned(ctx, s.ownerID, &pending)
	s.Require().NoError(err)
	s.Equal(2, n)

	optimized := shipment.StatusOptimized
	n, err = s.store.CountOwned(ctx, s.ownerID, &optimized)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *PostgresStoreSuite) TestUpdatePersistsWholeRecord() {
	ctx := context.Background()

	created, err := s.store.Create(ctx, s.newShipment())
	s.Require().NoError(err)

	created.Status = shipment.StatusOptimized
	created.Destination = "Hamburg"
	created.UpdatedAt = time.Now().UTC()

	_, err = s.store.Update(ctx, created)
	s.Require().NoError(err)

	found, err := s.store.FindOwned(ctx, created.ID, s.ownerID)
	s.Require().NoError(err)
	s.Equal(shipment.StatusOptimized, found.Status)
	s.Equal("Hamburg", found.Destination)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()

	created, err := s.store.Create(ctx, s.newShipment())
	s.Require().NoError(err)

	s.Require().NoError(s.store.Delete(ctx, created))

	_, err = s.store.FindOwned(ctx, created.ID, s.ownerID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, created), sentinel.ErrNotFound)
}

// Concurrent whole-record updates must each leave a fully consistent row;
// the last write wins.
func (s *PostgresStoreSuite) TestConcurrentUpdates() {
	ctx := context.Background()

	created, err := s.store.Create(ctx, s.newShipment())
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			next := created
			next.Weight = float64(100 + n)
			next.UpdatedAt = time.Now().UTC()
			_, err := s.store.Update(ctx, next)
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	found, err := s.store.FindOwned(ctx, created.ID, s.ownerID)
	s.Require().NoError(err)
	s.GreaterOrEqual(found.Weight, 100.0)
	s.Less(found.Weight, 108.0)
	s.Equal("Rotterdam", found.Destination)
}
