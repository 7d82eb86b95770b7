package shipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"freightdesk/pkg/platform/sentinel"
)

// PostgresStore persists shipments in PostgreSQL through database/sql.
//
// Schema:
//
//	CREATE TABLE shipments (
//	    id           UUID PRIMARY KEY,
//	    owner_id     UUID NOT NULL,
//	    weight       DOUBLE PRECISION NOT NULL,
//	    volume       DOUBLE PRECISION NOT NULL,
//	    destination  TEXT NOT NULL,
//	    deadline     TIMESTAMPTZ NOT NULL,
//	    status       TEXT NOT NULL,
//	    is_optimized BOOLEAN NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL,
//	    updated_at   TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX shipments_owner_created_idx ON shipments (owner_id, created_at DESC);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const shipmentColumns = `id, owner_id, weight, volume, destination, deadline, status, is_optimized, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, shipment Shipment) (Shipment, error) {
	now := time.Now().UTC()
	shipment.ID = uuid.NewString()
	shipment.CreatedAt = now
	shipment.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shipments (`+shipmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		shipment.ID, shipment.OwnerID, shipment.Weight, shipment.Volume,
		shipment.Destination, shipment.Deadline, string(shipment.Status),
		shipment.IsOptimized, shipment.CreatedAt, shipment.UpdatedAt,
	)
	if err != nil {
		return Shipment{}, fmt.Errorf("insert shipment: %w", err)
	}
	return shipment, nil
}

func (s *PostgresStore) FindOwned(ctx context.Context, id, ownerID string) (Shipment, error) {
	if !validUUIDs(id, ownerID) {
		return Shipment{}, sentinel.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT `+shipmentColumns+`
		FROM shipments WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	shipment, err := scanShipment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Shipment{}, sentinel.ErrNotFound
		}
		return Shipment{}, fmt.Errorf("find shipment: %w", err)
	}
	return shipment, nil
}

func (s *PostgresStore) ListOwned(ctx context.Context, ownerID string) ([]Shipment, error) {
	if !validUUIDs(ownerID) {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+shipmentColumns+`
		FROM shipments WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []Shipment
	for rows.Next() {
		shipment, err := scanShipment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		shipments = append(shipments, shipment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	return shipments, nil
}

func (s *PostgresStore) CountOwned(ctx context.Context, ownerID string, status *Status) (int, error) {
	if !validUUIDs(ownerID) {
		return 0, nil
	}
	var count int
	var err error
	if status != nil {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM shipments WHERE owner_id = $1 AND status = $2`,
			ownerID, string(*status),
		).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM shipments WHERE owner_id = $1`,
			ownerID,
		).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count shipments: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Update(ctx context.Context, shipment Shipment) (Shipment, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE shipments
		SET weight = $3, volume = $4, destination = $5, deadline = $6,
		    status = $7, is_optimized = $8, updated_at = $9
		WHERE id = $1 AND owner_id = $2`,
		shipment.ID, shipment.OwnerID, shipment.Weight, shipment.Volume,
		shipment.Destination, shipment.Deadline, string(shipment.Status),
		shipment.IsOptimized, shipment.UpdatedAt,
	)
	if err != nil {
		return Shipment{}, fmt.Errorf("update shipment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Shipment{}, fmt.Errorf("update shipment: %w", err)
	}
	if affected == 0 {
		return Shipment{}, sentinel.ErrNotFound
	}
	return shipment, nil
}

func (s *PostgresStore) Delete(ctx context.Context, shipment Shipment) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM shipments WHERE id = $1 AND owner_id = $2`,
		shipment.ID, shipment.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanShipment(scan func(dest ...any) error) (Shipment, error) {
	var shipment Shipment
	var status string
	err := scan(
		&shipment.ID, &shipment.OwnerID, &shipment.Weight, &shipment.Volume,
		&shipment.Destination, &shipment.Deadline, &status,
		&shipment.IsOptimized, &shipment.CreatedAt, &shipment.UpdatedAt,
	)
	if err != nil {
		return Shipment{}, err
	}
	shipment.Status = Status(status)
	return shipment, nil
}

// validUUIDs guards queries against malformed identifiers; a bad uuid can
// only mean "no such record", never a storage failure.
func validUUIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
