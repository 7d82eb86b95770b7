package identity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"freightdesk/pkg/platform/sentinel"
)

// PostgresUserStore persists accounts in PostgreSQL. The role-specific
// profile is stored as a jsonb document keyed by the role column.
//
// Schema:
//
//	CREATE TABLE users (
//	    id         UUID PRIMARY KEY,
//	    email      TEXT NOT NULL UNIQUE,
//	    password   TEXT NOT NULL,
//	    role       TEXT NOT NULL,
//	    profile    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresUserStore) Create(ctx context.Context, user User) error {
	profile, err := marshalProfile(user)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password, role, profile, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, strings.ToLower(user.Email), user.PasswordHash, string(user.Role), profile, user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password, role, profile, created_at
		FROM users WHERE email = $1`,
		strings.ToLower(email),
	)
	return scanUser(row)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return User{}, sentinel.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password, role, profile, created_at
		FROM users WHERE id = $1`,
		uid,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var role string
	var profile []byte
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &profile, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, sentinel.ErrNotFound
		}
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	user.Role = Role(role)
	if err := unmarshalProfile(&user, profile); err != nil {
		return User{}, err
	}
	return user, nil
}

func marshalProfile(user User) ([]byte, error) {
	switch user.Role {
	case RoleWarehouse:
		return json.Marshal(user.Warehouse)
	case RoleDealer:
		return json.Marshal(user.Dealer)
	default:
		return nil, fmt.Errorf("unknown role %q", user.Role)
	}
}

func unmarshalProfile(user *User, raw []byte) error {
	switch user.Role {
	case RoleWarehouse:
		user.Warehouse = &WarehouseProfile{}
		return json.Unmarshal(raw, user.Warehouse)
	case RoleDealer:
		user.Dealer = &DealerProfile{}
		return json.Unmarshal(raw, user.Dealer)
	default:
		return fmt.Errorf("unknown role %q", user.Role)
	}
}
