package identity

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies a principal. Warehouses own and manage shipments; dealers
// exist on the platform but have no shipment permissions.
type Role string

const (
	RoleWarehouse Role = "WAREHOUSE"
	RoleDealer    Role = "DEALER"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleWarehouse || r == RoleDealer
}

// Principal is the authenticated actor attached to a request.
type Principal struct {
	ID   string
	Role Role
}

// WarehouseProfile carries the fields required for warehouse accounts.
type WarehouseProfile struct {
	CompanyName string `json:"companyName"`
	ManagerName string `json:"managerName"`
	Location    string `json:"location"`
}

// DealerProfile carries the fields required for dealer accounts.
type DealerProfile struct {
	TruckTypes   []string `json:"truckTypes"`
	ServiceAreas []string `json:"serviceAreas"`
}

// User is an account record. Exactly one of Warehouse or Dealer is set,
// matching Role; registration validation enforces the variant shape.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	Warehouse    *WarehouseProfile
	Dealer       *DealerProfile
	CreatedAt    time.Time
}

// AsPrincipal projects the user into the request principal shape.
func (u User) AsPrincipal() Principal {
	return Principal{ID: u.ID.String(), Role: u.Role}
}
