package identity

import (
	"net/mail"
	"strings"
)

// RegisterRequest is the registration payload. The profile variant must match
// the requested role.
type RegisterRequest struct {
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	Role      Role              `json:"role"`
	Warehouse *WarehouseProfile `json:"warehouse,omitempty"`
	Dealer    *DealerProfile    `json:"dealer,omitempty"`
}

const minPasswordLength = 8

// ValidateRegistration checks the payload per role variant and returns every
// violated rule, never just the first.
func ValidateRegistration(req RegisterRequest) []string {
	var errs []string

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, "email is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, "email must be a valid address")
	}

	if len(req.Password) < minPasswordLength {
		errs = append(errs, "password must be at least 8 characters")
	}

	switch req.Role {
	case RoleWarehouse:
		if req.Warehouse == nil {
			errs = append(errs, "warehouse profile is required for role WAREHOUSE")
			break
		}
		if req.Dealer != nil {
			errs = append(errs, "dealer profile is not allowed for role WAREHOUSE")
		}
		if strings.TrimSpace(req.Warehouse.CompanyName) == "" {
			errs = append(errs, "companyName is required")
		}
		if strings.TrimSpace(req.Warehouse.ManagerName) == "" {
			errs = append(errs, "managerName is required")
		}
		if strings.TrimSpace(req.Warehouse.Location) == "" {
			errs = append(errs, "location is required")
		}
	case RoleDealer:
		if req.Dealer == nil {
			errs = append(errs, "dealer profile is required for role DEALER")
			break
		}
		if req.Warehouse != nil {
			errs = append(errs, "warehouse profile is not allowed for role DEALER")
		}
		if len(req.Dealer.TruckTypes) == 0 {
			errs = append(errs, "truckTypes must not be empty")
		}
		if len(req.Dealer.ServiceAreas) == 0 {
			errs = append(errs, "serviceAreas must not be empty")
		}
	default:
		errs = append(errs, "role must be WAREHOUSE or DEALER")
	}

	return errs
}
