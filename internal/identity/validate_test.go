package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func warehouseRequest() RegisterRequest {
	return RegisterRequest{
		Email:    "ops@acme.example",
		Password: "s3cret-pass",
		Role:     RoleWarehouse,
		Warehouse: &WarehouseProfile{
			CompanyName: "Acme Logistics",
			ManagerName: "Jo Driver",
			Location:    "Rotterdam",
		},
	}
}

func dealerRequest() RegisterRequest {
	return RegisterRequest{
		Email:    "fleet@haul.example",
		Password: "s3cret-pass",
		Role:     RoleDealer,
		Dealer: &DealerProfile{
			TruckTypes:   []string{"flatbed", "reefer"},
			ServiceAreas: []string{"NL", "DE"},
		},
	}
}

func TestValidateRegistration(t *testing.T) {
	t.Run("valid warehouse", func(t *testing.T) {
		assert.Empty(t, ValidateRegistration(warehouseRequest()))
	})

	t.Run("valid dealer", func(t *testing.T) {
		assert.Empty(t, ValidateRegistration(dealerRequest()))
	})

	t.Run("missing email", func(t *testing.T) {
		req := warehouseRequest()
		req.Email = "  "
		assert.Contains(t, ValidateRegistration(req), "email is required")
	})

	t.Run("malformed email", func(t *testing.T) {
		req := warehouseRequest()
		req.Email = "not-an-address"
		assert.Contains(t, ValidateRegistration(req), "email must be a valid address")
	})

	t.Run("short password", func(t *testing.T) {
		req := warehouseRequest()
		req.Password = "short"
		assert.Contains(t, ValidateRegistration(req), "password must be at least 8 characters")
	})

	t.Run("unknown role", func(t *testing.T) {
		req := warehouseRequest()
		req.Role = "ADMIN"
		assert.Contains(t, ValidateRegistration(req), "role must be WAREHOUSE or DEALER")
	})

	t.Run("warehouse without profile", func(t *testing.T) {
		req := warehouseRequest()
		req.Warehouse = nil
		assert.Equal(t, []string{"warehouse profile is required for role WAREHOUSE"}, ValidateRegistration(req))
	})

	t.Run("warehouse with blank profile fields", func(t *testing.T) {
		req := warehouseRequest()
		req.Warehouse = &WarehouseProfile{}
		assert.ElementsMatch(t, []string{
			"companyName is required",
			"managerName is required",
			"location is required",
		}, ValidateRegistration(req))
	})

	t.Run("warehouse with a dealer profile attached", func(t *testing.T) {
		req := warehouseRequest()
		req.Dealer = &DealerProfile{TruckTypes: []string{"flatbed"}, ServiceAreas: []string{"NL"}}
		assert.Contains(t, ValidateRegistration(req), "dealer profile is not allowed for role WAREHOUSE")
	})

	t.Run("dealer without profile", func(t *testing.T) {
		req := dealerRequest()
		req.Dealer = nil
		assert.Equal(t, []string{"dealer profile is required for role DEALER"}, ValidateRegistration(req))
	})

	t.Run("dealer with empty lists", func(t *testing.T) {
		req := dealerRequest()
		req.Dealer = &DealerProfile{}
		assert.ElementsMatch(t, []string{
			"truckTypes must not be empty",
			"serviceAreas must not be empty",
		}, ValidateRegistration(req))
	})

	t.Run("collects across sections", func(t *testing.T) {
		req := RegisterRequest{Email: "bad", Password: "x", Role: RoleWarehouse}
		assert.ElementsMatch(t, []string{
			"email must be a valid address",
			"password must be at least 8 characters",
			"warehouse profile is required for role WAREHOUSE",
		}, ValidateRegistration(req))
	})
}
