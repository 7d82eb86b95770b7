package shipment

import (
	"freightdesk/internal/identity"
	dErrors "freightdesk/pkg/domain-errors"
)

// Operation names a shipment operation for the authorization gate.
type Operation string

const (
	OpCreate  Operation = "create"
	OpList    Operation = "list"
	OpUpdate  Operation = "update"
	OpDelete  Operation = "delete"
	OpMetrics Operation = "metrics"
)

// Authorize is the stateless role gate. Every shipment operation requires an
// authenticated warehouse principal; anything else is rejected before
// validation or storage is touched. Ownership is a separate, later check
// performed against the loaded record.
func Authorize(principal *identity.Principal, _ Operation) error {
	if principal == nil || principal.ID == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if principal.Role != identity.RoleWarehouse {
		return dErrors.New(dErrors.CodeForbidden, "insufficient permissions")
	}
	return nil
}
