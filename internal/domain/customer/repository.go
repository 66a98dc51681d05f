package customer

import (
	"context"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by CustomerRepository
const (
	FilterIsActive = "is_active"
)

// CustomerRepository defines persistence for customers
type CustomerRepository interface {
	shared.TenantRepository[Customer]

	// ExistsByEmail checks whether a live customer in the tenant uses the email
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error)
}

// Filter keys understood by LocationRepository
const (
	FilterCustomerID = "customer_id"
	FilterCity       = "city"
	FilterIsPrimary  = "is_primary"
)

// LocationRepository defines persistence for customer locations
type LocationRepository interface {
	shared.TenantRepository[Location]

	// SaveAsPrimary saves l and unsets the primary flag on the customer's other
	// locations, all or nothing
	SaveAsPrimary(ctx context.Context, l *Location) error
}
