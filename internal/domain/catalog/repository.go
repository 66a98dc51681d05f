package catalog

import (
	"context"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by ServiceRepository
const (
	FilterIsActive = "is_active"
)

// ServiceRepository defines persistence for the service catalog
type ServiceRepository interface {
	shared.TenantRepository[Service]

	// ExistsByCode checks whether a live service in the tenant uses the code
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}
