package repositories

import (
	"context"

	"digitalium/internal/domain/models/org"
)

// UnitStore defines data access operations for organization units.
// Lookups signal absence by returning (nil, nil).
type UnitStore interface {
	// Insert stores a new unit.
	Insert(ctx context.Context, unit *org.OrganizationUnit) error

	// Update replaces the stored unit with the same ID.
	Update(ctx context.Context, unit *org.OrganizationUnit) error

	// Get retrieves a unit by ID, (nil, nil) when absent.
	Get(ctx context.Context, orgID, id string) (*org.OrganizationUnit, error)

	// Root retrieves the organization root unit, (nil, nil) when the
	// organization has not been provisioned.
	Root(ctx context.Context, orgID string) (*org.OrganizationUnit, error)

	// ListChildren lists units whose ParentUnitID equals parentID.
	// parentID nil lists the root level.
	ListChildren(ctx context.Context, orgID string, parentID *string) ([]org.OrganizationUnit, error)

	// ListAll lists every unit of the organization (flat).
	ListAll(ctx context.Context, orgID string) ([]org.OrganizationUnit, error)
}
