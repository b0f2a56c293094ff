package org

import (
	"context"

	"digitalium/internal/domain/models/org"
)

// UnitGraphService models the organization's internal unit hierarchy and
// resolves per-unit effective configuration.
type UnitGraphService interface {
	// CreateUnit creates a unit under the given parent with a generated
	// code unique within its sibling set.
	CreateUnit(ctx context.Context, req *CreateUnitRequest) (*org.OrganizationUnit, error)

	// GetUnit retrieves a unit with its computed path.
	GetUnit(ctx context.Context, orgID, id string) (*org.OrganizationUnit, error)

	// ListUnits lists every unit of the organization with computed paths.
	ListUnits(ctx context.Context, orgID string) ([]org.OrganizationUnit, error)

	// ListChildren lists immediate child units.
	ListChildren(ctx context.Context, orgID string, parentID *string) ([]org.OrganizationUnit, error)

	// UnitPath composes the unit's full path by walking the parent chain,
	// recomputed on demand so it can never go stale.
	UnitPath(ctx context.Context, orgID, id string) (string, error)

	// SetUnitConfig replaces a unit's explicit configuration override layer.
	SetUnitConfig(ctx context.Context, orgID, id string, cfg *org.ArchiveConfig) (*org.OrganizationUnit, error)

	// EffectiveArchiveConfig resolves the unit's configuration by field-wise
	// inheritance from the unit up to the organization/template default.
	EffectiveArchiveConfig(ctx context.Context, orgID, id string) (*org.EffectiveArchiveConfig, error)
}

// CreateUnitRequest represents a unit creation request.
type CreateUnitRequest struct {
	OrgID        string             `json:"org_id"`
	Name         string             `json:"name"`
	ParentUnitID *string            `json:"parent_unit_id,omitempty"`
	Config       *org.ArchiveConfig `json:"config,omitempty"`
}
