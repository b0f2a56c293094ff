package org

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"digitalium/internal/config"
	"digitalium/internal/domain"
	models "digitalium/internal/domain/models/org"
	"digitalium/internal/domain/repositories"
	"digitalium/internal/domain/services"
	orgSvc "digitalium/internal/domain/services/org"
)

type unitGraphService struct {
	units    repositories.UnitStore
	resolver orgSvc.PresetResolver
	ids      services.IDGenerator
	clock    services.Clock
	logger   *slog.Logger
}

// NewUnitGraphService creates the organization unit hierarchy service.
func NewUnitGraphService(
	units repositories.UnitStore,
	resolver orgSvc.PresetResolver,
	ids services.IDGenerator,
	clock services.Clock,
	logger *slog.Logger,
) orgSvc.UnitGraphService {
	return &unitGraphService{
		units:    units,
		resolver: resolver,
		ids:      ids,
		clock:    clock,
		logger:   logger,
	}
}

// CreateUnit creates a unit under the given parent with a generated code.
func (s *unitGraphService) CreateUnit(ctx context.Context, req *orgSvc.CreateUnitRequest) (*models.OrganizationUnit, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OrgID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxUnitNameLength)),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	var parent *models.OrganizationUnit
	if req.ParentUnitID != nil {
		var err error
		parent, err = s.units.Get(ctx, req.OrgID, *req.ParentUnitID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent unit %s not found", *req.ParentUnitID)}
		}
	} else {
		// Only provisioning creates the root; a second root would fork
		// the hierarchy.
		root, err := s.units.Root(ctx, req.OrgID)
		if err != nil {
			return nil, err
		}
		if root != nil {
			return nil, &domain.ConflictError{
				Message:      "organization already has a root unit",
				ResourceType: "unit",
				ResourceID:   root.ID,
			}
		}
	}

	code, err := s.generateCode(ctx, req.OrgID, req.Name, parent)
	if err != nil {
		return nil, err
	}

	unit := &models.OrganizationUnit{
		ID:           s.ids.New("unit"),
		OrgID:        req.OrgID,
		Name:         req.Name,
		Code:         code,
		ParentUnitID: req.ParentUnitID,
		Config:       req.Config,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.units.Insert(ctx, unit); err != nil {
		return nil, err
	}

	path, err := s.UnitPath(ctx, unit.OrgID, unit.ID)
	if err != nil {
		s.logger.Warn("failed to compute unit path", "unit_id", unit.ID, "error", err)
		path = "/" + unit.Name
	}
	unit.Path = path

	s.logger.Info("unit created",
		"id", unit.ID,
		"name", unit.Name,
		"code", unit.Code,
		"org_id", unit.OrgID,
		"parent_unit_id", unit.ParentUnitID,
		"path", unit.Path,
	)

	return unit, nil
}

// GetUnit retrieves a unit with its computed path.
func (s *unitGraphService) GetUnit(ctx context.Context, orgID, id string) (*models.OrganizationUnit, error) {
	unit, err := s.units.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("unit %s not found", id)}
	}

	path, err := s.UnitPath(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	unit.Path = path
	return unit, nil
}

// ListUnits lists every unit of the organization with computed paths.
func (s *unitGraphService) ListUnits(ctx context.Context, orgID string) ([]models.OrganizationUnit, error) {
	units, err := s.units.ListAll(ctx, orgID)
	if err != nil {
		return nil, err
	}
	for i := range units {
		path, err := s.UnitPath(ctx, orgID, units[i].ID)
		if err != nil {
			return nil, err
		}
		units[i].Path = path
	}
	return units, nil
}

// ListChildren lists immediate child units.
func (s *unitGraphService) ListChildren(ctx context.Context, orgID string, parentID *string) ([]models.OrganizationUnit, error) {
	return s.units.ListChildren(ctx, orgID, parentID)
}

// UnitPath composes the unit's full path by walking the parent chain.
// Recomputed on demand, never cached, so it cannot go stale.
func (s *unitGraphService) UnitPath(ctx context.Context, orgID, id string) (string, error) {
	chain, err := s.chain(ctx, orgID, id)
	if err != nil {
		return "", err
	}
	if chain == nil {
		return "", &domain.NotFoundError{Message: fmt.Sprintf("unit %s not found", id)}
	}
	names := make([]string, len(chain))
	for i, unit := range chain {
		names[i] = unit.Name
	}
	return "/" + strings.Join(names, "/"), nil
}

// SetUnitConfig replaces a unit's explicit configuration override layer.
func (s *unitGraphService) SetUnitConfig(ctx context.Context, orgID, id string, cfg *models.ArchiveConfig) (*models.OrganizationUnit, error) {
	unit, err := s.units.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("unit %s not found", id)}
	}

	unit.Config = cfg
	if err := s.units.Update(ctx, unit); err != nil {
		return nil, err
	}

	s.logger.Info("unit config updated", "id", id, "org_id", orgID)
	return s.GetUnit(ctx, orgID, id)
}

// EffectiveArchiveConfig resolves the unit's configuration field by field:
// the global default first, then every override layer from the root unit
// down to the unit itself, nearer layers winning per field.
func (s *unitGraphService) EffectiveArchiveConfig(ctx context.Context, orgID, id string) (*models.EffectiveArchiveConfig, error) {
	chain, err := s.chain(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if chain == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("unit %s not found", id)}
	}

	effective := s.resolver.BaseArchiveConfig()
	for _, unit := range chain {
		effective = effective.Merge(unit.Config)
	}
	return &effective, nil
}

// chain walks parent links from id to the root unit, root first.
// Returns (nil, nil) when id is unknown; fails with CycleDetectedError on
// a corrupted hierarchy.
func (s *unitGraphService) chain(ctx context.Context, orgID, id string) ([]models.OrganizationUnit, error) {
	visited := make(map[string]struct{})
	var reversed []models.OrganizationUnit

	currentID := id
	for {
		unit, err := s.units.Get(ctx, orgID, currentID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			if len(reversed) == 0 {
				return nil, nil
			}
			break
		}
		if _, seen := visited[unit.ID]; seen {
			return nil, &domain.CycleDetectedError{
				Message: fmt.Sprintf("unit hierarchy revisits %q", unit.ID),
			}
		}
		visited[unit.ID] = struct{}{}
		reversed = append(reversed, *unit)

		if unit.ParentUnitID == nil {
			break
		}
		currentID = *unit.ParentUnitID
	}

	chain := make([]models.OrganizationUnit, len(reversed))
	for i := range reversed {
		chain[len(reversed)-1-i] = reversed[i]
	}
	return chain, nil
}

// generateCode derives a unit code from the name initials, prefixed by
// the parent code, bumping a numeric suffix until unique within the
// organization.
func (s *unitGraphService) generateCode(ctx context.Context, orgID, name string, parent *models.OrganizationUnit) (string, error) {
	base := initialsOf(name)
	if parent != nil && parent.Code != "" {
		base = parent.Code + "-" + base
	}

	existing, err := s.units.ListAll(ctx, orgID)
	if err != nil {
		return "", err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		taken[u.Code] = struct{}{}
	}

	if _, clash := taken[base]; !clash {
		return base, nil
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if _, clash := taken[candidate]; !clash {
			return candidate, nil
		}
	}
}
