package org

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"digitalium/internal/domain"
	models "digitalium/internal/domain/models/org"
	"digitalium/internal/domain/repositories"
	filingSvc "digitalium/internal/domain/services/filing"
	orgSvc "digitalium/internal/domain/services/org"
)

type setupOrchestrator struct {
	resolver  orgSvc.PresetResolver
	unitGraph orgSvc.UnitGraphService
	archive   filingSvc.ArchiveService
	units     repositories.UnitStore
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewSetupOrchestrator composes the preset resolver, the unit graph and
// the archive tree into the organization provisioning flow.
func NewSetupOrchestrator(
	resolver orgSvc.PresetResolver,
	unitGraph orgSvc.UnitGraphService,
	archive filingSvc.ArchiveService,
	units repositories.UnitStore,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) orgSvc.SetupOrchestrator {
	return &setupOrchestrator{
		resolver:  resolver,
		unitGraph: unitGraph,
		archive:   archive,
		units:     units,
		txManager: txManager,
		logger:    logger,
	}
}

// Provision runs the three provisioning stages: resolve the template
// preset, instantiate the unit hierarchy, attach workflows and
// configuration and seed the archive category roots. Resolution happens
// before any write, so an unknown template creates nothing.
func (s *setupOrchestrator) Provision(ctx context.Context, req *orgSvc.ProvisionRequest) (*orgSvc.ProvisionResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.OrgID == "" {
		return nil, &domain.ValidationError{Message: "org_id is required"}
	}

	// Stage 1: resolve.
	preset, err := s.resolver.Preset(req.Template)
	if err != nil {
		return nil, err
	}
	defaultConfig, err := s.resolver.DefaultArchiveConfig(req.Template)
	if err != nil {
		return nil, err
	}

	existing, err := s.units.Root(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("organization %s is already provisioned", req.OrgID),
			ResourceType: "unit",
			ResourceID:   existing.ID,
		}
	}

	rootName := req.Name
	if rootName == "" {
		rootName = preset.DisplayName
	}

	result := &orgSvc.ProvisionResult{
		OrgID:                   req.OrgID,
		Template:                req.Template,
		ArchiveConfig:           defaultConfig,
		RequiresDoubleSignature: preset.RequiresDoubleSignature,
	}

	// Stages 2 and 3 run inside one transaction scope so a mid-flight
	// failure persists nothing.
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		// The root unit carries the template default as its explicit
		// override layer; inheritance resolution bottoms out there.
		root, err := s.unitGraph.CreateUnit(txCtx, &orgSvc.CreateUnitRequest{
			OrgID:  req.OrgID,
			Name:   rootName,
			Config: defaultConfig.AsOverride(),
		})
		if err != nil {
			return err
		}
		root.Workflows = preset.Workflows
		if err := s.units.Update(txCtx, root); err != nil {
			return err
		}
		result.RootUnit = root
		result.Units = append(result.Units, *root)

		for _, skeleton := range preset.Units {
			if err := s.instantiate(txCtx, req.OrgID, &root.ID, skeleton, preset.Workflows, &result.Units); err != nil {
				return err
			}
		}

		for _, category := range defaultConfig.AllowedCategories {
			folder, err := s.archive.EnsureRootFolder(txCtx, req.OrgID, category)
			if err != nil {
				return err
			}
			result.ArchiveRoots = append(result.ArchiveRoots, *folder)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("organization provisioned",
		"org_id", req.OrgID,
		"template", req.Template,
		"units", len(result.Units),
		"archive_roots", len(result.ArchiveRoots),
	)

	return result, nil
}

// instantiate creates one skeleton unit and recurses into its children,
// attaching the preset workflows to every created unit.
func (s *setupOrchestrator) instantiate(
	ctx context.Context,
	orgID string,
	parentID *string,
	skeleton models.UnitSkeleton,
	workflows []models.UnitWorkflow,
	created *[]models.OrganizationUnit,
) error {
	unit, err := s.unitGraph.CreateUnit(ctx, &orgSvc.CreateUnitRequest{
		OrgID:        orgID,
		Name:         skeleton.Name,
		ParentUnitID: parentID,
		Config:       skeleton.Config,
	})
	if err != nil {
		return fmt.Errorf("create unit %q: %w", skeleton.Name, err)
	}

	unit.Workflows = workflows
	if err := s.units.Update(ctx, unit); err != nil {
		return fmt.Errorf("attach workflows to %q: %w", skeleton.Name, err)
	}

	*created = append(*created, *unit)

	for _, child := range skeleton.Children {
		if err := s.instantiate(ctx, orgID, &unit.ID, child, workflows, created); err != nil {
			return err
		}
	}
	return nil
}
