package org

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"digitalium/internal/domain"
	"digitalium/internal/domain/models/filing"
	orgSvc "digitalium/internal/domain/services/org"
	"digitalium/internal/repository/memory"
	serviceFiling "digitalium/internal/service/filing"
	"digitalium/internal/templates"
)

type setupFixture struct {
	orchestrator orgSvc.SetupOrchestrator
	unitGraph    orgSvc.UnitGraphService
	units        *memory.UnitStore
	folders      *memory.FolderStore
}

func newSetupFixture(t *testing.T) *setupFixture {
	t.Helper()
	registry, err := templates.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	units := memory.NewUnitStore()
	folders := memory.NewFolderStore()
	items := memory.NewItemStore()
	txManager := memory.NewTransactionManager()
	ids := &seqIDs{}
	clock := fixedClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	logger := slog.Default()

	unitGraph := NewUnitGraphService(units, registry, ids, clock, logger)
	archive := serviceFiling.NewArchiveService(folders, items, registry, txManager, ids, clock, logger)
	orchestrator := NewSetupOrchestrator(registry, unitGraph, archive, units, txManager, logger)

	return &setupFixture{
		orchestrator: orchestrator,
		unitGraph:    unitGraph,
		units:        units,
		folders:      folders,
	}
}

func TestProvision(t *testing.T) {
	ctx := context.Background()

	t.Run("enterprise template", func(t *testing.T) {
		f := newSetupFixture(t)
		result, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{
			OrgID:    "org-1",
			Name:     "Acme",
			Template: "enterprise",
		})
		if err != nil {
			t.Fatalf("Provision: %v", err)
		}

		if result.RootUnit == nil || result.RootUnit.Name != "Acme" {
			t.Fatalf("expected root unit named Acme, got %+v", result.RootUnit)
		}
		if !result.RootUnit.IsRoot() {
			t.Error("root unit must have no parent")
		}
		if len(result.RootUnit.Workflows) != 2 {
			t.Errorf("expected 2 workflows attached to the root, got %d", len(result.RootUnit.Workflows))
		}

		// Root + Direction generale + Comptabilite + Ressources humaines.
		if len(result.Units) != 4 {
			t.Errorf("expected 4 units, got %d", len(result.Units))
		}

		// One archive root per allowed category of the effective config.
		if len(result.ArchiveRoots) != len(filing.Categories) {
			t.Errorf("expected %d archive roots, got %d", len(filing.Categories), len(result.ArchiveRoots))
		}
		for _, root := range result.ArchiveRoots {
			if !root.IsRoot() {
				t.Errorf("archive root %s has a parent", root.ID)
			}
		}

		if result.RequiresDoubleSignature {
			t.Error("enterprise template must not require double signature")
		}
		if result.ArchiveConfig == nil || result.ArchiveConfig.DefaultRetentionYears != 5 {
			t.Errorf("unexpected effective config %+v", result.ArchiveConfig)
		}

		// Skeleton overrides become unit override layers.
		var comptaID string
		for _, u := range result.Units {
			if u.Name == "Comptabilite" {
				comptaID = u.ID
			}
		}
		if comptaID == "" {
			t.Fatal("Comptabilite unit missing from result")
		}
		cfg, err := f.unitGraph.EffectiveArchiveConfig(ctx, "org-1", comptaID)
		if err != nil {
			t.Fatalf("EffectiveArchiveConfig: %v", err)
		}
		if cfg.DefaultRetentionYears != 10 {
			t.Errorf("expected Comptabilite retention 10 from skeleton override, got %d", cfg.DefaultRetentionYears)
		}
	})

	t.Run("citizen template seeds only allowed categories", func(t *testing.T) {
		f := newSetupFixture(t)
		result, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{
			OrgID:    "org-1",
			Template: "citizen",
		})
		if err != nil {
			t.Fatalf("Provision: %v", err)
		}
		if len(result.ArchiveRoots) != 2 {
			t.Errorf("expected administrative and financial roots only, got %d", len(result.ArchiveRoots))
		}
		if result.ArchiveConfig.DefaultRetentionYears != 3 {
			t.Errorf("expected citizen retention override 3, got %d", result.ArchiveConfig.DefaultRetentionYears)
		}
		// Falls back to the preset display name when no name is given.
		if result.RootUnit.Name != "Espace Citoyen" {
			t.Errorf("unexpected root unit name %q", result.RootUnit.Name)
		}
	})

	t.Run("ministry requires double signature", func(t *testing.T) {
		f := newSetupFixture(t)
		result, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{
			OrgID:    "org-1",
			Template: "institution-ministry",
		})
		if err != nil {
			t.Fatalf("Provision: %v", err)
		}
		if !result.RequiresDoubleSignature {
			t.Error("ministry template must require double signature")
		}
		if !result.ArchiveConfig.RequireApproval {
			t.Error("ministry effective config must require approval")
		}
	})

	t.Run("unknown template persists nothing", func(t *testing.T) {
		f := newSetupFixture(t)
		_, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{
			OrgID:    "org-1",
			Template: "cooperative",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found error, got %v", err)
		}

		units, err := f.units.ListAll(ctx, "org-1")
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(units) != 0 {
			t.Errorf("expected no units after failed provision, got %d", len(units))
		}
		folders, err := f.folders.ListAll(ctx, "org-1", filing.KindArchive)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(folders) != 0 {
			t.Errorf("expected no archive folders after failed provision, got %d", len(folders))
		}
	})

	t.Run("provisioning twice conflicts", func(t *testing.T) {
		f := newSetupFixture(t)
		if _, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{OrgID: "org-1", Template: "enterprise"}); err != nil {
			t.Fatalf("Provision: %v", err)
		}
		_, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{OrgID: "org-1", Template: "enterprise"})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected conflict error, got %v", err)
		}
	})

	t.Run("missing org id", func(t *testing.T) {
		f := newSetupFixture(t)
		_, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{Template: "enterprise"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("different organizations provision independently", func(t *testing.T) {
		f := newSetupFixture(t)
		if _, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{OrgID: "org-1", Template: "enterprise"}); err != nil {
			t.Fatalf("Provision org-1: %v", err)
		}
		if _, err := f.orchestrator.Provision(ctx, &orgSvc.ProvisionRequest{OrgID: "org-2", Template: "citizen"}); err != nil {
			t.Fatalf("Provision org-2: %v", err)
		}
	})
}
