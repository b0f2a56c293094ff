package org

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"digitalium/internal/domain"
	models "digitalium/internal/domain/models/org"
	orgSvc "digitalium/internal/domain/services/org"
	"digitalium/internal/repository/memory"
	"digitalium/internal/templates"
)

// seqIDs generates deterministic ids for tests.
type seqIDs struct {
	n int
}

func (g *seqIDs) New(prefix string) string {
	g.n++
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

// fixedClock always returns the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type unitFixture struct {
	service orgSvc.UnitGraphService
	units   *memory.UnitStore
}

func newUnitFixture(t *testing.T) *unitFixture {
	t.Helper()
	registry, err := templates.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	units := memory.NewUnitStore()
	service := NewUnitGraphService(
		units,
		registry,
		&seqIDs{},
		fixedClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)},
		slog.Default(),
	)
	return &unitFixture{service: service, units: units}
}

func (f *unitFixture) mustCreate(t *testing.T, name string, parentID *string, cfg *models.ArchiveConfig) *models.OrganizationUnit {
	t.Helper()
	unit, err := f.service.CreateUnit(context.Background(), &orgSvc.CreateUnitRequest{
		OrgID:        "org-1",
		Name:         name,
		ParentUnitID: parentID,
		Config:       cfg,
	})
	if err != nil {
		t.Fatalf("CreateUnit(%q): %v", name, err)
	}
	return unit
}

func TestInitialsOf(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Direction generale", "DG"},
		{"Direction des Ressources Humaines", "DRH"},
		{"Direction des Affaires Administratives et Financieres", "DAAF"},
		{"Comptabilite", "C"},
		{"de la du", "U"},
		{"", "U"},
	}
	for _, tc := range cases {
		if got := initialsOf(tc.name); got != tc.want {
			t.Errorf("initialsOf(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCreateUnit(t *testing.T) {
	ctx := context.Background()

	t.Run("root unit", func(t *testing.T) {
		f := newUnitFixture(t)
		root := f.mustCreate(t, "Direction generale", nil, nil)

		if root.Code != "DG" {
			t.Errorf("expected code DG, got %s", root.Code)
		}
		if root.Path != "/Direction generale" {
			t.Errorf("expected path /Direction generale, got %s", root.Path)
		}
		if !root.IsRoot() {
			t.Error("unit with nil parent must be root")
		}
	})

	t.Run("second root conflicts", func(t *testing.T) {
		f := newUnitFixture(t)
		f.mustCreate(t, "Direction generale", nil, nil)

		_, err := f.service.CreateUnit(ctx, &orgSvc.CreateUnitRequest{OrgID: "org-1", Name: "Autre racine"})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected conflict error, got %v", err)
		}
	})

	t.Run("child code carries parent prefix", func(t *testing.T) {
		f := newUnitFixture(t)
		root := f.mustCreate(t, "Direction generale", nil, nil)
		child := f.mustCreate(t, "Comptabilite", &root.ID, nil)

		if child.Code != "DG-C" {
			t.Errorf("expected code DG-C, got %s", child.Code)
		}
		if child.Path != "/Direction generale/Comptabilite" {
			t.Errorf("unexpected path %s", child.Path)
		}
	})

	t.Run("code collisions bump a suffix", func(t *testing.T) {
		f := newUnitFixture(t)
		root := f.mustCreate(t, "Direction generale", nil, nil)
		first := f.mustCreate(t, "Comptabilite", &root.ID, nil)
		second := f.mustCreate(t, "Courrier", &root.ID, nil)

		if first.Code != "DG-C" {
			t.Errorf("expected DG-C, got %s", first.Code)
		}
		if second.Code != "DG-C2" {
			t.Errorf("expected DG-C2 after collision, got %s", second.Code)
		}
	})

	t.Run("unknown parent", func(t *testing.T) {
		f := newUnitFixture(t)
		missing := "unit-404"
		_, err := f.service.CreateUnit(ctx, &orgSvc.CreateUnitRequest{
			OrgID: "org-1", Name: "Orphelin", ParentUnitID: &missing,
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		f := newUnitFixture(t)
		_, err := f.service.CreateUnit(ctx, &orgSvc.CreateUnitRequest{OrgID: "org-1", Name: "   "})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestUnitPath(t *testing.T) {
	ctx := context.Background()
	f := newUnitFixture(t)
	root := f.mustCreate(t, "Cabinet du Maire", nil, nil)
	mid := f.mustCreate(t, "Etat Civil", &root.ID, nil)

	path, err := f.service.UnitPath(ctx, "org-1", mid.ID)
	if err != nil {
		t.Fatalf("UnitPath: %v", err)
	}
	if path != "/Cabinet du Maire/Etat Civil" {
		t.Errorf("unexpected path %s", path)
	}

	if _, err := f.service.UnitPath(ctx, "org-1", "unit-404"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestEffectiveArchiveConfig(t *testing.T) {
	ctx := context.Background()
	f := newUnitFixture(t)

	rootRetention := 20
	approval := true
	root := f.mustCreate(t, "Direction generale", nil, &models.ArchiveConfig{
		DefaultRetentionYears: &rootRetention,
		RequireApproval:       &approval,
	})

	childRetention := 30
	child := f.mustCreate(t, "Affaires Juridiques", &root.ID, &models.ArchiveConfig{
		DefaultRetentionYears: &childRetention,
	})
	grandchild := f.mustCreate(t, "Contentieux", &child.ID, nil)

	t.Run("nearest override wins per field", func(t *testing.T) {
		cfg, err := f.service.EffectiveArchiveConfig(ctx, "org-1", grandchild.ID)
		if err != nil {
			t.Fatalf("EffectiveArchiveConfig: %v", err)
		}
		if cfg.DefaultRetentionYears != 30 {
			t.Errorf("expected retention 30 from the nearest override, got %d", cfg.DefaultRetentionYears)
		}
		if !cfg.RequireApproval {
			t.Error("expected approval inherited from the root override")
		}
		// Untouched fields come from the global default.
		if cfg.NamingPattern != "{unit}/{category}/{year}" {
			t.Errorf("expected global naming pattern, got %q", cfg.NamingPattern)
		}
		if len(cfg.AllowedCategories) != 5 {
			t.Errorf("expected all categories from the global default, got %d", len(cfg.AllowedCategories))
		}
	})

	t.Run("root resolves its own override", func(t *testing.T) {
		cfg, err := f.service.EffectiveArchiveConfig(ctx, "org-1", root.ID)
		if err != nil {
			t.Fatalf("EffectiveArchiveConfig: %v", err)
		}
		if cfg.DefaultRetentionYears != 20 {
			t.Errorf("expected retention 20, got %d", cfg.DefaultRetentionYears)
		}
	})

	t.Run("unknown unit", func(t *testing.T) {
		if _, err := f.service.EffectiveArchiveConfig(ctx, "org-1", "unit-404"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}

func TestSetUnitConfig(t *testing.T) {
	ctx := context.Background()
	f := newUnitFixture(t)
	root := f.mustCreate(t, "Direction generale", nil, nil)

	retention := 7
	updated, err := f.service.SetUnitConfig(ctx, "org-1", root.ID, &models.ArchiveConfig{
		DefaultRetentionYears: &retention,
	})
	if err != nil {
		t.Fatalf("SetUnitConfig: %v", err)
	}
	if updated.Config == nil || *updated.Config.DefaultRetentionYears != 7 {
		t.Errorf("config override not stored: %+v", updated.Config)
	}

	cfg, err := f.service.EffectiveArchiveConfig(ctx, "org-1", root.ID)
	if err != nil {
		t.Fatalf("EffectiveArchiveConfig: %v", err)
	}
	if cfg.DefaultRetentionYears != 7 {
		t.Errorf("expected retention 7 after config update, got %d", cfg.DefaultRetentionYears)
	}
}

func TestListUnits(t *testing.T) {
	ctx := context.Background()
	f := newUnitFixture(t)
	root := f.mustCreate(t, "Direction generale", nil, nil)
	f.mustCreate(t, "Comptabilite", &root.ID, nil)

	units, err := f.service.ListUnits(ctx, "org-1")
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	for _, u := range units {
		if u.Path == "" {
			t.Errorf("unit %s has no computed path", u.ID)
		}
	}

	children, err := f.service.ListChildren(ctx, "org-1", &root.ID)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(children) != 1 || children[0].Name != "Comptabilite" {
		t.Errorf("unexpected children %+v", children)
	}
}
