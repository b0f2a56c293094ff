package filing

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"digitalium/internal/domain"
	models "digitalium/internal/domain/models/filing"
	filingSvc "digitalium/internal/domain/services/filing"
	"digitalium/internal/repository/memory"
	"digitalium/internal/templates"
)

type archiveFixture struct {
	service filingSvc.ArchiveService
	folders *memory.FolderStore
}

func newArchiveFixture(t *testing.T) *archiveFixture {
	t.Helper()
	registry, err := templates.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	folders := memory.NewFolderStore()
	service := NewArchiveService(
		folders,
		memory.NewItemStore(),
		registry,
		memory.NewTransactionManager(),
		&seqIDs{},
		fixedClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)},
		slog.Default(),
	)
	return &archiveFixture{service: service, folders: folders}
}

func (f *archiveFixture) mustRoot(t *testing.T, category models.ArchiveCategory) *models.Folder {
	t.Helper()
	root, err := f.service.EnsureRootFolder(context.Background(), "org-1", category)
	if err != nil {
		t.Fatalf("EnsureRootFolder(%s): %v", category, err)
	}
	return root
}

func TestEnsureRootFolder(t *testing.T) {
	ctx := context.Background()
	f := newArchiveFixture(t)

	root := f.mustRoot(t, models.CategoryFinancial)
	if root.Name != "financial" {
		t.Errorf("expected root named after category, got %q", root.Name)
	}
	if root.RetentionYears != 10 {
		t.Errorf("expected financial retention default 10, got %d", root.RetentionYears)
	}
	if !root.IsRoot() {
		t.Error("category root must have no parent")
	}

	again := f.mustRoot(t, models.CategoryFinancial)
	if again.ID != root.ID {
		t.Errorf("EnsureRootFolder is not idempotent: %s then %s", root.ID, again.ID)
	}

	if _, err := f.service.EnsureRootFolder(ctx, "org-1", "unknown"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}
}

func TestRootFolder(t *testing.T) {
	ctx := context.Background()
	f := newArchiveFixture(t)

	if _, err := f.service.RootFolder(ctx, "org-1", models.CategoryLegal); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found before provisioning, got %v", err)
	}

	created := f.mustRoot(t, models.CategoryLegal)
	got, err := f.service.RootFolder(ctx, "org-1", models.CategoryLegal)
	if err != nil {
		t.Fatalf("RootFolder: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected root %s, got %s", created.ID, got.ID)
	}
}

func TestCreateArchiveFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("category root contributes no path segment", func(t *testing.T) {
		f := newArchiveFixture(t)
		root := f.mustRoot(t, models.CategoryFinancial)

		folder, err := f.service.CreateFolder(ctx, &filingSvc.CreateArchiveFolderRequest{
			OrgID:    "org-1",
			Name:     "2024",
			ParentID: &root.ID,
			Category: models.CategoryFinancial,
		})
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.Path != "/2024" {
			t.Errorf("expected path /2024 under category root, got %s", folder.Path)
		}
	})

	t.Run("retention defaults from category policy", func(t *testing.T) {
		f := newArchiveFixture(t)
		root := f.mustRoot(t, models.CategoryLegal)

		folder, err := f.service.CreateFolder(ctx, &filingSvc.CreateArchiveFolderRequest{
			OrgID:    "org-1",
			Name:     "Contrats",
			ParentID: &root.ID,
			Category: models.CategoryLegal,
		})
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.RetentionYears != 15 {
			t.Errorf("expected legal retention default 15, got %d", folder.RetentionYears)
		}
	})

	t.Run("explicit retention wins", func(t *testing.T) {
		f := newArchiveFixture(t)
		root := f.mustRoot(t, models.CategoryLegal)

		indefinite := models.RetentionIndefinite
		folder, err := f.service.CreateFolder(ctx, &filingSvc.CreateArchiveFolderRequest{
			OrgID:          "org-1",
			Name:           "Actes fondateurs",
			ParentID:       &root.ID,
			Category:       models.CategoryLegal,
			RetentionYears: &indefinite,
		})
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.RetentionYears != models.RetentionIndefinite {
			t.Errorf("expected indefinite retention, got %d", folder.RetentionYears)
		}
	})

	t.Run("parent is mandatory", func(t *testing.T) {
		f := newArchiveFixture(t)
		_, err := f.service.CreateFolder(ctx, &filingSvc.CreateArchiveFolderRequest{
			OrgID:    "org-1",
			Name:     "Sans parent",
			Category: models.CategoryLegal,
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("category must match the parent", func(t *testing.T) {
		f := newArchiveFixture(t)
		root := f.mustRoot(t, models.CategoryFinancial)

		_, err := f.service.CreateFolder(ctx, &filingSvc.CreateArchiveFolderRequest{
			OrgID:    "org-1",
			Name:     "Errant",
			ParentID: &root.ID,
			Category: models.CategoryHR,
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error on category mismatch, got %v", err)
		}
	})
}

func TestArchiveListChildren(t *testing.T) {
	ctx := context.Background()
	f := newArchiveFixture(t)
	finRoot := f.mustRoot(t, models.CategoryFinancial)
	f.mustRoot(t, models.CategoryLegal)

	child, err := f.service.CreateFolder(ctx, &filingSvc.CreateArchiveFolderRequest{
		OrgID:    "org-1",
		Name:     "2026",
		ParentID: &finRoot.ID,
		Category: models.CategoryFinancial,
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	roots, err := f.service.ListChildren(ctx, "org-1", models.CategoryFinancial, nil)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != finRoot.ID {
		t.Errorf("expected only the financial root at top level, got %d entries", len(roots))
	}

	children, err := f.service.ListChildren(ctx, "org-1", models.CategoryFinancial, &finRoot.ID)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Errorf("expected the 2026 folder, got %d entries", len(children))
	}
}

func TestArchiveDeleteCascade(t *testing.T) {
	ctx := context.Background()
	f := newArchiveFixture(t)
	root := f.mustRoot(t, models.CategoryFinancial)

	year, err := f.service.CreateFolder(ctx, &filingSvc.CreateArchiveFolderRequest{
		OrgID: "org-1", Name: "2026", ParentID: &root.ID, Category: models.CategoryFinancial,
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := f.service.AddItem(ctx, "org-1", year.ID, "bilan.pdf"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := f.service.DeleteFolder(ctx, "org-1", year.ID); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
	if _, err := f.service.GetFolder(ctx, "org-1", year.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected folder gone, got %v", err)
	}

	// Root survives; deleting an unknown id stays a no-op.
	if _, err := f.service.GetFolder(ctx, "org-1", root.ID); err != nil {
		t.Errorf("category root should survive, got %v", err)
	}
	if err := f.service.DeleteFolder(ctx, "org-1", "arc-404"); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}
