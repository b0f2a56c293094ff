package memory

import (
	"context"
	"testing"
	"time"

	"digitalium/internal/domain/models/filing"
)

func docFolder(id, orgID string, parentID *string) *filing.Folder {
	return &filing.Folder{
		ID:        id,
		OrgID:     orgID,
		Name:      "Folder " + id,
		Kind:      filing.KindDocument,
		ParentID:  parentID,
		Color:     filing.ColorGray,
		CreatedAt: filing.NewDate(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)),
	}
}

func TestFolderStoreSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewFolderStore()

	if err := store.Insert(ctx, docFolder("f-1", "org-1", nil)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	before, err := store.ListAll(ctx, "org-1", filing.KindDocument)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(before) != 1 {
		t.Fatalf("expected 1 folder, got %d", len(before))
	}

	// Mutations after the read must not touch the captured slice.
	if err := store.Insert(ctx, docFolder("f-2", "org-1", nil)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	renamed := docFolder("f-1", "org-1", nil)
	renamed.Name = "Renamed"
	if err := store.Update(ctx, renamed); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(before) != 1 {
		t.Errorf("captured snapshot grew to %d entries", len(before))
	}
	if before[0].Name != "Folder f-1" {
		t.Errorf("captured snapshot observed the rename: %q", before[0].Name)
	}

	after, err := store.ListAll(ctx, "org-1", filing.KindDocument)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("expected 2 folders after insert, got %d", len(after))
	}
}

func TestFolderStoreGet(t *testing.T) {
	ctx := context.Background()
	store := NewFolderStore()
	if err := store.Insert(ctx, docFolder("f-1", "org-1", nil)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.Get(ctx, "org-1", "f-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != "f-1" {
		t.Fatalf("expected f-1, got %+v", got)
	}

	// Returned folders are copies.
	got.Name = "scribbled"
	fresh, err := store.Get(ctx, "org-1", "f-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh.Name != "Folder f-1" {
		t.Errorf("mutation through a returned copy leaked into the store: %q", fresh.Name)
	}

	t.Run("absent returns nil nil", func(t *testing.T) {
		got, err := store.Get(ctx, "org-1", "f-404")
		if err != nil || got != nil {
			t.Errorf("expected (nil, nil), got (%+v, %v)", got, err)
		}
	})

	t.Run("scoped by org", func(t *testing.T) {
		got, err := store.Get(ctx, "org-2", "f-1")
		if err != nil || got != nil {
			t.Errorf("expected (nil, nil) for foreign org, got (%+v, %v)", got, err)
		}
	})
}

func TestFolderStoreListChildren(t *testing.T) {
	ctx := context.Background()
	store := NewFolderStore()

	root := docFolder("f-1", "org-1", nil)
	rootID := root.ID
	child := docFolder("f-2", "org-1", &rootID)
	otherRoot := docFolder("f-3", "org-1", nil)
	for _, f := range []*filing.Folder{root, child, otherRoot} {
		if err := store.Insert(ctx, f); err != nil {
			t.Fatalf("Insert(%s): %v", f.ID, err)
		}
	}

	roots, err := store.ListChildren(ctx, "org-1", filing.KindDocument, nil)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(roots) != 2 {
		t.Errorf("expected 2 roots, got %d", len(roots))
	}

	children, err := store.ListChildren(ctx, "org-1", filing.KindDocument, &rootID)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(children) != 1 || children[0].ID != "f-2" {
		t.Errorf("expected only f-2 under f-1, got %+v", children)
	}

	// Pointer identity must not matter, only the pointed-at value.
	sameID := "f-1"
	byValue, err := store.ListChildren(ctx, "org-1", filing.KindDocument, &sameID)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(byValue) != 1 {
		t.Errorf("parent match compared pointers instead of values: got %d entries", len(byValue))
	}
}

func TestFolderStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := NewFolderStore()

	for _, f := range []*filing.Folder{
		docFolder("f-1", "org-1", nil),
		docFolder("f-2", "org-1", nil),
		docFolder("f-1", "org-2", nil),
	} {
		if err := store.Insert(ctx, f); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	if err := store.Remove(ctx, "org-1", []string{"f-1", "f-404"}); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	left, err := store.ListAll(ctx, "org-1", filing.KindDocument)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(left) != 1 || left[0].ID != "f-2" {
		t.Errorf("expected only f-2 left in org-1, got %+v", left)
	}

	// The same id in another org is untouched.
	other, err := store.Get(ctx, "org-2", "f-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if other == nil {
		t.Error("remove crossed the org boundary")
	}

	if err := store.Remove(ctx, "org-1", nil); err != nil {
		t.Errorf("empty remove should be a no-op, got %v", err)
	}
}

func TestFolderStoreListByCategory(t *testing.T) {
	ctx := context.Background()
	store := NewFolderStore()

	archive := docFolder("a-1", "org-1", nil)
	archive.Kind = filing.KindArchive
	archive.Category = filing.CategoryFinancial
	if err := store.Insert(ctx, archive); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.Insert(ctx, docFolder("f-1", "org-1", nil)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	financial, err := store.ListByCategory(ctx, "org-1", filing.CategoryFinancial)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(financial) != 1 || financial[0].ID != "a-1" {
		t.Errorf("expected only the archive folder, got %+v", financial)
	}

	legal, err := store.ListByCategory(ctx, "org-1", filing.CategoryLegal)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(legal) != 0 {
		t.Errorf("expected no legal folders, got %d", len(legal))
	}
}
