package repositories

import (
	"context"

	"digitalium/internal/domain/models/filing"
)

// FolderStore defines data access operations for folder trees.
//
// Lookups signal absence by returning (nil, nil) rather than an error;
// the service layer decides whether absence is a NotFoundError. Mutations
// must be atomic with respect to readers: a reader never observes a
// half-applied mutation (copy-on-write snapshot or transactional update).
type FolderStore interface {
	// Insert stores a new folder.
	Insert(ctx context.Context, folder *filing.Folder) error

	// Update replaces the stored folder with the same ID.
	Update(ctx context.Context, folder *filing.Folder) error

	// Remove deletes the given folders in a single atomic step.
	// Unknown ids are skipped silently.
	Remove(ctx context.Context, orgID string, ids []string) error

	// Get retrieves a folder by ID, (nil, nil) when absent.
	Get(ctx context.Context, orgID, id string) (*filing.Folder, error)

	// ListChildren lists folders of the given kind whose ParentID equals
	// parentID. parentID nil lists root folders of that kind.
	ListChildren(ctx context.Context, orgID string, kind filing.FolderKind, parentID *string) ([]filing.Folder, error)

	// ListByCategory lists all archive folders in one category.
	ListByCategory(ctx context.Context, orgID string, category filing.ArchiveCategory) ([]filing.Folder, error)

	// ListAll lists every folder of the given kind (flat).
	ListAll(ctx context.Context, orgID string, kind filing.FolderKind) ([]filing.Folder, error)
}

// ItemStore defines data access for the minimal content-item records the
// engine keeps for counting and cascade deletion.
type ItemStore interface {
	// Insert stores a new item record.
	Insert(ctx context.Context, item *filing.Item) error

	// CountByFolder counts items directly inside a folder (not recursive).
	CountByFolder(ctx context.Context, orgID, folderID string) (int, error)

	// ListByFolder lists items directly inside a folder.
	ListByFolder(ctx context.Context, orgID, folderID string) ([]filing.Item, error)

	// RemoveByFolders deletes every item inside any of the given folders
	// in a single atomic step.
	RemoveByFolders(ctx context.Context, orgID string, folderIDs []string) error
}
