package filing

import (
	"context"

	"digitalium/internal/domain/models/filing"
)

// ArchiveService handles the archive folder tree. Every operation is
// scoped to one archive category; folders of all categories share a
// backing store and are distinguished by their Category field.
type ArchiveService interface {
	// CreateFolder creates an archive folder. When the request omits
	// RetentionYears the category's default retention applies.
	CreateFolder(ctx context.Context, req *CreateArchiveFolderRequest) (*filing.Folder, error)

	// GetFolder retrieves an archive folder with its computed path.
	GetFolder(ctx context.Context, orgID, id string) (*filing.Folder, error)

	// UpdateFolder renames an archive folder and/or changes its color.
	UpdateFolder(ctx context.Context, orgID, id string, req *UpdateFolderRequest) (*filing.Folder, error)

	// DeleteFolder removes an archive folder and all its descendants.
	// Deleting an unknown id is a no-op.
	DeleteFolder(ctx context.Context, orgID, id string) error

	// ListChildren lists immediate subfolders within a category.
	// parentID nil lists the category's root level.
	ListChildren(ctx context.Context, orgID string, category filing.ArchiveCategory, parentID *string) ([]filing.Folder, error)

	// Breadcrumb walks the parent chain root→…→folder.
	Breadcrumb(ctx context.Context, orgID, id string) (filing.Breadcrumb, error)

	// ItemCount counts direct items and direct subfolders.
	ItemCount(ctx context.Context, orgID, id string) (*filing.ItemCount, error)

	// AddItem registers a content item directly inside an archive folder.
	AddItem(ctx context.Context, orgID, folderID, name string) (*filing.Item, error)

	// ListItems lists the items directly inside an archive folder.
	ListItems(ctx context.Context, orgID, folderID string) ([]filing.Item, error)

	// EnsureRootFolder creates the category's designated root folder if it
	// does not exist yet and returns it.
	EnsureRootFolder(ctx context.Context, orgID string, category filing.ArchiveCategory) (*filing.Folder, error)

	// RootFolder returns the category's designated root folder.
	RootFolder(ctx context.Context, orgID string, category filing.ArchiveCategory) (*filing.Folder, error)
}

// CreateArchiveFolderRequest represents an archive folder creation request.
// RetentionYears nil means "use the category default".
type CreateArchiveFolderRequest struct {
	OrgID          string                 `json:"org_id"`
	UnitID         *string                `json:"unit_id,omitempty"`
	Name           string                 `json:"name"`
	Color          filing.FolderColor     `json:"color"`
	ParentID       *string                `json:"parent_id,omitempty"`
	Category       filing.ArchiveCategory `json:"category"`
	RetentionYears *int                   `json:"retention_years,omitempty"`
}
