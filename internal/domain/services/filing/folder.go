package filing

import (
	"context"

	"digitalium/internal/domain/models/filing"
)

// FolderService handles document folder tree business logic.
type FolderService interface {
	// CreateFolder creates a new folder under the given parent.
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*filing.Folder, error)

	// GetFolder retrieves a folder with its computed path.
	// Missing folders yield a NotFoundError.
	GetFolder(ctx context.Context, orgID, id string) (*filing.Folder, error)

	// FindFolder is the plain lookup variant: absence yields (nil, nil).
	FindFolder(ctx context.Context, orgID, id string) (*filing.Folder, error)

	// UpdateFolder renames a folder and/or changes its color.
	UpdateFolder(ctx context.Context, orgID, id string, req *UpdateFolderRequest) (*filing.Folder, error)

	// DeleteFolder removes a folder and all its descendants (folders and
	// items) atomically. Deleting an unknown id is a no-op.
	DeleteFolder(ctx context.Context, orgID, id string) error

	// ListChildren lists immediate subfolders. parentID nil lists roots.
	ListChildren(ctx context.Context, orgID string, parentID *string) ([]filing.Folder, error)

	// Breadcrumb walks the parent chain and returns the ancestry
	// root→…→folder. A corrupted (cyclic) chain yields CycleDetectedError.
	Breadcrumb(ctx context.Context, orgID, id string) (filing.Breadcrumb, error)

	// ItemCount counts the direct items and direct subfolders of a folder.
	ItemCount(ctx context.Context, orgID, id string) (*filing.ItemCount, error)

	// AddItem registers a content item directly inside a folder.
	AddItem(ctx context.Context, orgID, folderID, name string) (*filing.Item, error)

	// ListItems lists the items directly inside a folder.
	ListItems(ctx context.Context, orgID, folderID string) ([]filing.Item, error)
}

// CreateFolderRequest represents a folder creation request.
type CreateFolderRequest struct {
	OrgID    string             `json:"org_id"`
	UnitID   *string            `json:"unit_id,omitempty"`
	Name     string             `json:"name"`
	Color    filing.FolderColor `json:"color"`
	ParentID *string            `json:"parent_id,omitempty"` // nil for root
}

// UpdateFolderRequest represents a folder rename / recolor request.
type UpdateFolderRequest struct {
	Name  *string             `json:"name,omitempty"`
	Color *filing.FolderColor `json:"color,omitempty"`
}

// FolderContents represents a folder with its direct children.
type FolderContents struct {
	Folder  *filing.Folder  `json:"folder,omitempty"` // nil for root
	Folders []filing.Folder `json:"folders"`
	Items   []filing.Item   `json:"items"`
}
