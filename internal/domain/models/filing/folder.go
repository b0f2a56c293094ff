package filing

// FolderKind distinguishes document folders from archive folders.
// The two kinds live in separate trees and carry different id prefixes.
type FolderKind string

const (
	KindDocument FolderKind = "document"
	KindArchive  FolderKind = "archive"
)

// IDPrefix returns the identifier prefix for folders of this kind.
func (k FolderKind) IDPrefix() string {
	if k == KindArchive {
		return "arc"
	}
	return "doc"
}

// FolderColor is a tag from the fixed folder palette.
type FolderColor string

const (
	ColorBlue   FolderColor = "blue"
	ColorGreen  FolderColor = "green"
	ColorYellow FolderColor = "yellow"
	ColorOrange FolderColor = "orange"
	ColorRed    FolderColor = "red"
	ColorPurple FolderColor = "purple"
	ColorGray   FolderColor = "gray"
)

// Palette lists every valid folder color.
var Palette = []FolderColor{
	ColorBlue, ColorGreen, ColorYellow, ColorOrange, ColorRed, ColorPurple, ColorGray,
}

// Valid reports whether the color belongs to the palette.
func (c FolderColor) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// ArchiveCategory is a domain partition for archived content.
// Each category has its own retention policy and designated root folder.
type ArchiveCategory string

const (
	CategoryAdministrative ArchiveCategory = "administrative"
	CategoryFinancial      ArchiveCategory = "financial"
	CategoryLegal          ArchiveCategory = "legal"
	CategoryHR             ArchiveCategory = "hr"
	CategoryTechnical      ArchiveCategory = "technical"
)

// Categories lists every valid archive category.
var Categories = []ArchiveCategory{
	CategoryAdministrative, CategoryFinancial, CategoryLegal, CategoryHR, CategoryTechnical,
}

// Valid reports whether the category is a known archive domain.
func (c ArchiveCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// RetentionIndefinite marks archive content that is never eligible for disposal.
const RetentionIndefinite = -1

// Folder is a node in a document or archive folder tree.
//
// ParentID nil means the folder is a root. Path is a computed display field
// derived from the ParentID chain on read; it is never stored, so renaming an
// ancestor can never leave descendants with a stale prefix.
type Folder struct {
	ID       string      `json:"id"`
	OrgID    string      `json:"org_id"`
	UnitID   *string     `json:"unit_id,omitempty"`
	Kind     FolderKind  `json:"kind"`
	Name     string      `json:"name"`
	Color    FolderColor `json:"color"`
	ParentID *string     `json:"parent_id"`
	Path     string      `json:"path,omitempty"`

	// Archive variant only.
	Category       ArchiveCategory `json:"category,omitempty"`
	RetentionYears int             `json:"retention_years,omitempty"`

	CreatedAt  Date `json:"created_at"`
	ModifiedAt Date `json:"modified_at"`
}

// IsRoot reports whether the folder has no parent.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// Item is the minimal record the engine keeps for a content item
// (document or archived piece) living directly inside a folder.
// Item bodies, blobs and signatures are owned by external collaborators;
// the engine only needs enough to count items and cascade deletes.
type Item struct {
	ID       string `json:"id"`
	OrgID    string `json:"org_id"`
	FolderID string `json:"folder_id"`
	Name     string `json:"name"`
}

// ItemCount aggregates what a folder directly contains.
type ItemCount struct {
	Items      int `json:"items"`
	Subfolders int `json:"subfolders"`
	Total      int `json:"total"`
}

// Breadcrumb is the ordered ancestry of a folder, root first.
type Breadcrumb []Folder
