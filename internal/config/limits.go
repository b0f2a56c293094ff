package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxUnitNameLength is the maximum length for organization unit names.
	// Same as folder names for consistency.
	MaxUnitNameLength = 255

	// MaxFolderDepth caps how deep a folder hierarchy may grow. Deeper
	// trees make breadcrumbs unusable and usually indicate an import gone
	// wrong rather than a real filing plan.
	MaxFolderDepth = 32
)
