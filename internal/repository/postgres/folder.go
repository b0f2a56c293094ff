package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/repositories"
)

// FolderStore implements repositories.FolderStore on PostgreSQL.
type FolderStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderStore creates a new postgres folder store
func NewFolderStore(config *StoreConfig) repositories.FolderStore {
	return &FolderStore{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, org_id, unit_id, kind, name, color, parent_id, category, retention_years, created_at, modified_at"

// Insert stores a new folder
func (s *FolderStore) Insert(ctx context.Context, folder *filing.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, s.tables.Folders, folderColumns)

	var category *string
	if folder.Category != "" {
		c := string(folder.Category)
		category = &c
	}

	_, err := GetExecutor(ctx, s.pool).Exec(ctx, query,
		folder.ID,
		folder.OrgID,
		folder.UnitID,
		string(folder.Kind),
		folder.Name,
		string(folder.Color),
		folder.ParentID,
		category,
		folder.RetentionYears,
		folder.CreatedAt.Time,
		folder.ModifiedAt.Time,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder %s already exists: %w", folder.ID, err)
		}
		return fmt.Errorf("insert folder: %w", err)
	}
	return nil
}

// Update replaces the stored folder with the same ID
func (s *FolderStore) Update(ctx context.Context, folder *filing.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, color = $2, modified_at = $3
		WHERE id = $4 AND org_id = $5
	`, s.tables.Folders)

	_, err := GetExecutor(ctx, s.pool).Exec(ctx, query,
		folder.Name,
		string(folder.Color),
		folder.ModifiedAt.Time,
		folder.ID,
		folder.OrgID,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	return nil
}

// Remove deletes the given folders. Runs as one statement so the cascade
// is atomic; unknown ids are skipped silently.
func (s *FolderStore) Remove(ctx context.Context, orgID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE org_id = $1 AND id = ANY($2)
	`, s.tables.Folders)

	if _, err := GetExecutor(ctx, s.pool).Exec(ctx, query, orgID, ids); err != nil {
		return fmt.Errorf("remove folders: %w", err)
	}
	return nil
}

// Get retrieves a folder by ID, (nil, nil) when absent
func (s *FolderStore) Get(ctx context.Context, orgID, id string) (*filing.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1 AND org_id = $2
	`, folderColumns, s.tables.Folders)

	folder, err := scanFolder(GetExecutor(ctx, s.pool).QueryRow(ctx, query, id, orgID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

// ListChildren lists folders of the given kind under parentID
func (s *FolderStore) ListChildren(ctx context.Context, orgID string, kind filing.FolderKind, parentID *string) ([]filing.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE org_id = $1 AND kind = $2 AND parent_id IS NULL
			ORDER BY created_at ASC
		`, folderColumns, s.tables.Folders)
		args = append(args, orgID, string(kind))
	} else {
		query = fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE org_id = $1 AND kind = $2 AND parent_id = $3
			ORDER BY created_at ASC
		`, folderColumns, s.tables.Folders)
		args = append(args, orgID, string(kind), *parentID)
	}

	return s.queryFolders(ctx, query, args...)
}

// ListByCategory lists all archive folders in one category
func (s *FolderStore) ListByCategory(ctx context.Context, orgID string, category filing.ArchiveCategory) ([]filing.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE org_id = $1 AND kind = $2 AND category = $3
		ORDER BY created_at ASC
	`, folderColumns, s.tables.Folders)

	return s.queryFolders(ctx, query, orgID, string(filing.KindArchive), string(category))
}

// ListAll lists every folder of the given kind
func (s *FolderStore) ListAll(ctx context.Context, orgID string, kind filing.FolderKind) ([]filing.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE org_id = $1 AND kind = $2
		ORDER BY created_at ASC
	`, folderColumns, s.tables.Folders)

	return s.queryFolders(ctx, query, orgID, string(kind))
}

func (s *FolderStore) queryFolders(ctx context.Context, query string, args ...interface{}) ([]filing.Folder, error) {
	rows, err := GetExecutor(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []filing.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFolder(row rowScanner) (*filing.Folder, error) {
	var (
		folder    filing.Folder
		kind      string
		color     string
		category  *string
		createdAt time.Time
		modified  time.Time
	)
	err := row.Scan(
		&folder.ID,
		&folder.OrgID,
		&folder.UnitID,
		&kind,
		&folder.Name,
		&color,
		&folder.ParentID,
		&category,
		&folder.RetentionYears,
		&createdAt,
		&modified,
	)
	if err != nil {
		return nil, err
	}
	folder.Kind = filing.FolderKind(kind)
	folder.Color = filing.FolderColor(color)
	if category != nil {
		folder.Category = filing.ArchiveCategory(*category)
	}
	folder.CreatedAt = filing.NewDate(createdAt)
	folder.ModifiedAt = filing.NewDate(modified)
	return &folder, nil
}
