package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"digitalium/internal/domain"
	"digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/repositories"
)

// ItemStore implements repositories.ItemStore on PostgreSQL.
type ItemStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewItemStore creates a new postgres item store
func NewItemStore(config *StoreConfig) repositories.ItemStore {
	return &ItemStore{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Insert stores a new item record
func (s *ItemStore) Insert(ctx context.Context, item *filing.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, org_id, folder_id, name)
		VALUES ($1, $2, $3, $4)
	`, s.tables.Items)

	_, err := GetExecutor(ctx, s.pool).Exec(ctx, query, item.ID, item.OrgID, item.FolderID, item.Name)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("item %s already exists: %w", item.ID, err)
		}
		if isPgForeignKeyError(err) {
			// The folder was deleted between the service's existence check
			// and this insert.
			return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", item.FolderID)}
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// CountByFolder counts items directly inside a folder
func (s *ItemStore) CountByFolder(ctx context.Context, orgID, folderID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE org_id = $1 AND folder_id = $2
	`, s.tables.Items)

	var count int
	if err := GetExecutor(ctx, s.pool).QueryRow(ctx, query, orgID, folderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// ListByFolder lists items directly inside a folder
func (s *ItemStore) ListByFolder(ctx context.Context, orgID, folderID string) ([]filing.Item, error) {
	query := fmt.Sprintf(`
		SELECT id, org_id, folder_id, name FROM %s
		WHERE org_id = $1 AND folder_id = $2
		ORDER BY name ASC
	`, s.tables.Items)

	rows, err := GetExecutor(ctx, s.pool).Query(ctx, query, orgID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []filing.Item
	for rows.Next() {
		var item filing.Item
		if err := rows.Scan(&item.ID, &item.OrgID, &item.FolderID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// RemoveByFolders deletes every item inside any of the given folders
func (s *ItemStore) RemoveByFolders(ctx context.Context, orgID string, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE org_id = $1 AND folder_id = ANY($2)
	`, s.tables.Items)

	if _, err := GetExecutor(ctx, s.pool).Exec(ctx, query, orgID, folderIDs); err != nil {
		return fmt.Errorf("remove items: %w", err)
	}
	return nil
}
