package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"digitalium/internal/domain/models/org"
	"digitalium/internal/domain/repositories"
)

// UnitStore implements repositories.UnitStore on PostgreSQL.
//
// Config and Workflows are stored as JSONB: they are read and written as
// whole documents and never queried field by field.
type UnitStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUnitStore creates a new postgres unit store
func NewUnitStore(config *StoreConfig) repositories.UnitStore {
	return &UnitStore{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const unitColumns = "id, org_id, name, code, parent_unit_id, config, workflows, created_at"

// Insert stores a new unit
func (s *UnitStore) Insert(ctx context.Context, unit *org.OrganizationUnit) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.tables.Units, unitColumns)

	configJSON, workflowsJSON, err := marshalUnitDocs(unit)
	if err != nil {
		return err
	}

	_, err = GetExecutor(ctx, s.pool).Exec(ctx, query,
		unit.ID,
		unit.OrgID,
		unit.Name,
		unit.Code,
		unit.ParentUnitID,
		configJSON,
		workflowsJSON,
		unit.CreatedAt,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("unit %s already exists: %w", unit.ID, err)
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// Update replaces the stored unit with the same ID
func (s *UnitStore) Update(ctx context.Context, unit *org.OrganizationUnit) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, code = $2, config = $3, workflows = $4
		WHERE id = $5 AND org_id = $6
	`, s.tables.Units)

	configJSON, workflowsJSON, err := marshalUnitDocs(unit)
	if err != nil {
		return err
	}

	_, err = GetExecutor(ctx, s.pool).Exec(ctx, query,
		unit.Name,
		unit.Code,
		configJSON,
		workflowsJSON,
		unit.ID,
		unit.OrgID,
	)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// Get retrieves a unit by ID, (nil, nil) when absent
func (s *UnitStore) Get(ctx context.Context, orgID, id string) (*org.OrganizationUnit, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1 AND org_id = $2
	`, unitColumns, s.tables.Units)

	unit, err := scanUnit(GetExecutor(ctx, s.pool).QueryRow(ctx, query, id, orgID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return unit, nil
}

// Root retrieves the organization root unit, (nil, nil) when absent
func (s *UnitStore) Root(ctx context.Context, orgID string) (*org.OrganizationUnit, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE org_id = $1 AND parent_unit_id IS NULL
	`, unitColumns, s.tables.Units)

	unit, err := scanUnit(GetExecutor(ctx, s.pool).QueryRow(ctx, query, orgID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get root unit: %w", err)
	}
	return unit, nil
}

// ListChildren lists units directly under parentID
func (s *UnitStore) ListChildren(ctx context.Context, orgID string, parentID *string) ([]org.OrganizationUnit, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE org_id = $1 AND parent_unit_id IS NULL
			ORDER BY created_at ASC
		`, unitColumns, s.tables.Units)
		args = append(args, orgID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE org_id = $1 AND parent_unit_id = $2
			ORDER BY created_at ASC
		`, unitColumns, s.tables.Units)
		args = append(args, orgID, *parentID)
	}

	return s.queryUnits(ctx, query, args...)
}

// ListAll lists every unit of the organization
func (s *UnitStore) ListAll(ctx context.Context, orgID string) ([]org.OrganizationUnit, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE org_id = $1
		ORDER BY created_at ASC
	`, unitColumns, s.tables.Units)

	return s.queryUnits(ctx, query, orgID)
}

func (s *UnitStore) queryUnits(ctx context.Context, query string, args ...interface{}) ([]org.OrganizationUnit, error) {
	rows, err := GetExecutor(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []org.OrganizationUnit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, *unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return units, nil
}

func marshalUnitDocs(unit *org.OrganizationUnit) (configJSON, workflowsJSON []byte, err error) {
	if unit.Config != nil {
		configJSON, err = json.Marshal(unit.Config)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal unit config: %w", err)
		}
	}
	if len(unit.Workflows) > 0 {
		workflowsJSON, err = json.Marshal(unit.Workflows)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal unit workflows: %w", err)
		}
	}
	return configJSON, workflowsJSON, nil
}

func scanUnit(row rowScanner) (*org.OrganizationUnit, error) {
	var (
		unit          org.OrganizationUnit
		configJSON    []byte
		workflowsJSON []byte
		createdAt     time.Time
	)
	err := row.Scan(
		&unit.ID,
		&unit.OrgID,
		&unit.Name,
		&unit.Code,
		&unit.ParentUnitID,
		&configJSON,
		&workflowsJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	if len(configJSON) > 0 {
		var config org.ArchiveConfig
		if err := json.Unmarshal(configJSON, &config); err != nil {
			return nil, fmt.Errorf("unmarshal unit config: %w", err)
		}
		unit.Config = &config
	}
	if len(workflowsJSON) > 0 {
		if err := json.Unmarshal(workflowsJSON, &unit.Workflows); err != nil {
			return nil, fmt.Errorf("unmarshal unit workflows: %w", err)
		}
	}
	unit.CreatedAt = createdAt
	return &unit, nil
}
