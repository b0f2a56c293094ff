package filing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"digitalium/internal/domain"
	models "digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/repositories"
	"digitalium/internal/domain/services"
	filingSvc "digitalium/internal/domain/services/filing"
)

type folderService struct {
	core      treeCore
	txManager repositories.TransactionManager
	ids       services.IDGenerator
	clock     services.Clock
	logger    *slog.Logger
}

// NewFolderService creates the document folder tree service.
func NewFolderService(
	folders repositories.FolderStore,
	items repositories.ItemStore,
	txManager repositories.TransactionManager,
	ids services.IDGenerator,
	clock services.Clock,
	logger *slog.Logger,
) filingSvc.FolderService {
	return &folderService{
		core:      treeCore{folders: folders, items: items},
		txManager: txManager,
		ids:       ids,
		clock:     clock,
		logger:    logger,
	}
}

// CreateFolder creates a new document folder under the given parent.
func (s *folderService) CreateFolder(ctx context.Context, req *filingSvc.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.ParentID != nil {
		parent, err := s.core.folders.Get(ctx, req.OrgID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.Kind != models.KindDocument {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent folder %s not found", *req.ParentID)}
		}
		if err := s.core.checkDepth(ctx, parent); err != nil {
			return nil, err
		}
	}

	color := req.Color
	if color == "" {
		color = models.ColorGray
	}

	today := models.NewDate(s.clock.Now())
	folder := &models.Folder{
		ID:         s.ids.New(models.KindDocument.IDPrefix()),
		OrgID:      req.OrgID,
		UnitID:     req.UnitID,
		Kind:       models.KindDocument,
		Name:       req.Name,
		Color:      color,
		ParentID:   req.ParentID,
		CreatedAt:  today,
		ModifiedAt: today,
	}

	if err := s.core.folders.Insert(ctx, folder); err != nil {
		return nil, err
	}

	path, err := s.core.pathOf(ctx, folder)
	if err != nil {
		s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
		folder.Path = "/" + folder.Name
	} else {
		folder.Path = path
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"org_id", folder.OrgID,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a folder with its computed path.
func (s *folderService) GetFolder(ctx context.Context, orgID, id string) (*models.Folder, error) {
	folder, err := s.FindFolder(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}
	return folder, nil
}

// FindFolder is the plain lookup variant: absence yields (nil, nil).
func (s *folderService) FindFolder(ctx context.Context, orgID, id string) (*models.Folder, error) {
	folder, err := s.core.folders.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindDocument {
		return nil, nil
	}

	path, err := s.core.pathOf(ctx, folder)
	if err != nil {
		return nil, err
	}
	folder.Path = path
	return folder, nil
}

// UpdateFolder renames a folder and/or changes its color. Descendant paths
// are derived from parent links on read, so an ancestor rename is visible
// in every descendant's path immediately.
func (s *folderService) UpdateFolder(ctx context.Context, orgID, id string, req *filingSvc.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	folder, err := s.core.folders.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindDocument {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}

	if req.Name != nil {
		folder.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		folder.Color = *req.Color
	}
	folder.ModifiedAt = models.NewDate(s.clock.Now())

	if err := s.core.folders.Update(ctx, folder); err != nil {
		return nil, err
	}

	path, err := s.core.pathOf(ctx, folder)
	if err != nil {
		s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
		folder.Path = "/" + folder.Name
	} else {
		folder.Path = path
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"org_id", folder.OrgID,
		"path", folder.Path,
	)

	return folder, nil
}

// DeleteFolder removes a folder and its whole subtree, items included.
// Deleting an unknown id is a no-op.
func (s *folderService) DeleteFolder(ctx context.Context, orgID, id string) error {
	folder, err := s.core.folders.Get(ctx, orgID, id)
	if err != nil {
		return err
	}
	if folder == nil || folder.Kind != models.KindDocument {
		s.logger.Debug("delete of unknown folder ignored", "id", id, "org_id", orgID)
		return nil
	}

	ids, err := s.core.closure(ctx, orgID, models.KindDocument, id)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.core.items.RemoveByFolders(txCtx, orgID, ids); err != nil {
			return fmt.Errorf("remove items: %w", err)
		}
		if err := s.core.folders.Remove(txCtx, orgID, ids); err != nil {
			return fmt.Errorf("remove folders: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", id,
		"name", folder.Name,
		"org_id", orgID,
		"cascade_count", len(ids),
	)

	return nil
}

// ListChildren lists immediate subfolders. parentID nil lists roots.
func (s *folderService) ListChildren(ctx context.Context, orgID string, parentID *string) ([]models.Folder, error) {
	return s.core.folders.ListChildren(ctx, orgID, models.KindDocument, parentID)
}

// Breadcrumb returns the ancestry root→…→folder.
func (s *folderService) Breadcrumb(ctx context.Context, orgID, id string) (models.Breadcrumb, error) {
	crumb, err := s.core.chain(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if crumb == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}
	return crumb, nil
}

// ItemCount counts the direct items and direct subfolders of a folder.
func (s *folderService) ItemCount(ctx context.Context, orgID, id string) (*models.ItemCount, error) {
	folder, err := s.core.folders.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindDocument {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}
	return s.core.countContents(ctx, folder)
}

// AddItem registers a content item directly inside a folder.
func (s *folderService) AddItem(ctx context.Context, orgID, folderID, name string) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Message: "item name cannot be blank"}
	}

	folder, err := s.core.folders.Get(ctx, orgID, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindDocument {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
	}

	item := &models.Item{
		ID:       s.ids.New("item"),
		OrgID:    orgID,
		FolderID: folderID,
		Name:     name,
	}
	if err := s.core.items.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item added", "id", item.ID, "folder_id", folderID, "org_id", orgID)
	return item, nil
}

// ListItems lists the items directly inside a folder.
func (s *folderService) ListItems(ctx context.Context, orgID, folderID string) ([]models.Item, error) {
	folder, err := s.core.folders.Get(ctx, orgID, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindDocument {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
	}
	return s.core.items.ListByFolder(ctx, orgID, folderID)
}

// validateCreateRequest validates a folder creation request.
func (s *folderService) validateCreateRequest(req *filingSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OrgID, validation.Required),
		validation.Field(&req.Name, nameRules()...),
		validation.Field(&req.Color, colorRule),
	)
}

// validateUpdateRequest validates a folder rename / recolor request.
func (s *folderService) validateUpdateRequest(req *filingSvc.UpdateFolderRequest) error {
	if req.Name == nil && req.Color == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
		rules = append(rules, validation.Field(&req.Name, nameRules()...))
	}
	if req.Color != nil {
		if !req.Color.Valid() {
			return fmt.Errorf("color is not in the folder palette")
		}
	}
	if len(rules) == 0 {
		return nil
	}
	return validation.ValidateStruct(req, rules...)
}
