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
	orgSvc "digitalium/internal/domain/services/org"
)

type archiveService struct {
	core      treeCore
	resolver  orgSvc.PresetResolver
	txManager repositories.TransactionManager
	ids       services.IDGenerator
	clock     services.Clock
	logger    *slog.Logger
}

// NewArchiveService creates the archive folder tree service. The resolver
// supplies the category retention policy table.
func NewArchiveService(
	folders repositories.FolderStore,
	items repositories.ItemStore,
	resolver orgSvc.PresetResolver,
	txManager repositories.TransactionManager,
	ids services.IDGenerator,
	clock services.Clock,
	logger *slog.Logger,
) filingSvc.ArchiveService {
	return &archiveService{
		core:      treeCore{folders: folders, items: items},
		resolver:  resolver,
		txManager: txManager,
		ids:       ids,
		clock:     clock,
		logger:    logger,
	}
}

// CreateFolder creates an archive folder under an existing parent.
// Root folders are category-designated and only created through
// EnsureRootFolder, keeping the one-root-per-category invariant.
func (s *archiveService) CreateFolder(ctx context.Context, req *filingSvc.CreateArchiveFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	if req.ParentID == nil {
		return nil, &domain.ValidationError{Message: "archive folders need a parent; category roots are created during setup"}
	}

	parent, err := s.core.folders.Get(ctx, req.OrgID, *req.ParentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.Kind != models.KindArchive {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent folder %s not found", *req.ParentID)}
	}
	if parent.Category != req.Category {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("parent folder belongs to category %q, not %q", parent.Category, req.Category),
		}
	}
	if err := s.core.checkDepth(ctx, parent); err != nil {
		return nil, err
	}

	retention := s.resolver.RetentionDefault(req.Category)
	if req.RetentionYears != nil {
		retention = *req.RetentionYears
	}

	color := req.Color
	if color == "" {
		color = models.ColorGray
	}

	today := models.NewDate(s.clock.Now())
	folder := &models.Folder{
		ID:             s.ids.New(models.KindArchive.IDPrefix()),
		OrgID:          req.OrgID,
		UnitID:         req.UnitID,
		Kind:           models.KindArchive,
		Name:           req.Name,
		Color:          color,
		ParentID:       req.ParentID,
		Category:       req.Category,
		RetentionYears: retention,
		CreatedAt:      today,
		ModifiedAt:     today,
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

	s.logger.Info("archive folder created",
		"id", folder.ID,
		"name", folder.Name,
		"org_id", folder.OrgID,
		"category", folder.Category,
		"retention_years", folder.RetentionYears,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves an archive folder with its computed path.
func (s *archiveService) GetFolder(ctx context.Context, orgID, id string) (*models.Folder, error) {
	folder, err := s.core.folders.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindArchive {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("archive folder %s not found", id)}
	}

	path, err := s.core.pathOf(ctx, folder)
	if err != nil {
		return nil, err
	}
	folder.Path = path
	return folder, nil
}

// UpdateFolder renames an archive folder and/or changes its color.
func (s *archiveService) UpdateFolder(ctx context.Context, orgID, id string, req *filingSvc.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name == nil && req.Color == nil {
		return nil, &domain.ValidationError{Message: "at least one field must be provided"}
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validation.Validate(trimmed, nameRules()...); err != nil {
			return nil, &domain.ValidationError{Message: err.Error()}
		}
		req.Name = &trimmed
	}
	if req.Color != nil && !req.Color.Valid() {
		return nil, &domain.ValidationError{Message: "color is not in the folder palette"}
	}

	folder, err := s.core.folders.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindArchive {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("archive folder %s not found", id)}
	}

	if req.Name != nil {
		folder.Name = *req.Name
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

	s.logger.Info("archive folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"org_id", folder.OrgID,
		"category", folder.Category,
		"path", folder.Path,
	)

	return folder, nil
}

// DeleteFolder removes an archive folder and its whole subtree.
// Deleting an unknown id is a no-op.
func (s *archiveService) DeleteFolder(ctx context.Context, orgID, id string) error {
	folder, err := s.core.folders.Get(ctx, orgID, id)
	if err != nil {
		return err
	}
	if folder == nil || folder.Kind != models.KindArchive {
		s.logger.Debug("delete of unknown archive folder ignored", "id", id, "org_id", orgID)
		return nil
	}

	ids, err := s.core.closure(ctx, orgID, models.KindArchive, id)
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

	s.logger.Info("archive folder deleted",
		"id", id,
		"name", folder.Name,
		"org_id", orgID,
		"category", folder.Category,
		"cascade_count", len(ids),
	)

	return nil
}

// ListChildren lists immediate subfolders within a category. parentID nil
// lists the category's root level.
func (s *archiveService) ListChildren(ctx context.Context, orgID string, category models.ArchiveCategory, parentID *string) ([]models.Folder, error) {
	if !category.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown archive category %q", category)}
	}
	if parentID == nil {
		all, err := s.core.folders.ListByCategory(ctx, orgID, category)
		if err != nil {
			return nil, err
		}
		var roots []models.Folder
		for _, f := range all {
			if f.IsRoot() {
				roots = append(roots, f)
			}
		}
		return roots, nil
	}
	return s.core.folders.ListChildren(ctx, orgID, models.KindArchive, parentID)
}

// Breadcrumb returns the ancestry category-root→…→folder.
func (s *archiveService) Breadcrumb(ctx context.Context, orgID, id string) (models.Breadcrumb, error) {
	crumb, err := s.core.chain(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if crumb == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("archive folder %s not found", id)}
	}
	return crumb, nil
}

// ItemCount counts direct items and direct subfolders.
func (s *archiveService) ItemCount(ctx context.Context, orgID, id string) (*models.ItemCount, error) {
	folder, err := s.core.folders.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindArchive {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("archive folder %s not found", id)}
	}
	return s.core.countContents(ctx, folder)
}

// AddItem registers a content item directly inside an archive folder.
func (s *archiveService) AddItem(ctx context.Context, orgID, folderID, name string) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Message: "item name cannot be blank"}
	}

	folder, err := s.core.folders.Get(ctx, orgID, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindArchive {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("archive folder %s not found", folderID)}
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

	s.logger.Info("archive item added", "id", item.ID, "folder_id", folderID, "org_id", orgID)
	return item, nil
}

// ListItems lists the items directly inside an archive folder.
func (s *archiveService) ListItems(ctx context.Context, orgID, folderID string) ([]models.Item, error) {
	folder, err := s.core.folders.Get(ctx, orgID, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.Kind != models.KindArchive {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("archive folder %s not found", folderID)}
	}
	return s.core.items.ListByFolder(ctx, orgID, folderID)
}

// EnsureRootFolder creates the category's designated root folder if it
// does not exist yet and returns it.
func (s *archiveService) EnsureRootFolder(ctx context.Context, orgID string, category models.ArchiveCategory) (*models.Folder, error) {
	if !category.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown archive category %q", category)}
	}

	existing, err := s.findRoot(ctx, orgID, category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	today := models.NewDate(s.clock.Now())
	root := &models.Folder{
		ID:             s.ids.New(models.KindArchive.IDPrefix()),
		OrgID:          orgID,
		Kind:           models.KindArchive,
		Name:           string(category),
		Color:          models.ColorGray,
		Category:       category,
		RetentionYears: s.resolver.RetentionDefault(category),
		CreatedAt:      today,
		ModifiedAt:     today,
	}
	if err := s.core.folders.Insert(ctx, root); err != nil {
		return nil, err
	}

	s.logger.Info("archive category root created",
		"id", root.ID,
		"org_id", orgID,
		"category", category,
	)
	return root, nil
}

// RootFolder returns the category's designated root folder.
func (s *archiveService) RootFolder(ctx context.Context, orgID string, category models.ArchiveCategory) (*models.Folder, error) {
	root, err := s.findRoot(ctx, orgID, category)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("no root folder for category %q", category)}
	}
	return root, nil
}

func (s *archiveService) findRoot(ctx context.Context, orgID string, category models.ArchiveCategory) (*models.Folder, error) {
	all, err := s.core.folders.ListByCategory(ctx, orgID, category)
	if err != nil {
		return nil, err
	}
	for _, f := range all {
		if f.IsRoot() {
			root := f
			return &root, nil
		}
	}
	return nil, nil
}

// validateCreateRequest validates an archive folder creation request.
func (s *archiveService) validateCreateRequest(req *filingSvc.CreateArchiveFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OrgID, validation.Required),
		validation.Field(&req.Name, nameRules()...),
		validation.Field(&req.Color, colorRule),
		validation.Field(&req.Category, categoryRule),
		validation.Field(&req.RetentionYears, retentionRule),
	)
}
