package handler

import (
	"log/slog"
	"net/http"

	"digitalium/internal/domain/models/filing"
	filingSvc "digitalium/internal/domain/services/filing"
	"digitalium/internal/httputil"
)

// ArchiveHandler handles archive folder HTTP requests
type ArchiveHandler struct {
	archiveService filingSvc.ArchiveService
	logger         *slog.Logger
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(archiveService filingSvc.ArchiveService, logger *slog.Logger) *ArchiveHandler {
	return &ArchiveHandler{
		archiveService: archiveService,
		logger:         logger,
	}
}

// CreateFolder creates an archive folder under an existing parent
// POST /api/archive/folders
func (h *ArchiveHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}

	var req filingSvc.CreateArchiveFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OrgID = orgID

	folder, err := h.archiveService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves an archive folder with its computed path
// GET /api/archive/folders/{id}
func (h *ArchiveHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	folder, err := h.archiveService.GetFolder(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// UpdateFolder renames an archive folder and/or changes its color
// PATCH /api/archive/folders/{id}
func (h *ArchiveHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req filingSvc.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.archiveService.UpdateFolder(r.Context(), orgID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder removes an archive folder and its whole subtree.
// Unknown ids are a no-op and still return 204.
// DELETE /api/archive/folders/{id}
func (h *ArchiveHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.archiveService.DeleteFolder(r.Context(), orgID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RootFolder returns the category's designated root folder
// GET /api/archive/categories/{category}/root
func (h *ArchiveHandler) RootFolder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	category, ok := pathID(w, r, "category")
	if !ok {
		return
	}

	root, err := h.archiveService.RootFolder(r.Context(), orgID, filing.ArchiveCategory(category))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, root)
}

// ListCategoryRoots lists the category's root-level folders
// GET /api/archive/categories/{category}/folders
func (h *ArchiveHandler) ListCategoryRoots(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	category, ok := pathID(w, r, "category")
	if !ok {
		return
	}

	folders, err := h.archiveService.ListChildren(r.Context(), orgID, filing.ArchiveCategory(category), nil)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, filingSvc.FolderContents{
		Folders: emptyIfNil(folders),
		Items:   []filing.Item{},
	})
}

// ListChildren lists an archive folder's direct subfolders and items
// GET /api/archive/folders/{id}/children
func (h *ArchiveHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	folder, err := h.archiveService.GetFolder(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	folders, err := h.archiveService.ListChildren(r.Context(), orgID, folder.Category, &id)
	if err != nil {
		handleError(w, err)
		return
	}
	items, err := h.archiveService.ListItems(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, filingSvc.FolderContents{
		Folder:  folder,
		Folders: emptyIfNil(folders),
		Items:   emptyItemsIfNil(items),
	})
}

// Breadcrumb returns the archive folder's ancestry root→…→folder
// GET /api/archive/folders/{id}/breadcrumb
func (h *ArchiveHandler) Breadcrumb(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	crumb, err := h.archiveService.Breadcrumb(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, crumb)
}

// ItemCount returns the archive folder's direct item and subfolder counts
// GET /api/archive/folders/{id}/count
func (h *ArchiveHandler) ItemCount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	count, err := h.archiveService.ItemCount(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, count)
}

// AddItem registers a content item inside an archive folder
// POST /api/archive/folders/{id}/items
func (h *ArchiveHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req addItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.archiveService.AddItem(r.Context(), orgID, id, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}
