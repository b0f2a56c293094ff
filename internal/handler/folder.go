package handler

import (
	"log/slog"
	"net/http"

	"digitalium/internal/domain/models/filing"
	filingSvc "digitalium/internal/domain/services/filing"
	"digitalium/internal/httputil"
)

// FolderHandler handles document folder HTTP requests
type FolderHandler struct {
	folderService filingSvc.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService filingSvc.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}

	var req filingSvc.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OrgID = orgID

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder by ID with its computed path
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// UpdateFolder renames a folder and/or changes its color
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
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

	folder, err := h.folderService.UpdateFolder(r.Context(), orgID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder removes a folder and its whole subtree.
// Unknown ids are a no-op and still return 204.
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), orgID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRoots lists top-level folders
// GET /api/folders
func (h *FolderHandler) ListRoots(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}

	folders, err := h.folderService.ListChildren(r.Context(), orgID, nil)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, filingSvc.FolderContents{
		Folders: emptyIfNil(folders),
		Items:   []filing.Item{},
	})
}

// ListChildren lists a folder's direct subfolders and items
// GET /api/folders/{id}/children
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	folders, err := h.folderService.ListChildren(r.Context(), orgID, &id)
	if err != nil {
		handleError(w, err)
		return
	}
	items, err := h.folderService.ListItems(r.Context(), orgID, id)
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

// Breadcrumb returns the folder's ancestry root→…→folder
// GET /api/folders/{id}/breadcrumb
func (h *FolderHandler) Breadcrumb(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	crumb, err := h.folderService.Breadcrumb(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, crumb)
}

// ItemCount returns the folder's direct item and subfolder counts
// GET /api/folders/{id}/count
func (h *FolderHandler) ItemCount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	count, err := h.folderService.ItemCount(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, count)
}

// AddItem registers a content item inside a folder
// POST /api/folders/{id}/items
func (h *FolderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.folderService.AddItem(r.Context(), orgID, id, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// HealthCheck reports service liveness
// GET /health
func (h *FolderHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type addItemRequest struct {
	Name string `json:"name"`
}

func emptyIfNil(folders []filing.Folder) []filing.Folder {
	if folders == nil {
		return []filing.Folder{}
	}
	return folders
}

func emptyItemsIfNil(items []filing.Item) []filing.Item {
	if items == nil {
		return []filing.Item{}
	}
	return items
}
