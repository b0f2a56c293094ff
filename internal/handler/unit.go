package handler

import (
	"log/slog"
	"net/http"

	"digitalium/internal/domain/models/org"
	orgSvc "digitalium/internal/domain/services/org"
	"digitalium/internal/httputil"
)

// UnitHandler handles organization unit HTTP requests
type UnitHandler struct {
	unitService orgSvc.UnitGraphService
	logger      *slog.Logger
}

// NewUnitHandler creates a new unit handler
func NewUnitHandler(unitService orgSvc.UnitGraphService, logger *slog.Logger) *UnitHandler {
	return &UnitHandler{
		unitService: unitService,
		logger:      logger,
	}
}

// CreateUnit creates a unit under the given parent
// POST /api/units
func (h *UnitHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}

	var req orgSvc.CreateUnitRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OrgID = orgID

	unit, err := h.unitService.CreateUnit(r.Context(), &req)
	if err != nil {
		// A second root unit conflicts; surface the existing root with the 409.
		HandleCreateConflict(w, err, func() (*org.OrganizationUnit, error) {
			roots, listErr := h.unitService.ListChildren(r.Context(), orgID, nil)
			if listErr != nil {
				return nil, listErr
			}
			if len(roots) == 0 {
				return nil, err
			}
			return &roots[0], nil
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, unit)
}

// GetUnit retrieves a unit with its computed path
// GET /api/units/{id}
func (h *UnitHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	unit, err := h.unitService.GetUnit(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, unit)
}

// ListUnits lists every unit of the organization
// GET /api/units
func (h *UnitHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}

	units, err := h.unitService.ListUnits(r.Context(), orgID)
	if err != nil {
		handleError(w, err)
		return
	}
	if units == nil {
		units = []org.OrganizationUnit{}
	}

	httputil.RespondJSON(w, http.StatusOK, units)
}

// ListChildren lists a unit's immediate children
// GET /api/units/{id}/children
func (h *UnitHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	units, err := h.unitService.ListChildren(r.Context(), orgID, &id)
	if err != nil {
		handleError(w, err)
		return
	}
	if units == nil {
		units = []org.OrganizationUnit{}
	}

	httputil.RespondJSON(w, http.StatusOK, units)
}

// SetUnitConfig replaces a unit's configuration override layer
// PUT /api/units/{id}/config
func (h *UnitHandler) SetUnitConfig(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var cfg org.ArchiveConfig
	if err := httputil.ParseJSON(w, r, &cfg); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unit, err := h.unitService.SetUnitConfig(r.Context(), orgID, id, &cfg)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, unit)
}

// EffectiveConfig resolves the unit's effective archive configuration
// GET /api/units/{id}/effective-config
func (h *UnitHandler) EffectiveConfig(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cfg, err := h.unitService.EffectiveArchiveConfig(r.Context(), orgID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cfg)
}
