package handler

import (
	"log/slog"
	"net/http"

	orgSvc "digitalium/internal/domain/services/org"
	"digitalium/internal/httputil"
)

// SetupHandler handles organization provisioning requests
type SetupHandler struct {
	orchestrator orgSvc.SetupOrchestrator
	logger       *slog.Logger
}

// NewSetupHandler creates a new setup handler
func NewSetupHandler(orchestrator orgSvc.SetupOrchestrator, logger *slog.Logger) *SetupHandler {
	return &SetupHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Provision provisions the caller's organization from a template
// POST /api/setup
func (h *SetupHandler) Provision(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgScope(w, r)
	if !ok {
		return
	}

	var req orgSvc.ProvisionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OrgID = orgID

	result, err := h.orchestrator.Provision(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("organization provisioned",
		"org_id", result.OrgID,
		"template", result.Template,
		"units", len(result.Units),
	)

	httputil.RespondJSON(w, http.StatusCreated, result)
}
