package handler

import (
	"log/slog"
	"net/http"

	"digitalium/internal/domain/models/org"
	orgSvc "digitalium/internal/domain/services/org"
	"digitalium/internal/httputil"
	"digitalium/internal/templates"
)

// TemplateHandler serves the workflow template catalog
type TemplateHandler struct {
	registry *templates.Registry
	resolver orgSvc.PresetResolver
	logger   *slog.Logger
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(registry *templates.Registry, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		registry: registry,
		resolver: registry,
		logger:   logger,
	}
}

// ListTemplates lists every template preset in the catalog
// GET /api/templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.ListTemplates())
}

// GetTemplate returns one template's full preset
// GET /api/templates/{id}
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	preset, err := h.resolver.Preset(org.TemplateID(id))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, preset)
}

// GetTemplateConfig returns the template's default archive configuration
// GET /api/templates/{id}/config
func (h *TemplateHandler) GetTemplateConfig(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cfg, err := h.resolver.DefaultArchiveConfig(org.TemplateID(id))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cfg)
}
