// Package templates loads the organization template catalog and resolves
// per-template workflow presets, archive configuration and retention
// defaults. The catalog is embedded reference data, loaded once per
// process and never mutated at runtime.
package templates

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"digitalium/internal/domain"
	"digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/models/org"
	orgSvc "digitalium/internal/domain/services/org"
)

//go:embed config/*.yaml
var configFiles embed.FS

// catalogFile mirrors the YAML document structure.
type catalogFile struct {
	Defaults struct {
		ArchiveConfig org.ArchiveConfig `yaml:"archive_config"`
	} `yaml:"defaults"`
	RetentionDefaults map[filing.ArchiveCategory]int `yaml:"retention_defaults"`
	Templates         []org.WorkflowPreset           `yaml:"templates"`
}

// Registry resolves workflow presets from the embedded catalog.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	presets           map[org.TemplateID]*org.WorkflowPreset
	defaultConfig     org.EffectiveArchiveConfig
	retentionByCat    map[filing.ArchiveCategory]int
	fallbackRetention int
}

var _ orgSvc.PresetResolver = (*Registry)(nil)

// NewRegistry parses and validates the embedded template catalog.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/templates.yaml")
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal template catalog: %w", err)
	}

	defaultConfig, err := requireComplete(&file.Defaults.ArchiveConfig)
	if err != nil {
		return nil, fmt.Errorf("defaults.archive_config: %w", err)
	}

	r := &Registry{
		presets:           make(map[org.TemplateID]*org.WorkflowPreset, len(file.Templates)),
		defaultConfig:     defaultConfig,
		retentionByCat:    file.RetentionDefaults,
		fallbackRetention: defaultConfig.DefaultRetentionYears,
	}

	for i := range file.Templates {
		preset := file.Templates[i]
		if preset.Template == "" {
			return nil, fmt.Errorf("template catalog entry %d has no template id", i)
		}
		if _, dup := r.presets[preset.Template]; dup {
			return nil, fmt.Errorf("duplicate template %q in catalog", preset.Template)
		}
		if len(preset.Units) == 0 {
			return nil, fmt.Errorf("template %q declares no default units", preset.Template)
		}
		r.presets[preset.Template] = &preset
	}

	// The catalog must cover the closed template enumeration.
	for _, id := range org.Templates {
		if _, ok := r.presets[id]; !ok {
			return nil, fmt.Errorf("template %q missing from catalog", id)
		}
	}
	for _, cat := range filing.Categories {
		if _, ok := r.retentionByCat[cat]; !ok {
			return nil, fmt.Errorf("retention default missing for category %q", cat)
		}
	}

	return r, nil
}

// Preset returns a copy of the full workflow preset for a template.
func (r *Registry) Preset(template org.TemplateID) (*org.WorkflowPreset, error) {
	preset, ok := r.presets[template]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("organization template %q not found", template)}
	}
	cp := *preset
	cp.Units = append([]org.UnitSkeleton(nil), preset.Units...)
	cp.Workflows = append([]org.UnitWorkflow(nil), preset.Workflows...)
	return &cp, nil
}

// ArchiveWorkflows returns the preset's archive-kind workflows.
func (r *Registry) ArchiveWorkflows(template org.TemplateID) ([]org.UnitWorkflow, error) {
	preset, err := r.Preset(template)
	if err != nil {
		return nil, err
	}
	return preset.WorkflowsOfKind(org.WorkflowArchive), nil
}

// SignatureWorkflows returns the preset's signature-kind workflows.
func (r *Registry) SignatureWorkflows(template org.TemplateID) ([]org.UnitWorkflow, error) {
	preset, err := r.Preset(template)
	if err != nil {
		return nil, err
	}
	return preset.WorkflowsOfKind(org.WorkflowSignature), nil
}

// DefaultUnits returns the template's default unit skeleton.
func (r *Registry) DefaultUnits(template org.TemplateID) ([]org.UnitSkeleton, error) {
	preset, err := r.Preset(template)
	if err != nil {
		return nil, err
	}
	return preset.Units, nil
}

// DefaultArchiveConfig merges the global default configuration with the
// template's overrides, template fields winning field by field.
func (r *Registry) DefaultArchiveConfig(template org.TemplateID) (*org.EffectiveArchiveConfig, error) {
	preset, ok := r.presets[template]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("organization template %q not found", template)}
	}
	merged := r.defaultConfig.Merge(preset.ArchiveConfig)
	return &merged, nil
}

// RequiresDoubleSignature reports the template's countersignature policy.
// A static lookup, never inferred from workflow contents.
func (r *Registry) RequiresDoubleSignature(template org.TemplateID) (bool, error) {
	preset, ok := r.presets[template]
	if !ok {
		return false, &domain.NotFoundError{Message: fmt.Sprintf("organization template %q not found", template)}
	}
	return preset.RequiresDoubleSignature, nil
}

// BaseArchiveConfig returns the global default configuration.
func (r *Registry) BaseArchiveConfig() org.EffectiveArchiveConfig {
	base := r.defaultConfig
	base.AllowedCategories = append([]filing.ArchiveCategory(nil), r.defaultConfig.AllowedCategories...)
	return base
}

// RetentionDefault returns the default retention years for a category.
func (r *Registry) RetentionDefault(category filing.ArchiveCategory) int {
	if years, ok := r.retentionByCat[category]; ok {
		return years
	}
	return r.fallbackRetention
}

// ListTemplates returns every registered preset, for catalog endpoints.
func (r *Registry) ListTemplates() []org.WorkflowPreset {
	out := make([]org.WorkflowPreset, 0, len(r.presets))
	for _, id := range org.Templates {
		if preset, ok := r.presets[id]; ok {
			out = append(out, *preset)
		}
	}
	return out
}

// requireComplete converts the override-layer config into an effective one,
// failing if any field is unset. The global default must be total so that
// inheritance resolution always bottoms out.
func requireComplete(cfg *org.ArchiveConfig) (org.EffectiveArchiveConfig, error) {
	var out org.EffectiveArchiveConfig
	if cfg.DefaultRetentionYears == nil {
		return out, fmt.Errorf("default_retention_years is required")
	}
	if cfg.AutoArchive == nil {
		return out, fmt.Errorf("auto_archive is required")
	}
	if cfg.RequireApproval == nil {
		return out, fmt.Errorf("require_approval is required")
	}
	if cfg.NamingPattern == nil {
		return out, fmt.Errorf("naming_pattern is required")
	}
	if len(cfg.AllowedCategories) == 0 {
		return out, fmt.Errorf("allowed_categories is required")
	}
	out.DefaultRetentionYears = *cfg.DefaultRetentionYears
	out.AutoArchive = *cfg.AutoArchive
	out.RequireApproval = *cfg.RequireApproval
	out.NamingPattern = *cfg.NamingPattern
	out.AllowedCategories = append([]filing.ArchiveCategory(nil), cfg.AllowedCategories...)
	return out, nil
}
