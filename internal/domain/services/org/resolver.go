package org

import (
	"digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/models/org"
)

// PresetResolver resolves template-specific defaults from static reference
// data. All methods are pure lookups with no side effects; resolving the
// same template twice returns structurally equal results.
type PresetResolver interface {
	// Preset returns the full workflow preset for a template.
	// Unknown templates yield a NotFoundError.
	Preset(template org.TemplateID) (*org.WorkflowPreset, error)

	// ArchiveWorkflows returns the preset's archive-kind workflows.
	ArchiveWorkflows(template org.TemplateID) ([]org.UnitWorkflow, error)

	// SignatureWorkflows returns the preset's signature-kind workflows.
	SignatureWorkflows(template org.TemplateID) ([]org.UnitWorkflow, error)

	// DefaultUnits returns the template's default unit skeleton.
	DefaultUnits(template org.TemplateID) ([]org.UnitSkeleton, error)

	// DefaultArchiveConfig merges the global default configuration with the
	// template's overrides, template fields winning field by field.
	DefaultArchiveConfig(template org.TemplateID) (*org.EffectiveArchiveConfig, error)

	// BaseArchiveConfig returns the global (template-independent) default
	// configuration, the final fallback of inheritance resolution.
	BaseArchiveConfig() org.EffectiveArchiveConfig

	// RequiresDoubleSignature reports whether the template's acts need a
	// countersignature (true for institutional templates handling legally
	// binding acts).
	RequiresDoubleSignature(template org.TemplateID) (bool, error)

	// RetentionDefault returns the default retention years for an archive
	// category from the static retention policy table.
	RetentionDefault(category filing.ArchiveCategory) int
}
