package org

import (
	"time"

	"digitalium/internal/domain/models/filing"
)

// OrganizationUnit is a node in an organization's internal hierarchy
// (department, directorate, branch).
//
// ParentUnitID nil marks the organization root unit, which is created once
// during provisioning and never deleted while the organization exists.
// Path is computed on demand from the ParentUnitID chain.
type OrganizationUnit struct {
	ID           string  `json:"id"`
	OrgID        string  `json:"org_id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	ParentUnitID *string `json:"parent_unit_id"`
	Path         string  `json:"path,omitempty"`

	// Config is this unit's explicit override layer, nil fields inherit
	// from ancestors up to the organization default.
	Config *ArchiveConfig `json:"config,omitempty"`

	// Workflows scoped to this unit (archive ingestion, signature routing).
	Workflows []UnitWorkflow `json:"workflows,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsRoot reports whether this is the organization root unit.
func (u *OrganizationUnit) IsRoot() bool {
	return u.ParentUnitID == nil
}

// ArchiveConfig is a per-unit override layer for archive behavior.
// Nil fields mean "inherit"; resolution walks the unit chain field by field
// and falls back to the organization/template default.
type ArchiveConfig struct {
	DefaultRetentionYears *int                     `json:"default_retention_years,omitempty" yaml:"default_retention_years"`
	AutoArchive           *bool                    `json:"auto_archive,omitempty" yaml:"auto_archive"`
	RequireApproval       *bool                    `json:"require_approval,omitempty" yaml:"require_approval"`
	NamingPattern         *string                  `json:"naming_pattern,omitempty" yaml:"naming_pattern"`
	AllowedCategories     []filing.ArchiveCategory `json:"allowed_categories,omitempty" yaml:"allowed_categories"`
}

// EffectiveArchiveConfig is a fully resolved configuration: every field
// carries a concrete value after inheritance resolution.
type EffectiveArchiveConfig struct {
	DefaultRetentionYears int                      `json:"default_retention_years"`
	AutoArchive           bool                     `json:"auto_archive"`
	RequireApproval       bool                     `json:"require_approval"`
	NamingPattern         string                   `json:"naming_pattern"`
	AllowedCategories     []filing.ArchiveCategory `json:"allowed_categories"`
}

// AsOverride converts a fully resolved configuration into an explicit
// override layer with every field set.
func (e EffectiveArchiveConfig) AsOverride() *ArchiveConfig {
	retention := e.DefaultRetentionYears
	auto := e.AutoArchive
	approval := e.RequireApproval
	pattern := e.NamingPattern
	return &ArchiveConfig{
		DefaultRetentionYears: &retention,
		AutoArchive:           &auto,
		RequireApproval:       &approval,
		NamingPattern:         &pattern,
		AllowedCategories:     append([]filing.ArchiveCategory(nil), e.AllowedCategories...),
	}
}

// Merge applies override on top of base, field by field. A nil override
// field keeps the base value; Merge never mutates its inputs.
func (base EffectiveArchiveConfig) Merge(override *ArchiveConfig) EffectiveArchiveConfig {
	if override == nil {
		return base
	}
	out := base
	if override.DefaultRetentionYears != nil {
		out.DefaultRetentionYears = *override.DefaultRetentionYears
	}
	if override.AutoArchive != nil {
		out.AutoArchive = *override.AutoArchive
	}
	if override.RequireApproval != nil {
		out.RequireApproval = *override.RequireApproval
	}
	if override.NamingPattern != nil {
		out.NamingPattern = *override.NamingPattern
	}
	if len(override.AllowedCategories) > 0 {
		out.AllowedCategories = append([]filing.ArchiveCategory(nil), override.AllowedCategories...)
	}
	return out
}
