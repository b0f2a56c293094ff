package org

// TemplateID identifies an organization template: a predefined archetype
// (citizen, enterprise, institution subtype) driving default units,
// workflows and archive configuration.
type TemplateID string

const (
	TemplateCitizen                 TemplateID = "citizen"
	TemplateEnterprise              TemplateID = "enterprise"
	TemplateInstitutionMinistry     TemplateID = "institution-ministry"
	TemplateInstitutionMunicipality TemplateID = "institution-municipality"
	TemplateInstitutionAgency       TemplateID = "institution-agency"
)

// Templates lists every registered template identifier.
var Templates = []TemplateID{
	TemplateCitizen,
	TemplateEnterprise,
	TemplateInstitutionMinistry,
	TemplateInstitutionMunicipality,
	TemplateInstitutionAgency,
}

// UnitSkeleton describes one unit to create during provisioning.
// Children are nested so a ministry template can declare directorates
// under the root unit without referencing generated ids.
type UnitSkeleton struct {
	Name     string         `json:"name" yaml:"name"`
	Config   *ArchiveConfig `json:"config,omitempty" yaml:"config"`
	Children []UnitSkeleton `json:"children,omitempty" yaml:"children"`
}

// WorkflowPreset is the full set of defaults resolved for a template:
// unit skeleton, default workflows split by kind, the archive configuration
// override layer, and the double-signature policy. Presets are read-only
// reference data loaded once per process.
type WorkflowPreset struct {
	Template                TemplateID     `json:"template" yaml:"template"`
	DisplayName             string         `json:"display_name" yaml:"display_name"`
	Units                   []UnitSkeleton `json:"units" yaml:"units"`
	Workflows               []UnitWorkflow `json:"workflows" yaml:"workflows"`
	ArchiveConfig           *ArchiveConfig `json:"archive_config,omitempty" yaml:"archive_config"`
	RequiresDoubleSignature bool           `json:"requires_double_signature" yaml:"requires_double_signature"`
}

// WorkflowsOfKind returns the preset's workflows tagged with the given kind.
func (p *WorkflowPreset) WorkflowsOfKind(kind WorkflowKind) []UnitWorkflow {
	var out []UnitWorkflow
	for _, wf := range p.Workflows {
		if wf.Kind == kind {
			out = append(out, wf)
		}
	}
	return out
}
