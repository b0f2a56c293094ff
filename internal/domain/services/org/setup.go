package org

import (
	"context"

	"digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/models/org"
)

// SetupOrchestrator provisions an organization from a template id:
// resolve defaults, instantiate the unit hierarchy, attach workflows and
// configuration, seed archive root folders. Provisioning is atomic — an
// unknown template or any store failure leaves nothing persisted.
type SetupOrchestrator interface {
	Provision(ctx context.Context, req *ProvisionRequest) (*ProvisionResult, error)
}

// ProvisionRequest identifies the organization to provision and the
// template driving its defaults.
type ProvisionRequest struct {
	OrgID    string         `json:"org_id"`
	Name     string         `json:"name"`
	Template org.TemplateID `json:"template"`
}

// ProvisionResult reports what provisioning created.
type ProvisionResult struct {
	OrgID                   string                      `json:"org_id"`
	Template                org.TemplateID              `json:"template"`
	RootUnit                *org.OrganizationUnit       `json:"root_unit"`
	Units                   []org.OrganizationUnit      `json:"units"`
	ArchiveRoots            []filing.Folder             `json:"archive_roots"`
	ArchiveConfig           *org.EffectiveArchiveConfig `json:"archive_config"`
	RequiresDoubleSignature bool                        `json:"requires_double_signature"`
}
